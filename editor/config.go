package editor

import (
	"math"

	"github.com/pkg/errors"
)

// Config holds the editor tunables. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	HistoryCapacity int `toml:"history_capacity"`

	MinZoom         float64 `toml:"min_zoom"`
	MaxZoom         float64 `toml:"max_zoom"`
	ZoomStep        float64 `toml:"zoom_step"`
	WheelZoomFactor float64 `toml:"wheel_zoom_factor"`
	FitRatio        float64 `toml:"fit_ratio"`
	FitTopMargin    float64 `toml:"fit_top_margin"`

	SnapThreshold  float64 `toml:"snap_threshold"`
	MarqueeMinSize float64 `toml:"marquee_min_size"`
	DuplicateGap   float64 `toml:"duplicate_gap"`

	DefaultText      string  `toml:"default_text"`
	DefaultTextWidth float64 `toml:"default_text_width"`
	DefaultFontSize  float64 `toml:"default_font_size"`
	MinFontSize      float64 `toml:"min_font_size"`
	MinTextHeight    float64 `toml:"min_text_height"`
	LineHeight       float64 `toml:"line_height"`
	TextPaddingY     float64 `toml:"text_padding_y"`

	SignatureWidth     float64 `toml:"signature_width"`
	SignatureHeight    float64 `toml:"signature_height"`
	SignatureMinWidth  float64 `toml:"signature_min_width"`
	SignatureMinHeight float64 `toml:"signature_min_height"`

	HandleSize float64 `toml:"handle_size"`
}

func DefaultConfig() Config {
	return Config{
		HistoryCapacity: 10,

		MinZoom:         0.5,
		MaxZoom:         4.0,
		ZoomStep:        0.4,
		WheelZoomFactor: 0.01,
		FitRatio:        0.8,
		FitTopMargin:    40,

		SnapThreshold:  6,
		MarqueeMinSize: 5,
		DuplicateGap:   16,

		DefaultText:      "Text",
		DefaultTextWidth: 180,
		DefaultFontSize:  16,
		MinFontSize:      8,
		MinTextHeight:    16,
		LineHeight:       1.2,
		TextPaddingY:     0,

		SignatureWidth:     200,
		SignatureHeight:    80,
		SignatureMinWidth:  60,
		SignatureMinHeight: 24,

		HandleSize: 10,
	}
}

func (c Config) Validate() error {
	if c.HistoryCapacity < 1 {
		return errors.Errorf("history capacity must be positive, got %d", c.HistoryCapacity)
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		return errors.Errorf("invalid zoom range [%v, %v]", c.MinZoom, c.MaxZoom)
	}
	if c.MinFontSize <= 0 || c.DefaultFontSize < c.MinFontSize {
		return errors.Errorf("default font size %v below minimum %v", c.DefaultFontSize, c.MinFontSize)
	}
	if c.LineHeight <= 0 {
		return errors.Errorf("line height must be positive, got %v", c.LineHeight)
	}
	if c.SnapThreshold < 0 || c.MarqueeMinSize < 0 || c.DuplicateGap < 0 {
		return errors.New("snap threshold, marquee minimum and duplicate gap must not be negative")
	}
	return nil
}

// minTextHeight is the smallest height that fits a single line at fontSize.
func (c Config) minTextHeight(fontSize float64) float64 {
	line := math.Ceil(fontSize*c.LineHeight) + 2*c.TextPaddingY
	return math.Max(line, c.MinTextHeight)
}

// fitTextHeight is the height needed to show every line of text.
func (c Config) fitTextHeight(text string, fontSize float64) float64 {
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
		}
	}
	h := math.Ceil(fontSize*c.LineHeight*float64(lines)) + 2*c.TextPaddingY
	return math.Max(h, c.minTextHeight(fontSize))
}
