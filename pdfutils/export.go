package pdfutils

import (
	"context"
	"image"
	"runtime"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDocument  = errors.New("unreadable document")
	ErrPageIndex = errors.New("page index out of range")
)

type ExportConfig struct {
	Font                 string  `toml:"font"`
	BoldFont             string  `toml:"bold_font"`
	TextColor            string  `toml:"text_color"`
	PaddingX             float64 `toml:"padding_x"`
	PaddingY             float64 `toml:"padding_y"`
	LineHeight           float64 `toml:"line_height"`
	DPI                  float64 `toml:"dpi"`
	SignatureRasterWidth int     `toml:"signature_raster_width"`
}

func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Font:                 "Helvetica",
		BoldFont:             "Helvetica-Bold",
		TextColor:            "#000000",
		LineHeight:           1.2,
		DPI:                  96,
		SignatureRasterWidth: 600,
	}
}

func (c ExportConfig) Validate() error {
	if c.Font == "" || c.BoldFont == "" {
		return errors.New("export fonts must be set")
	}
	if _, err := ParseTextColor(c.TextColor); err != nil {
		return err
	}
	if c.LineHeight <= 0 {
		return errors.Errorf("export line height must be positive, got %v", c.LineHeight)
	}
	if c.DPI <= 0 {
		return errors.Errorf("dpi must be positive, got %v", c.DPI)
	}
	if c.PaddingX < 0 || c.PaddingY < 0 {
		return errors.New("export padding must not be negative")
	}
	return nil
}

// TextMeasurer reports the advance width in points of text set at fontSize.
type TextMeasurer interface {
	MeasureText(text string, fontSize float64, bold bool) float64
}

// Author applies a draw list to one page of a document and returns the new
// document bytes.
type Author interface {
	TextMeasurer
	Draw(doc []byte, pageIndex int, draws DrawList) ([]byte, error)
}

type ExportRequest struct {
	PageIndex  int
	Geometry   PageGeometry
	Texts      []editor.TextAnnotation
	Signatures []editor.SignatureAnnotation
}

type Exporter struct {
	Config ExportConfig
	Author Author
	Logger logrus.FieldLogger
}

// MapText lays out the lines of a text annotation as runs in PDF space.
func MapText(a editor.TextAnnotation, g PageGeometry, cfg ExportConfig, m TextMeasurer) []TextRun {
	scaleX, scaleY := g.ScaleX(), g.ScaleY()
	fontSize := a.FontSize * scaleY
	lineHeight := fontSize * cfg.LineHeight

	left := (a.X + cfg.PaddingX) * scaleX
	width := (a.Width - 2*cfg.PaddingX) * scaleX
	top := g.HeightPt - (a.Y+cfg.PaddingY)*scaleY - fontSize

	runs := []TextRun{}

	for i, line := range SplitLines(a.Text) {
		if line == "" {
			continue
		}

		x := left
		switch a.Align {
		case editor.AlignCenter:
			x += (width - m.MeasureText(line, fontSize, a.Bold)) / 2
		case editor.AlignRight:
			x += width - m.MeasureText(line, fontSize, a.Bold)
		}

		runs = append(runs, TextRun{
			Annotation: a.ID,
			Text:       line,
			X:          x,
			Y:          top - float64(i)*lineHeight,
			FontSize:   fontSize,
			Bold:       a.Bold,
		})
	}

	return runs
}

// MapSignature returns the signature box in PDF space, bottom-left origin.
func MapSignature(a editor.SignatureAnnotation, g PageGeometry) r2.Rect {
	scaleX, scaleY := g.ScaleX(), g.ScaleY()
	x := a.X * scaleX
	y := g.HeightPt - (a.Y+a.Height)*scaleY

	return r2.RectFromPoints(
		r2.Point{X: x, Y: y},
		r2.Point{X: x + a.Width*scaleX, Y: y + a.Height*scaleY},
	)
}

// PlaceSignature fits img into the mapped signature box.
func PlaceSignature(a editor.SignatureAnnotation, img image.Image, g PageGeometry) ImageDraw {
	size := img.Bounds().Size()
	rect := FitRect(MapSignature(a, g), float64(size.X), float64(size.Y))

	return ImageDraw{
		Annotation: a.ID,
		Image:      img,
		X:          rect.X.Lo,
		Y:          rect.Y.Lo,
		Width:      rect.X.Length(),
		Height:     rect.Y.Length(),
		Blend:      BlendDarken,
	}
}

func (e *Exporter) logger() logrus.FieldLogger {
	if e.Logger == nil {
		return logrus.StandardLogger()
	}
	return e.Logger
}

// decodeSignatures decodes every source concurrently. A source that fails
// leaves a nil entry and is logged.
func (e *Exporter) decodeSignatures(ctx context.Context, sigs []editor.SignatureAnnotation) ([]image.Image, error) {
	imgs := make([]image.Image, len(sigs))
	sem := make(chan struct{}, runtime.NumCPU())
	g, ctx := errgroup.WithContext(ctx)

	for i := range sigs {
		i := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			img, err := DecodeSignature(sigs[i].Src, sigs[i].Style == editor.StyleGray, e.Config.SignatureRasterWidth)
			if err != nil {
				e.logger().WithFields(logrus.Fields{
					"annotation": sigs[i].ID,
					"error":      err,
				}).Warn("skipping signature")
				return nil
			}

			imgs[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return imgs, nil
}

// Plan maps every annotation onto the page. Signatures that cannot be
// decoded are left out.
func (e *Exporter) Plan(ctx context.Context, req ExportRequest) (DrawList, error) {
	if !req.Geometry.Valid() {
		return DrawList{}, errors.Errorf("invalid page geometry %+v", req.Geometry)
	}

	textColor, err := ParseTextColor(e.Config.TextColor)
	if err != nil {
		return DrawList{}, err
	}

	imgs, err := e.decodeSignatures(ctx, req.Signatures)
	if err != nil {
		return DrawList{}, err
	}

	draws := DrawList{}

	for i, sig := range req.Signatures {
		if imgs[i] == nil {
			continue
		}
		draws.Images = append(draws.Images, PlaceSignature(sig, imgs[i], req.Geometry))
	}

	for _, text := range req.Texts {
		for _, run := range MapText(text, req.Geometry, e.Config, e.Author) {
			run.Color = textColor
			draws.Texts = append(draws.Texts, run)
		}
	}

	return draws, nil
}

// Export draws the annotations onto one page of doc. Only a document that
// cannot be read or written fails the call.
func (e *Exporter) Export(ctx context.Context, doc []byte, req ExportRequest) ([]byte, error) {
	draws, err := e.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"page":   req.PageIndex,
		"texts":  len(draws.Texts),
		"images": len(draws.Images),
	}
	if len(draws.Texts) > 0 {
		fields["textColor"] = ColorToHex(draws.Texts[0].Color)
	}
	e.logger().WithFields(fields).Debug("exporting page")

	out, err := e.Author.Draw(doc, req.PageIndex, draws)
	if err != nil {
		return nil, errors.Wrap(err, "export")
	}

	return out, nil
}
