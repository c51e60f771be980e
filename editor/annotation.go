package editor

import (
	"math"

	"github.com/golang/geo/r2"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// SignatureStyle is a display filter. The source image is never modified.
type SignatureStyle string

const (
	StyleDefault SignatureStyle = "default"
	StyleGray    SignatureStyle = "gray"
)

func (s SignatureStyle) Valid() bool {
	return s == StyleDefault || s == StyleGray
}

// Box is an axis aligned rectangle in document space.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b Box) Right() float64   { return b.X + b.Width }
func (b Box) Bottom() float64  { return b.Y + b.Height }
func (b Box) CenterX() float64 { return b.X + b.Width/2 }
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

func (b Box) Rect() r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: b.X, Y: b.Y},
		r2.Point{X: b.Right(), Y: b.Bottom()},
	)
}

// ClampInto keeps the box fully inside bounds, pinning it to the origin when
// it is larger than bounds.
func (b Box) ClampInto(bounds Size) Box {
	b.X = clamp(b.X, 0, bounds.Width-b.Width)
	b.Y = clamp(b.Y, 0, bounds.Height-b.Height)
	return b
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TextAnnotation struct {
	ID string `json:"id"`
	Box
	Text           string  `json:"text"`
	FontSize       float64 `json:"fontSize"`
	Bold           bool    `json:"bold"`
	Align          Align   `json:"align"`
	DuplicatedFrom string  `json:"duplicatedFrom,omitempty"`
}

type SignatureAnnotation struct {
	ID string `json:"id"`
	Box
	Src   string         `json:"src"`
	Style SignatureStyle `json:"style"`
}

// TextPatch holds the fields to merge into a text annotation. Nil fields are
// left untouched.
type TextPatch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Text     *string  `json:"text,omitempty"`
	FontSize *float64 `json:"fontSize,omitempty"`
	Bold     *bool    `json:"bold,omitempty"`
	Align    *Align   `json:"align,omitempty"`
}

func (p TextPatch) apply(a TextAnnotation) TextAnnotation {
	if p.X != nil {
		a.X = *p.X
	}
	if p.Y != nil {
		a.Y = *p.Y
	}
	if p.Width != nil {
		a.Width = *p.Width
	}
	if p.Height != nil {
		a.Height = *p.Height
	}
	if p.Text != nil {
		a.Text = *p.Text
	}
	if p.FontSize != nil {
		a.FontSize = *p.FontSize
	}
	if p.Bold != nil {
		a.Bold = *p.Bold
	}
	if p.Align != nil && p.Align.Valid() {
		a.Align = *p.Align
	}
	return a
}

type SignaturePatch struct {
	X      *float64        `json:"x,omitempty"`
	Y      *float64        `json:"y,omitempty"`
	Width  *float64        `json:"width,omitempty"`
	Height *float64        `json:"height,omitempty"`
	Src    *string         `json:"src,omitempty"`
	Style  *SignatureStyle `json:"style,omitempty"`
}

func (p SignaturePatch) apply(a SignatureAnnotation) SignatureAnnotation {
	if p.X != nil {
		a.X = *p.X
	}
	if p.Y != nil {
		a.Y = *p.Y
	}
	if p.Width != nil {
		a.Width = *p.Width
	}
	if p.Height != nil {
		a.Height = *p.Height
	}
	if p.Src != nil {
		a.Src = *p.Src
	}
	if p.Style != nil && p.Style.Valid() {
		a.Style = *p.Style
	}
	return a
}

// Snapshot is the full annotation model at one point in time.
type Snapshot struct {
	Texts      []TextAnnotation      `json:"textAnnotations"`
	Signatures []SignatureAnnotation `json:"signatureAnnotations"`
}

// Clone returns a snapshot that shares no backing arrays with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Texts:      append([]TextAnnotation{}, s.Texts...),
		Signatures: append([]SignatureAnnotation{}, s.Signatures...),
	}
}

func ptr[T any](v T) *T { return &v }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
