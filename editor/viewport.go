package editor

import (
	"github.com/golang/geo/r2"
)

// Viewport is the zoom/pan transform between content coordinates (pointer
// positions relative to the content origin) and document space:
//
//	content = Pan + Zoom*document
//
// It only affects rendering and never touches the annotation model.
type Viewport struct {
	Zoom float64
	Pan  r2.Point

	minZoom, maxZoom float64
	step             float64
	wheelFactor      float64
	fitRatio         float64
	fitTopMargin     float64

	fitted bool
}

func NewViewport(cfg Config) *Viewport {
	return &Viewport{
		Zoom:         1,
		minZoom:      cfg.MinZoom,
		maxZoom:      cfg.MaxZoom,
		step:         cfg.ZoomStep,
		wheelFactor:  cfg.WheelZoomFactor,
		fitRatio:     cfg.FitRatio,
		fitTopMargin: cfg.FitTopMargin,
	}
}

func (v *Viewport) ToDocument(p r2.Point) r2.Point {
	return p.Sub(v.Pan).Mul(1 / v.Zoom)
}

func (v *Viewport) ToContent(p r2.Point) r2.Point {
	return p.Mul(v.Zoom).Add(v.Pan)
}

// ContentRect maps a document space box to content coordinates.
func (v *Viewport) ContentRect(b Box) r2.Rect {
	return r2.RectFromPoints(
		v.ToContent(r2.Point{X: b.X, Y: b.Y}),
		v.ToContent(r2.Point{X: b.Right(), Y: b.Bottom()}),
	)
}

// VisibleCenter is the document space point shown at the middle of container.
func (v *Viewport) VisibleCenter(container Size) r2.Point {
	return v.ToDocument(r2.Point{X: container.Width / 2, Y: container.Height / 2})
}

func (v *Viewport) clampZoom(z float64) float64 {
	return clamp(z, v.minZoom, v.maxZoom)
}

func (v *Viewport) SetZoom(z float64) {
	v.Zoom = v.clampZoom(z)
}

func (v *Viewport) ZoomIn()  { v.SetZoom(v.Zoom + v.step) }
func (v *Viewport) ZoomOut() { v.SetZoom(v.Zoom - v.step) }

// AutoFit scales the page to a fraction of the container width, centres it
// horizontally and places its top edge a fixed margin, in document pixels,
// below the container top. It runs once per loaded document and reports whether it did anything.
func (v *Viewport) AutoFit(container, page Size) bool {
	if v.fitted || page.Width <= 0 || container.Width <= 0 {
		return false
	}
	v.fitted = true
	v.Zoom = v.clampZoom(v.fitRatio * container.Width / page.Width)
	v.Pan = r2.Point{
		X: (container.Width - page.Width*v.Zoom) / 2,
		Y: v.fitTopMargin * v.Zoom,
	}
	return true
}

// Reset restores the identity transform and re-arms AutoFit.
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.Pan = r2.Point{}
	v.fitted = false
}

// Wheel zooms when the ctrl/cmd modifier is held and pans 1:1 otherwise.
func (v *Viewport) Wheel(delta r2.Point, modifier bool) {
	if modifier {
		v.SetZoom(v.Zoom - delta.Y*v.wheelFactor)
		return
	}
	v.Pan = v.Pan.Sub(delta)
}

// DoubleClick zooms in one step keeping the document point under cursor
// fixed. cursor is in content coordinates.
func (v *Viewport) DoubleClick(cursor r2.Point) {
	old := v.Zoom
	v.SetZoom(old + v.step)
	v.Pan = cursor.Sub(cursor.Sub(v.Pan).Mul(v.Zoom / old))
}
