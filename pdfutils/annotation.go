package pdfutils

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	BlendNormal string = "Normal"
	BlendDarken        = "Darken"
)

// PageGeometry relates the rendered page bitmap to the PDF page. Widths and
// heights are as displayed, i.e. after applying Rotate.
type PageGeometry struct {
	WidthPt         float64 `json:"pageWidthPt"`
	HeightPt        float64 `json:"pageHeightPt"`
	DisplayWidthPx  float64 `json:"displayWidthPx"`
	DisplayHeightPx float64 `json:"displayHeightPx"`
	Rotate          int     `json:"rotate,omitempty"`
}

func (g PageGeometry) ScaleX() float64 { return g.WidthPt / g.DisplayWidthPx }
func (g PageGeometry) ScaleY() float64 { return g.HeightPt / g.DisplayHeightPx }

func (g PageGeometry) Valid() bool {
	return g.WidthPt > 0 && g.HeightPt > 0 && g.DisplayWidthPx > 0 && g.DisplayHeightPx > 0
}

// TextRun is one line of text. X and Y are the baseline origin in PDF
// points, bottom-left origin, in displayed page orientation.
type TextRun struct {
	Annotation string
	Text       string
	X          float64
	Y          float64
	FontSize   float64
	Bold       bool
	Color      colorful.Color
}

// ImageDraw places a raster in PDF points, displayed page orientation.
type ImageDraw struct {
	Annotation string
	Image      image.Image
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Blend      string
}

// DrawList is everything to be added to one page.
type DrawList struct {
	Texts  []TextRun
	Images []ImageDraw
}

func (d DrawList) Empty() bool { return len(d.Texts) == 0 && len(d.Images) == 0 }
