package pdfutils

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/model"
)

func PageRotation(page *model.PdfPage) int {
	if page.Rotate == nil {
		return 0
	}
	angle := int(*page.Rotate) % 360
	if angle < 0 {
		angle += 360
	}
	return angle
}

// VisibleBox is the region a viewer shows: the CropBox when the page has one,
// else the MediaBox.
func VisibleBox(page *model.PdfPage) (*model.PdfRectangle, error) {
	if page.CropBox != nil && page.CropBox.Width() > 0 && page.CropBox.Height() > 0 {
		return page.CropBox, nil
	}
	return page.GetMediaBox()
}

// ApplyPageRotation maps a rect in page user space to displayed page space.
func ApplyPageRotation(rotate int, width, height float64, rect []float64) []float64 {
	switch rotate {
	case 90:
		return []float64{rect[1], width - rect[2], rect[3], width - rect[0]}
	case 180:
		return []float64{width - rect[2], height - rect[3], width - rect[0], height - rect[1]}
	case 270:
		return []float64{height - rect[3], rect[0], height - rect[1], rect[2]}
	}
	return rect
}

// DisplayToUserMatrix is the inverse of ApplyPageRotation as a content
// stream cm operand: it maps displayed page coordinates into user space of
// a page whose unrotated visible box has the given size.
func DisplayToUserMatrix(rotate int, width, height float64) [6]float64 {
	switch rotate {
	case 90:
		return [6]float64{0, 1, -1, 0, width, 0}
	case 180:
		return [6]float64{-1, 0, 0, -1, width, height}
	case 270:
		return [6]float64{0, -1, 1, 0, 0, height}
	}
	return [6]float64{1, 0, 0, 1, 0, 0}
}

// FitRect scales an imgW×imgH image into box preserving aspect ratio and
// centres it.
func FitRect(box r2.Rect, imgW, imgH float64) r2.Rect {
	if imgW <= 0 || imgH <= 0 {
		return box
	}
	size := box.Size()
	scale := math.Min(size.X/imgW, size.Y/imgH)
	w, h := imgW*scale, imgH*scale
	c := box.Center()
	return r2.RectFromCenterSize(c, r2.Point{X: w, Y: h})
}
