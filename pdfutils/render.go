package pdfutils

import (
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/pkg/errors"
)

// ReadPageGeometry reports the displayed page size in points, taken from the
// visible box like MuPDF does. The display size equals the point size, i.e.
// a 72 dpi bitmap.
func ReadPageGeometry(doc []byte, pageIndex int) (PageGeometry, error) {
	reader, err := openDocument(doc)
	if err != nil {
		return PageGeometry{}, err
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return PageGeometry{}, errors.Wrapf(ErrDocument, "%v", err)
	}

	if pageIndex < 0 || pageIndex >= numPages {
		return PageGeometry{}, errors.Wrapf(ErrPageIndex, "page %d of %d", pageIndex+1, numPages)
	}

	page, err := reader.GetPage(pageIndex + 1)
	if err != nil {
		return PageGeometry{}, errors.Wrapf(ErrDocument, "page %d: %v", pageIndex+1, err)
	}

	box, err := VisibleBox(page)
	if err != nil {
		return PageGeometry{}, errors.Wrapf(ErrDocument, "page %d: %v", pageIndex+1, err)
	}

	rotate := PageRotation(page)
	w, h := box.Width(), box.Height()
	display := ApplyPageRotation(rotate, w, h, []float64{0, 0, w, h})
	width := display[2] - display[0]
	height := display[3] - display[1]

	return PageGeometry{
		WidthPt:         width,
		HeightPt:        height,
		DisplayWidthPx:  width,
		DisplayHeightPx: height,
		Rotate:          rotate,
	}, nil
}

// FitzRenderer rasterizes pages with MuPDF.
type FitzRenderer struct {
	DPI float64
}

// Render returns the page bitmap and the geometry relating it to the page.
func (r FitzRenderer) Render(doc []byte, pageIndex int) (image.Image, PageGeometry, error) {
	geom, err := ReadPageGeometry(doc, pageIndex)
	if err != nil {
		return nil, PageGeometry{}, err
	}

	imgDoc, err := fitz.NewFromMemory(doc)
	if err != nil {
		return nil, PageGeometry{}, errors.Wrapf(ErrDocument, "%v", err)
	}

	defer imgDoc.Close()

	dpi := r.DPI
	if dpi <= 0 {
		dpi = 72
	}

	img, err := imgDoc.ImageDPI(pageIndex, dpi)
	if err != nil {
		return nil, PageGeometry{}, errors.Wrapf(err, "render page %d", pageIndex+1)
	}

	size := img.Bounds().Size()
	geom.DisplayWidthPx = float64(size.X)
	geom.DisplayHeightPx = float64(size.Y)

	return img, geom, nil
}
