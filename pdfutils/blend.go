package pdfutils

import (
	"image"

	"github.com/novvoo/go-cairo/pkg/cairo"
	"github.com/pkg/errors"
)

var blendOperators = map[string]cairo.Operator{
	BlendNormal: cairo.OperatorOver,
	BlendDarken: cairo.OperatorDarken,
}

func blendOperator(blend string) cairo.Operator {
	if op, ok := blendOperators[blend]; ok {
		return op
	}
	return cairo.OperatorOver
}

// rgbaToSurface copies img into a new ARGB32 surface. Both are
// premultiplied, so only the byte order changes.
func rgbaToSurface(img *image.RGBA) (cairo.ImageSurface, error) {
	bounds := img.Bounds()
	surface := cairo.NewImageSurface(cairo.FormatARGB32, bounds.Dx(), bounds.Dy())

	imgSurf, ok := surface.(cairo.ImageSurface)
	if !ok {
		surface.Destroy()
		return nil, errors.New("could not create image surface")
	}

	data := imgSurf.GetData()
	stride := imgSurf.GetStride()

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			o := y*stride + x*4
			data[o+0] = img.Pix[i+2]
			data[o+1] = img.Pix[i+1]
			data[o+2] = img.Pix[i+0]
			data[o+3] = img.Pix[i+3]
		}
	}

	imgSurf.MarkDirty()
	return imgSurf, nil
}

func surfaceToRGBA(imgSurf cairo.ImageSurface, img *image.RGBA) {
	bounds := img.Bounds()
	data := imgSurf.GetData()
	stride := imgSurf.GetStride()

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			o := y*stride + x*4
			img.Pix[i+0] = data[o+2]
			img.Pix[i+1] = data[o+1]
			img.Pix[i+2] = data[o+0]
			img.Pix[i+3] = data[o+3]
		}
	}
}

// Composite paints src onto dst with its top-left corner at at, using the
// PDF blend mode blend.
func Composite(dst, src *image.RGBA, at image.Point, blend string) error {
	dstSurf, err := rgbaToSurface(dst)
	if err != nil {
		return err
	}
	defer dstSurf.Destroy()

	srcSurf, err := rgbaToSurface(src)
	if err != nil {
		return err
	}
	defer srcSurf.Destroy()

	ctx := cairo.NewContext(dstSurf)
	defer ctx.Destroy()

	origin := dst.Bounds().Min
	ctx.SetOperator(blendOperator(blend))
	ctx.SetSourceSurface(srcSurf, float64(at.X-origin.X), float64(at.Y-origin.Y))
	ctx.Paint()

	surfaceToRGBA(dstSurf, dst)
	return nil
}
