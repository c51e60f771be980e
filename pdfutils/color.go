package pdfutils

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

func ColorToHex(c colorful.Color) string {
	return c.Clamped().Hex()
}

func ParseTextColor(hex string) (colorful.Color, error) {
	if hex == "" {
		return colorful.Color{}, nil
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrapf(err, "text color %q", hex)
	}

	return c, nil
}

// GrayContrast converts img to grayscale and stretches contrast around the
// midpoint. Alpha is kept.
func GrayContrast(img image.Image, contrast float64) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.At(x, y)
			c, ok := colorful.MakeColor(px)
			if !ok {
				continue
			}
			_, _, _, a := px.RGBA()

			// sRGB luma weights, applied in gamma space like a css filter
			l := 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
			l = (l-0.5)*contrast + 0.5

			v, _, _ := colorful.Color{R: l, G: l, B: l}.Clamped().RGB255()
			out.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: uint8(a >> 8)})
		}
	}

	return out
}
