package pdfutils

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeDarkenKeepsDarkerChannels(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 3, 1))
	dst.SetRGBA(0, 0, color.RGBA{R: 40, G: 200, B: 200, A: 255})
	dst.SetRGBA(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	dst.SetRGBA(2, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	require.NoError(t, Composite(dst, src, image.Point{}, BlendDarken))

	assert.Equal(t, color.RGBA{R: 40, G: 100, B: 100, A: 255}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, dst.RGBAAt(1, 0), "white never lightens")
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, dst.RGBAAt(2, 0), "outside the source")
}

func TestCompositeOffset(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range dst.Pix {
		dst.Pix[i] = 255
	}

	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{A: 255})

	require.NoError(t, Composite(dst, src, image.Pt(2, 3), BlendNormal))

	assert.Equal(t, color.RGBA{A: 255}, dst.RGBAAt(2, 3))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, dst.RGBAAt(1, 3))
}
