package pdfutils

import (
	"image"
	"image/color"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">` +
	`<path d="M10 50 L190 50" stroke="#000000" stroke-width="8" fill="none"/></svg>`

func TestParseDataURL(t *testing.T) {
	mt, data, err := ParseDataURL("data:text/plain;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mt)
	assert.Equal(t, "hello", string(data))

	mt, data, err = ParseDataURL("DATA:image/svg+xml;charset=utf-8," + url.PathEscape(testSVG))
	require.NoError(t, err)
	assert.Equal(t, SVGMediaType, mt)
	assert.Equal(t, testSVG, string(data))

	_, _, err = ParseDataURL("data:image/png;base64")
	assert.Error(t, err)

	_, _, err = ParseDataURL("blob:abc")
	assert.Error(t, err)
}

func TestIsSVG(t *testing.T) {
	assert.True(t, IsSVG(SVGMediaType, nil))
	assert.True(t, IsSVG("", []byte(`<?xml version="1.0"?><svg></svg>`)))
	assert.False(t, IsSVG("image/png", []byte("<svg")))
	assert.False(t, IsSVG("", []byte{0x89, 'P', 'N', 'G'}))
}

func TestDecodeSignatureRaster(t *testing.T) {
	img, err := DecodeSignature(pngDataURL(t, 30, 10), false, 600)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(30, 10), img.Bounds().Size())
}

func TestDecodeSignatureSVG(t *testing.T) {
	img, err := DecodeSignature("data:image/svg+xml,"+url.PathEscape(testSVG), false, 600)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(600, 300), img.Bounds().Size())

	_, _, _, a := img.At(300, 150).RGBA()
	assert.NotZero(t, a, "stroke is drawn")
	_, _, _, a = img.At(300, 10).RGBA()
	assert.Zero(t, a, "background stays transparent")
}

func TestDecodeSignatureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.svg")
	require.NoError(t, os.WriteFile(path, []byte(testSVG), 0o644))

	img, err := DecodeSignature(path, true, 100)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 50), img.Bounds().Size())
}

func TestDecodeSignatureErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"data:image/png;base64,AAAA",
		"data:image/svg+xml,not-svg",
		filepath.Join(t.TempDir(), "missing.png"),
	} {
		_, err := DecodeSignature(src, false, 600)
		assert.True(t, errors.Is(err, ErrSignatureSource), "%q: %v", src, err)
	}
}

func TestGrayContrast(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := GrayContrast(img, 1.4)

	assert.Equal(t, color.NRGBA{R: 25, G: 25, B: 25, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(2, 0))
}

func TestParseTextColor(t *testing.T) {
	c, err := ParseTextColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", ColorToHex(c))

	_, err = ParseTextColor("red")
	assert.Error(t, err)
}
