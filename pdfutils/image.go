package pdfutils

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

const (
	SVGMediaType = "image/svg+xml"

	grayContrast = 1.4
)

var ErrSignatureSource = errors.New("unusable signature source")

func sourceErr(err error, format string, args ...interface{}) error {
	return errors.Wrapf(ErrSignatureSource, format+": %v", append(args, err)...)
}

// ParseDataURL decodes a data: URL into its media type and payload.
func ParseDataURL(src string) (string, []byte, error) {
	rest, ok := cutPrefixFold(src, "data:")
	if !ok {
		return "", nil, errors.New("not a data url")
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data url has no payload")
	}

	params := strings.Split(header, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false

	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return "", nil, errors.Wrap(err, "decode base64 payload")
		}
		return mediaType, data, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "unescape payload")
	}

	return mediaType, []byte(data), nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// LoadSignature resolves a signature reference, either a data: URL or a
// path on disk.
func LoadSignature(src string) (string, []byte, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil, errors.New("empty source")
	}

	if _, ok := cutPrefixFold(src, "data:"); ok {
		return ParseDataURL(src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", nil, err
	}

	if strings.HasSuffix(strings.ToLower(src), ".svg") {
		return SVGMediaType, data, nil
	}

	return "", data, nil
}

func IsSVG(mediaType string, data []byte) bool {
	if mediaType == SVGMediaType {
		return true
	}
	if mediaType != "" {
		return false
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}

	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// DecodeSignature turns a signature reference into a raster ready for
// embedding. Vector markup is rasterized at rasterWidth pixels wide; gray
// applies the grayscale and contrast filter.
func DecodeSignature(src string, gray bool, rasterWidth int) (image.Image, error) {
	mediaType, data, err := LoadSignature(src)
	if err != nil {
		return nil, sourceErr(err, "load")
	}

	var img image.Image

	if IsSVG(mediaType, data) {
		img, err = RasterizeSVG(data, rasterWidth)
		if err != nil {
			return nil, sourceErr(err, "rasterize svg")
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, sourceErr(err, "decode %s", mediaType)
		}
	}

	if img.Bounds().Empty() {
		return nil, sourceErr(errors.New("empty image"), "decode")
	}

	if gray {
		return GrayContrast(img, grayContrast), nil
	}

	return img, nil
}

func RasterizeSVG(data []byte, width int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, errors.New("svg has no usable view box")
	}

	if width <= 0 {
		width = int(math.Ceil(icon.ViewBox.W))
	}

	height := int(math.Max(1, math.Round(float64(width)*icon.ViewBox.H/icon.ViewBox.W)))

	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return rgba, nil
}

func WriteImage(img image.Image, name string, format string, quality int) error {
	if format == "jpg" {
		return writeJPGImage(img, name, quality)
	}

	return writePNGImage(img, name)
}

func writeJPGImage(img image.Image, name string, quality int) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return jpeg.Encode(fd, img, &jpeg.Options{Quality: quality})
}

func writePNGImage(img image.Image, name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return png.Encode(fd, img)
}
