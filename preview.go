package main

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/mgmeyers/pdfannotator/pdfutils"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Preview draws the session annotations over a rendered page. Text uses a
// fixed bitmap face, so only placement and alignment are faithful.
type Preview struct {
	Config pdfutils.ExportConfig
	Logger logrus.FieldLogger
}

func (p Preview) Compose(page image.Image, sess Session) *image.RGBA {
	bounds := page.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), page, bounds.Min, draw.Src)

	sx := float64(bounds.Dx()) / sess.DisplayWidthPx
	sy := float64(bounds.Dy()) / sess.DisplayHeightPx

	for _, sig := range sess.Signatures {
		img, err := pdfutils.DecodeSignature(sig.Src, sig.Style == editor.StyleGray, p.Config.SignatureRasterWidth)
		if err != nil {
			p.Logger.WithFields(logrus.Fields{
				"annotation": sig.ID,
				"error":      err,
			}).Warn("skipping signature")
			continue
		}

		box := r2.RectFromPoints(
			r2.Point{X: sig.X * sx, Y: sig.Y * sy},
			r2.Point{X: sig.Right() * sx, Y: sig.Bottom() * sy},
		)
		size := img.Bounds().Size()
		fit := pdfutils.FitRect(box, float64(size.X), float64(size.Y))

		dst := image.Rect(
			int(math.Round(fit.X.Lo)),
			int(math.Round(fit.Y.Lo)),
			int(math.Round(fit.X.Hi)),
			int(math.Round(fit.Y.Hi)),
		)

		scaled := image.NewRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		if err := pdfutils.Composite(out, scaled, dst.Min, pdfutils.BlendDarken); err != nil {
			p.Logger.WithFields(logrus.Fields{
				"annotation": sig.ID,
				"error":      err,
			}).Warn("skipping signature")
		}
	}

	textColor, err := pdfutils.ParseTextColor(p.Config.TextColor)
	if err != nil {
		textColor = colorful.Color{}
	}
	r, g, b := textColor.Clamped().RGB255()
	src := image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 255})

	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()

	for _, t := range sess.Texts {
		d := &font.Drawer{Dst: out, Src: src, Face: face}
		left := (t.X + p.Config.PaddingX) * sx
		width := (t.Width - 2*p.Config.PaddingX) * sx
		top := (t.Y+p.Config.PaddingY)*sy + float64(metrics.Ascent.Ceil())

		for i, line := range pdfutils.SplitLines(t.Text) {
			x := left
			w := float64(d.MeasureString(line).Ceil())

			switch t.Align {
			case editor.AlignCenter:
				x += (width - w) / 2
			case editor.AlignRight:
				x += width - w
			}

			d.Dot = fixed.P(int(math.Round(x)), int(math.Round(top))+i*lineHeight)
			d.DrawString(line)
		}
	}

	return out
}
