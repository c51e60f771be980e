package pdfutils

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/mgmeyers/unipdf/v3/contentstream"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/pkg/errors"
)

type overlayResources struct {
	regular core.PdfObjectName
	bold    core.PdfObjectName
	darken  core.PdfObjectName
	images  []core.PdfObjectName
}

// freeName returns base, or base with a numeric suffix, that the page does
// not already use.
func freeName(base string, taken func(core.PdfObjectName) bool) core.PdfObjectName {
	name := core.PdfObjectName(base)

	for i := 1; taken(name); i++ {
		name = core.PdfObjectName(fmt.Sprintf("%s_%d", base, i))
	}

	return name
}

// UnipdfAuthor draws overlays with unipdf. Existing page content is kept as
// is; the overlay is appended as a new content stream.
type UnipdfAuthor struct {
	Font     string
	BoldFont string

	once    sync.Once
	regular *model.PdfFont
	bold    *model.PdfFont
	err     error
}

func NewUnipdfAuthor(cfg ExportConfig) (*UnipdfAuthor, error) {
	a := &UnipdfAuthor{Font: cfg.Font, BoldFont: cfg.BoldFont}
	if err := a.loadFonts(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *UnipdfAuthor) loadFonts() error {
	a.once.Do(func() {
		a.regular, a.err = model.NewStandard14Font(model.StdFontName(a.Font))
		if a.err != nil {
			a.err = errors.Wrapf(a.err, "font %q", a.Font)
			return
		}

		a.bold, a.err = model.NewStandard14Font(model.StdFontName(a.BoldFont))
		if a.err != nil {
			a.err = errors.Wrapf(a.err, "font %q", a.BoldFont)
		}
	})
	return a.err
}

func (a *UnipdfAuthor) font(bold bool) *model.PdfFont {
	if bold {
		return a.bold
	}
	return a.regular
}

// encodable drops runes the font cannot encode.
func encodable(font *model.PdfFont, text string) string {
	enc := font.Encoder()
	if enc == nil {
		return text
	}

	return strings.Map(func(r rune) rune {
		if _, ok := enc.RuneToCharcode(r); !ok {
			return -1
		}
		return r
	}, text)
}

func (a *UnipdfAuthor) MeasureText(text string, fontSize float64, bold bool) float64 {
	if err := a.loadFonts(); err != nil {
		return 0
	}

	font := a.font(bold)
	width := 0.0

	for _, r := range encodable(font, text) {
		metrics, ok := font.GetRuneMetrics(r)
		if !ok {
			continue
		}
		width += metrics.Wx
	}

	return width * fontSize / 1000
}

func openDocument(doc []byte) (*model.PdfReader, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(doc))
	if err != nil {
		return nil, errors.Wrapf(ErrDocument, "%v", err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return nil, errors.Wrapf(ErrDocument, "%v", err)
	}

	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil || !ok {
			return nil, errors.Wrap(ErrDocument, "document is password protected")
		}
	}

	return reader, nil
}

func (a *UnipdfAuthor) Draw(doc []byte, pageIndex int, draws DrawList) ([]byte, error) {
	if err := a.loadFonts(); err != nil {
		return nil, err
	}

	reader, err := openDocument(doc)
	if err != nil {
		return nil, err
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, errors.Wrapf(ErrDocument, "%v", err)
	}

	if pageIndex < 0 || pageIndex >= numPages {
		return nil, errors.Wrapf(ErrPageIndex, "page %d of %d", pageIndex+1, numPages)
	}

	if draws.Empty() {
		return append([]byte{}, doc...), nil
	}

	page, err := reader.GetPage(pageIndex + 1)
	if err != nil {
		return nil, errors.Wrapf(ErrDocument, "page %d: %v", pageIndex+1, err)
	}

	appender, err := model.NewPdfAppender(reader)
	if err != nil {
		return nil, errors.Wrapf(ErrDocument, "%v", err)
	}

	if err := a.drawPage(page, draws); err != nil {
		return nil, errors.Wrapf(err, "draw page %d", pageIndex+1)
	}

	// only the target page goes into the update section, the rest of the
	// file is left byte for byte
	appender.UpdatePage(page)

	var buf bytes.Buffer
	if err := appender.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write document")
	}

	return buf.Bytes(), nil
}

func (a *UnipdfAuthor) drawPage(page *model.PdfPage, draws DrawList) error {
	box, err := VisibleBox(page)
	if err != nil {
		return err
	}

	res, err := a.addResources(page, draws)
	if err != nil {
		return err
	}

	cc := contentstream.NewContentCreator()
	cc.Add_q()

	m := DisplayToUserMatrix(PageRotation(page), box.Width(), box.Height())
	cc.Add_cm(1, 0, 0, 1, math.Min(box.Llx, box.Urx), math.Min(box.Lly, box.Ury))
	cc.Add_cm(m[0], m[1], m[2], m[3], m[4], m[5])

	for i, img := range draws.Images {
		cc.Add_q()
		if img.Blend == BlendDarken {
			cc.Add_gs(res.darken)
		}
		cc.Add_cm(img.Width, 0, 0, img.Height, img.X, img.Y)
		cc.Add_Do(res.images[i])
		cc.Add_Q()
	}

	for _, run := range draws.Texts {
		font := a.font(run.Bold)
		text := encodable(font, run.Text)
		if text == "" {
			continue
		}

		name := res.regular
		if run.Bold {
			name = res.bold
		}

		r, g, b := run.Color.Clamped().RGB255()

		cc.Add_BT()
		cc.Add_rg(float64(r)/255, float64(g)/255, float64(b)/255)
		cc.Add_Tf(name, run.FontSize)
		cc.Add_Td(run.X, run.Y)
		cc.Add_Tj(*core.MakeStringFromBytes(font.Encoder().Encode(text)))
		cc.Add_ET()
	}

	cc.Add_Q()

	streams, err := page.GetContentStreams()
	if err != nil {
		return err
	}

	// isolate the existing content so its graphics state cannot leak into
	// the overlay
	wrapped := make([]string, 0, len(streams)+3)
	wrapped = append(wrapped, "q")
	wrapped = append(wrapped, streams...)
	wrapped = append(wrapped, "Q", cc.String())

	return page.SetContentStreams(wrapped, core.NewFlateEncoder())
}

func (a *UnipdfAuthor) addResources(page *model.PdfPage, draws DrawList) (overlayResources, error) {
	res := overlayResources{}

	if len(draws.Texts) > 0 {
		res.regular = freeName("AnnotF1", page.HasFontByName)
		if err := page.AddFont(res.regular, a.regular.ToPdfObject()); err != nil {
			return res, err
		}

		res.bold = freeName("AnnotF2", page.HasFontByName)
		if err := page.AddFont(res.bold, a.bold.ToPdfObject()); err != nil {
			return res, err
		}
	}

	if len(draws.Images) == 0 {
		return res, nil
	}

	gs := core.MakeDict()
	gs.Set("Type", core.MakeName("ExtGState"))
	gs.Set("BM", core.MakeName(BlendDarken))

	res.darken = freeName("AnnotGSDarken", page.HasExtGState)
	if err := page.AddExtGState(res.darken, gs); err != nil {
		return res, err
	}

	for i, draw := range draws.Images {
		img, err := model.ImageHandling.NewImageFromGoImage(draw.Image)
		if err != nil {
			return res, errors.Wrapf(err, "image for %s", draw.Annotation)
		}

		ximg, err := model.NewXObjectImageFromImage(img, nil, core.NewFlateEncoder())
		if err != nil {
			return res, errors.Wrapf(err, "xobject for %s", draw.Annotation)
		}

		name := freeName(fmt.Sprintf("AnnotIm%d", i+1), page.HasXObjectByName)
		if err := page.AddImageResource(name, ximg); err != nil {
			return res, err
		}
		res.images = append(res.images, name)
	}

	return res, nil
}
