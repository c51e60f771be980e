package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/mgmeyers/pdfannotator/pdfutils"
	"github.com/mgmeyers/pdfannotator/recents"
	"github.com/pkg/errors"
)

type app struct {
	cfg Config
}

type exportCmd struct {
	InputPDF string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
	Session  string `arg:"" name:"session" help:"Path to session JSON" type:"path"`
	Output   string `short:"o" required:"" type:"path" help:"Path of the exported PDF"`
}

func (c *exportCmd) Run(a *app) error {
	doc, err := os.ReadFile(c.InputPDF)
	if err != nil {
		return err
	}

	sess, err := ReadSession(c.Session)
	if err != nil {
		return err
	}

	author, err := pdfutils.NewUnipdfAuthor(a.cfg.Export)
	if err != nil {
		return err
	}

	exporter := &pdfutils.Exporter{Config: a.cfg.Export, Author: author, Logger: logger}

	out, err := exporter.Export(context.Background(), doc, sess.ExportRequest())
	if err != nil {
		return err
	}

	if err := pdfutils.VerifyPageCount(doc, out); err != nil {
		return err
	}

	return os.WriteFile(c.Output, out, 0o644)
}

type previewCmd struct {
	InputPDF     string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
	Session      string `arg:"" name:"session" help:"Path to session JSON" type:"path"`
	Output       string `short:"o" required:"" type:"path" help:"Path of the preview image"`
	ImageFormat  string `short:"f" enum:"jpg,png" default:"png" help:"Image format. Supports png and jpg"`
	ImageQuality int    `short:"q" default:"90" help:"Image quality. Only applies to jpg images"`
}

func (c *previewCmd) Run(a *app) error {
	doc, err := os.ReadFile(c.InputPDF)
	if err != nil {
		return err
	}

	sess, err := ReadSession(c.Session)
	if err != nil {
		return err
	}

	pageImg, geom, err := pdfutils.FitzRenderer{DPI: a.cfg.Export.DPI}.Render(doc, sess.Page)
	if err != nil {
		return err
	}

	if !sess.PageGeometry.Valid() {
		sess.PageGeometry = geom
	}

	img := Preview{Config: a.cfg.Export, Logger: logger}.Compose(pageImg, sess)

	return pdfutils.WriteImage(img, c.Output, c.ImageFormat, c.ImageQuality)
}

type applyCmd struct {
	Script    string  `arg:"" name:"script" help:"Path to a JSON list of editor ops" type:"path"`
	InputPDF  string  `short:"i" type:"path" help:"PDF to start a new session on"`
	Session   string  `short:"s" type:"path" help:"Session JSON to continue"`
	Page      int     `short:"p" default:"0" help:"Page index for a new session"`
	Output    string  `short:"o" default:"-" help:"Where to write the session JSON"`
	Width     float64 `default:"1200" help:"Editor container width"`
	Height    float64 `default:"900" help:"Editor container height"`
	RandomIDs bool    `help:"Use random ids instead of counters"`
}

func (c *applyCmd) load(a *app) (Session, error) {
	if c.Session != "" {
		return ReadSession(c.Session)
	}

	if c.InputPDF == "" {
		return Session{}, errors.New("either --input-pdf or --session is required")
	}

	doc, err := os.ReadFile(c.InputPDF)
	if err != nil {
		return Session{}, err
	}

	geom, err := pdfutils.ReadPageGeometry(doc, c.Page)
	if err != nil {
		return Session{}, err
	}

	scale := a.cfg.Export.DPI / 72
	geom.DisplayWidthPx *= scale
	geom.DisplayHeightPx *= scale

	return Session{Page: c.Page, PageGeometry: geom}, nil
}

func (c *applyCmd) Run(a *app) error {
	sess, err := c.load(a)
	if err != nil {
		return err
	}

	if !sess.PageGeometry.Valid() {
		return errors.Errorf("session has no usable page geometry")
	}

	ops, err := ReadScript(c.Script)
	if err != nil {
		return err
	}

	opts := editor.Options{Config: a.cfg.Editor, Logger: logger}
	if c.RandomIDs {
		opts.IDs = &editor.RandomIDs{}
	}

	ed := editor.New(opts)
	ed.LoadDocument(editor.Size{Width: sess.DisplayWidthPx, Height: sess.DisplayHeightPx})
	ed.Restore(sess.Snapshot)
	ed.PageRendered(editor.Size{Width: c.Width, Height: c.Height})

	runner := &Runner{Editor: ed}

	store, err := recents.Open(a.cfg.Recents.Path, a.cfg.Recents.Key, logger)
	if err != nil {
		logger.WithError(err).Warn("recent signatures unavailable")
	} else {
		defer store.Close()
		runner.Recents = store
		logger.WithField("recents", len(store.List())).Debug("recent signatures loaded")
	}

	if err := runner.Run(ops); err != nil {
		return err
	}

	sess.Snapshot = ed.Snapshot()

	return WriteSession(c.Output, sess)
}

type recentsListCmd struct{}

func (c *recentsListCmd) Run(a *app) error {
	store, err := recents.Open(a.cfg.Recents.Path, a.cfg.Recents.Key, logger)
	if err != nil {
		return err
	}

	defer store.Close()

	for _, src := range store.List() {
		fmt.Println(src)
	}

	return nil
}

type recentsAddCmd struct {
	Src string `arg:"" name:"src" help:"Signature data URL or image path"`
}

func (c *recentsAddCmd) Run(a *app) error {
	store, err := recents.Open(a.cfg.Recents.Path, a.cfg.Recents.Key, logger)
	if err != nil {
		return err
	}

	defer store.Close()

	store.Add(c.Src)
	return nil
}

var cli struct {
	Config   string `short:"c" type:"path" help:"Path to a TOML config file"`
	LogLevel string `short:"l" enum:"debug,info,warn,error" default:"warn" help:"Log level"`

	Export  exportCmd  `cmd:"" help:"Draw session annotations into a copy of the PDF"`
	Preview previewCmd `cmd:"" help:"Render the session page with its annotations to an image"`
	Apply   applyCmd   `cmd:"" help:"Run editor ops headlessly and write the resulting session"`
	Recents struct {
		List recentsListCmd `cmd:"" help:"Print recent signatures, newest first"`
		Add  recentsAddCmd  `cmd:"" help:"Remember a signature"`
	} `cmd:"" help:"Manage recent signatures"`
}

func main() {
	ctx := kong.Parse(&cli)

	endIfErr(setLogLevel(cli.LogLevel))

	cfg, err := LoadConfig(cli.Config)
	endIfErr(err)

	endIfErr(ctx.Run(&app{cfg: cfg}))
}
