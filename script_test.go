package main

import (
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/mgmeyers/pdfannotator/pdfutils"
	"github.com/mgmeyers/pdfannotator/recents"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScriptEditor() *editor.Editor {
	ed := editor.New(editor.Options{Config: editor.DefaultConfig()})
	ed.LoadDocument(editor.Size{Width: 612, Height: 792})
	return ed
}

func TestRunnerPlaysOps(t *testing.T) {
	ed := newScriptEditor()
	store := newRecents(t)
	r := &Runner{Editor: ed, Recents: store}

	err := r.Run([]Op{
		{Op: "addText", Text: "Name"},
		{Op: "bold", Bold: true},
		{Op: "align", Align: editor.AlignRight},
		{Op: "duplicate", Direction: editor.DirectionDown},
		{Op: "addSignature", Src: "sig.png"},
		{Op: "style", Style: editor.StyleGray},
	})
	require.NoError(t, err)

	texts := ed.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "Name", texts[1].Text)
	assert.True(t, texts[1].Bold)
	assert.Equal(t, editor.AlignRight, texts[1].Align)
	assert.Equal(t, texts[0].ID, texts[1].DuplicatedFrom)

	sigs := ed.Signatures()
	require.Len(t, sigs, 1)
	assert.Equal(t, editor.StyleGray, sigs[0].Style)
	assert.Equal(t, []string{"sig.png"}, store.List())
}

func newRecents(t *testing.T, srcs ...string) *recents.Store {
	t.Helper()

	logger, _ := test.NewNullLogger()
	store, err := recents.NewMemory("", logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, src := range srcs {
		store.Add(src)
	}

	return store
}

func TestRunnerInsertsRecentSignature(t *testing.T) {
	ed := newScriptEditor()
	store := newRecents(t, "a.png", "b.png")
	r := &Runner{Editor: ed, Recents: store}

	require.NoError(t, r.Run([]Op{{Op: "addRecentSignature", Value: 1}}))

	sigs := ed.Signatures()
	require.Len(t, sigs, 1)
	assert.Equal(t, "a.png", sigs[0].Src)
	assert.Equal(t, sigs[0].ID, ed.ActiveSignature())
	assert.Equal(t, []string{"a.png", "b.png"}, store.List())

	for _, v := range []float64{2, -1, 0.5} {
		assert.Error(t, r.Run([]Op{{Op: "addRecentSignature", Value: v}}), "index %v", v)
	}

	assert.Error(t, (&Runner{Editor: ed}).Run([]Op{{Op: "addRecentSignature"}}))
}

func TestRunnerPointerDrag(t *testing.T) {
	ed := newScriptEditor()
	r := &Runner{Editor: ed}
	require.NoError(t, r.Run([]Op{{Op: "addText"}}))

	start := ed.Texts()[0]
	p := ed.Viewport().ToContent(r2.Point{X: start.CenterX(), Y: start.CenterY()})

	require.NoError(t, r.Run([]Op{
		{Op: "pointerDown", X: p.X, Y: p.Y},
		{Op: "pointerMove", X: p.X + 30, Y: p.Y + 10},
		{Op: "pointerUp", X: p.X + 30, Y: p.Y + 10},
	}))

	moved := ed.Texts()[0]
	assert.InDelta(t, start.X+30, moved.X, 1e-9)
	assert.InDelta(t, start.Y+10, moved.Y, 1e-9)

	require.NoError(t, r.Run([]Op{{Op: "undo"}}))
	assert.Equal(t, start.Box, ed.Texts()[0].Box)
}

func TestRunnerErrors(t *testing.T) {
	r := &Runner{Editor: newScriptEditor()}

	for _, op := range []Op{
		{Op: "explode"},
		{Op: "setText", ID: "missing"},
		{Op: "addSignature"},
		{Op: "align", Align: "justify"},
		{Op: "duplicate", Direction: "left"},
	} {
		assert.Error(t, r.Run([]Op{op}), op.Op)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	sess := Session{
		Page:         2,
		PageGeometry: pdfutils.PageGeometry{WidthPt: 612, HeightPt: 792, DisplayWidthPx: 816, DisplayHeightPx: 1056},
		Snapshot: editor.Snapshot{
			Texts: []editor.TextAnnotation{{ID: "text-1", Box: editor.Box{X: 1, Y: 2, Width: 3, Height: 16}, Text: "a", FontSize: 12, Align: editor.AlignLeft}},
		},
	}

	require.NoError(t, WriteSession(path, sess))

	got, err := ReadSession(path)
	require.NoError(t, err)
	assert.Equal(t, sess.Page, got.Page)
	assert.Equal(t, sess.PageGeometry, got.PageGeometry)
	assert.Equal(t, sess.Texts, got.Texts)
	assert.Empty(t, got.Signatures)

	req := got.ExportRequest()
	assert.Equal(t, 2, req.PageIndex)
	assert.Len(t, req.Texts, 1)
}
