// Package editor implements the annotation editing core: viewport
// transform, annotation store, selection, drag/resize/snap geometry,
// duplication and a bounded undo history.
//
// An Editor is not safe for concurrent use. All calls are expected to come
// from a single event loop; callers that mutate it from several goroutines
// must serialise access themselves.
package editor

import (
	"io"

	"github.com/golang/geo/r2"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Config Config
	IDs    IDGenerator
	Logger logrus.FieldLogger
}

type Modifiers struct {
	Shift bool
	// Ctrl is ctrl on most platforms and cmd on macOS.
	Ctrl bool
}

type TargetKind int

const (
	TargetCanvas TargetKind = iota
	TargetPage
	TargetText
	TargetSignature
	TargetHandle
)

// Target is what a pointer-down landed on.
type Target struct {
	Kind   TargetKind
	ID     string
	Corner Corner
}

type Editor struct {
	cfg Config
	log logrus.FieldLogger
	ids IDGenerator

	viewport  *Viewport
	store     *Store
	selection *Selection
	drag      *DragEngine
	dup       *Duplicator
	history   *History

	canvas    Size
	container Size

	gesture     gesture
	lastPointer r2.Point

	// editingText is the id of the text annotation currently being typed
	// into. Consecutive edits to it share one history entry.
	editingText string
}

func New(opts Options) *Editor {
	cfg := opts.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	ids := opts.IDs
	if ids == nil {
		ids = &CounterIDs{}
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}

	e := &Editor{
		cfg:       cfg,
		log:       log,
		ids:       ids,
		viewport:  NewViewport(cfg),
		store:     NewStore(cfg),
		selection: &Selection{},
		gesture:   idleGesture{},
	}
	e.store.OnRemove = e.selection.Evict
	e.drag = NewDragEngine(cfg, e.store, e.viewport)
	e.dup = NewDuplicator(cfg, e.store, ids)
	e.history = NewHistory(e.store, cfg.HistoryCapacity)
	e.history.OnRestore = func() {
		e.selection.Clear()
		e.editingText = ""
	}
	return e
}

func (e *Editor) Config() Config          { return e.cfg }
func (e *Editor) Viewport() *Viewport     { return e.viewport }
func (e *Editor) Texts() []TextAnnotation { return e.store.Texts() }

func (e *Editor) Signatures() []SignatureAnnotation { return e.store.Signatures() }

func (e *Editor) Text(id string) (TextAnnotation, bool)           { return e.store.Text(id) }
func (e *Editor) Signature(id string) (SignatureAnnotation, bool) { return e.store.Signature(id) }

// Snapshot returns an independent copy of the annotation model.
func (e *Editor) Snapshot() Snapshot {
	snap, _ := e.store.capture()
	return snap.Clone()
}

func (e *Editor) SelectedTexts() []string { return e.selection.Texts() }
func (e *Editor) ActiveSignature() string { return e.selection.Signature() }
func (e *Editor) Guides() Guides          { return e.drag.Guides() }
func (e *Editor) Mode() Mode              { return e.gesture.mode() }
func (e *Editor) Canvas() Size            { return e.canvas }
func (e *Editor) History() *History       { return e.history }

// Marquee returns the rubber-band rectangle while one is being drawn.
func (e *Editor) Marquee() (Marquee, bool) {
	if g, ok := e.gesture.(*marqueeGesture); ok {
		return g.marquee, true
	}
	return Marquee{}, false
}

// LoadDocument starts a fresh session on a page of the given display size.
// Annotations, selection and history are discarded and auto-fit re-armed.
func (e *Editor) LoadDocument(canvas Size) {
	e.canvas = canvas
	e.drag.Canvas = canvas
	e.dup.Canvas = canvas
	e.gesture = idleGesture{}
	e.editingText = ""
	e.selection.Clear()
	e.store.Replace(Snapshot{})
	e.history.Reset()
	e.viewport.Reset()
	e.log.WithField("canvas", canvas).Debug("document loaded")
}

// Restore installs snap as the session contents and starts a new history.
func (e *Editor) Restore(snap Snapshot) {
	e.gesture = idleGesture{}
	e.editingText = ""
	e.selection.Clear()
	e.store.Replace(snap)
	e.history.Reset()
}

func (e *Editor) SetContainer(container Size) { e.container = container }

// PageRendered is called after each successful page render. The first call
// per document fits the page into the container.
func (e *Editor) PageRendered(container Size) bool {
	e.container = container
	return e.viewport.AutoFit(container, e.canvas)
}

func (e *Editor) record() {
	e.editingText = ""
	e.history.Record()
}

// place centres a box of size w×h on the visible centre of the viewport.
func (e *Editor) place(w, h float64) Box {
	c := r2.Point{X: e.canvas.Width / 2, Y: e.canvas.Height / 2}
	if e.container.Width > 0 && e.container.Height > 0 {
		c = e.viewport.VisibleCenter(e.container)
	}
	box := Box{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
	if e.canvas.Width > 0 && e.canvas.Height > 0 {
		box = box.ClampInto(e.canvas)
	}
	return box
}

func (e *Editor) AddText() TextAnnotation {
	e.record()
	size := e.cfg.DefaultFontSize
	t := TextAnnotation{
		ID:       newUniqueID(e.ids, KindText, e.store.Has),
		Box:      e.place(e.cfg.DefaultTextWidth, e.cfg.minTextHeight(size)),
		Text:     e.cfg.DefaultText,
		FontSize: size,
		Align:    AlignLeft,
	}
	e.store.AddText(t)
	e.selection.Click(t.ID, false)
	t, _ = e.store.Text(t.ID)
	return t
}

// AddSignature inserts src as a new signature centred in the viewport. It
// serves both local file picks and images delivered by a remote relay.
func (e *Editor) AddSignature(src string) SignatureAnnotation {
	e.record()
	s := SignatureAnnotation{
		ID:    newUniqueID(e.ids, KindSignature, e.store.Has),
		Box:   e.place(e.cfg.SignatureWidth, e.cfg.SignatureHeight),
		Src:   src,
		Style: StyleDefault,
	}
	e.store.AddSignature(s)
	e.selection.SelectSignature(s.ID)
	return s
}

// Delete removes everything currently selected and reports how many
// annotations went away.
func (e *Editor) Delete() int {
	ids := e.selection.Texts()
	if sig := e.selection.Signature(); sig != "" {
		ids = append(ids, sig)
	}
	if len(ids) == 0 {
		return 0
	}
	e.record()
	n := 0
	for _, id := range ids {
		if e.store.Remove(id) {
			n++
		}
	}
	return n
}

// Duplicate copies the text annotation id in dir and selects the copy.
func (e *Editor) Duplicate(id string, dir Direction) (TextAnnotation, bool) {
	if _, ok := e.store.Text(id); !ok {
		return TextAnnotation{}, false
	}
	e.record()
	dup, ok := e.dup.Duplicate(id, dir)
	if ok {
		e.selection.Click(dup.ID, false)
	}
	return dup, ok
}

// DuplicateSelection duplicates the most recently selected text annotation.
func (e *Editor) DuplicateSelection(dir Direction) (TextAnnotation, bool) {
	ids := e.selection.Texts()
	if len(ids) == 0 {
		return TextAnnotation{}, false
	}
	return e.Duplicate(ids[len(ids)-1], dir)
}

func (e *Editor) updateSelectedTexts(fn func(TextAnnotation) TextPatch) bool {
	ids := e.selection.Texts()
	if len(ids) == 0 {
		return false
	}
	e.record()
	for _, id := range ids {
		if t, ok := e.store.Text(id); ok {
			e.store.UpdateText(id, fn(t))
		}
	}
	return true
}

func (e *Editor) SetFontSize(size float64) bool {
	if size < e.cfg.MinFontSize {
		size = e.cfg.MinFontSize
	}
	return e.updateSelectedTexts(func(t TextAnnotation) TextPatch {
		p := TextPatch{FontSize: ptr(size)}
		if h := e.cfg.fitTextHeight(t.Text, size); t.Height < h {
			p.Height = ptr(h)
		}
		return p
	})
}

func (e *Editor) SetBold(bold bool) bool {
	return e.updateSelectedTexts(func(TextAnnotation) TextPatch {
		return TextPatch{Bold: ptr(bold)}
	})
}

func (e *Editor) SetAlign(align Align) bool {
	if !align.Valid() {
		return false
	}
	return e.updateSelectedTexts(func(TextAnnotation) TextPatch {
		return TextPatch{Align: ptr(align)}
	})
}

func (e *Editor) SetSignatureStyle(style SignatureStyle) bool {
	id := e.selection.Signature()
	if id == "" || !style.Valid() {
		return false
	}
	e.record()
	return e.store.UpdateSignature(id, SignaturePatch{Style: ptr(style)})
}

// SetText replaces the text of id, growing the box to fit its lines.
func (e *Editor) SetText(id, text string) bool {
	t, ok := e.store.Text(id)
	if !ok {
		return false
	}
	if e.editingText != id {
		e.record()
		e.editingText = id
	}
	p := TextPatch{Text: ptr(text)}
	if h := e.cfg.fitTextHeight(text, t.FontSize); t.Height < h {
		p.Height = ptr(h)
	}
	return e.store.UpdateText(id, p)
}

// Select applies a click on the annotation id of either kind.
func (e *Editor) Select(id string, shift bool) bool {
	if _, ok := e.store.Text(id); ok {
		e.selection.Click(id, shift)
		return true
	}
	if _, ok := e.store.Signature(id); ok {
		e.selection.SelectSignature(id)
		return true
	}
	return false
}

func (e *Editor) ClearSelection() { e.selection.Clear() }

func (e *Editor) ZoomIn()  { e.viewport.ZoomIn() }
func (e *Editor) ZoomOut() { e.viewport.ZoomOut() }

func (e *Editor) Wheel(delta r2.Point, mods Modifiers) {
	e.viewport.Wheel(delta, mods.Ctrl)
}

func (e *Editor) DoubleClick(p r2.Point) {
	e.viewport.DoubleClick(p)
}

func (e *Editor) Undo() bool {
	if e.gesture.mode() != ModeIdle {
		return false
	}
	return e.history.Undo()
}

func (e *Editor) Redo() bool {
	if e.gesture.mode() != ModeIdle {
		return false
	}
	return e.history.Redo()
}
