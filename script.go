package main

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/pkg/errors"
)

// Op is one scripted user action. Pointer positions are relative to the
// editor container, like browser offsetX/offsetY. For wheel, X and Y are the
// scroll delta.
type Op struct {
	Op        string                `json:"op"`
	ID        string                `json:"id,omitempty"`
	Text      string                `json:"text,omitempty"`
	Src       string                `json:"src,omitempty"`
	X         float64               `json:"x,omitempty"`
	Y         float64               `json:"y,omitempty"`
	Shift     bool                  `json:"shift,omitempty"`
	Ctrl      bool                  `json:"ctrl,omitempty"`
	Value     float64               `json:"value,omitempty"`
	Bold      bool                  `json:"bold,omitempty"`
	Align     editor.Align          `json:"align,omitempty"`
	Style     editor.SignatureStyle `json:"style,omitempty"`
	Direction editor.Direction      `json:"direction,omitempty"`
}

func ReadScript(path string) ([]Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ops := []Op{}
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, errors.Wrapf(err, "parse script %s", path)
	}

	return ops, nil
}

// RecentSignatures is the list of recently used signature sources, newest
// first.
type RecentSignatures interface {
	List() []string
	Add(src string) []string
}

// Runner plays ops against an editor. Inserted signatures are remembered in
// Recents when it is set.
type Runner struct {
	Editor  *editor.Editor
	Recents RecentSignatures
}

func (r *Runner) insertSignature(src string) {
	r.Editor.AddSignature(src)
	if r.Recents != nil {
		r.Recents.Add(src)
	}
}

func (r *Runner) Run(ops []Op) error {
	for i, op := range ops {
		if err := r.apply(op); err != nil {
			return errors.Wrapf(err, "op %d (%s)", i+1, op.Op)
		}
	}
	return nil
}

func (r *Runner) apply(op Op) error {
	e := r.Editor
	p := r2.Point{X: op.X, Y: op.Y}
	mods := editor.Modifiers{Shift: op.Shift, Ctrl: op.Ctrl}

	switch op.Op {
	case "addText":
		t := e.AddText()
		if op.Text != "" {
			e.SetText(t.ID, op.Text)
		}
	case "addSignature":
		if op.Src == "" {
			return errors.New("missing src")
		}
		r.insertSignature(op.Src)
	case "addRecentSignature":
		if r.Recents == nil {
			return errors.New("no recent signatures available")
		}
		list := r.Recents.List()
		n := int(op.Value)
		if n < 0 || n >= len(list) || float64(n) != op.Value {
			return errors.Errorf("no recent signature %v of %d", op.Value, len(list))
		}
		r.insertSignature(list[n])
	case "setText":
		if !e.SetText(op.ID, op.Text) {
			return errors.Errorf("no text annotation %q", op.ID)
		}
	case "select":
		if !e.Select(op.ID, op.Shift) {
			return errors.Errorf("no annotation %q", op.ID)
		}
	case "clearSelection":
		e.ClearSelection()
	case "delete":
		e.Delete()
	case "duplicate":
		dir := op.Direction
		if dir == "" {
			dir = editor.DirectionRight
		}
		if dir != editor.DirectionRight && dir != editor.DirectionDown {
			return errors.Errorf("unknown direction %q", dir)
		}
		e.DuplicateSelection(dir)
	case "fontSize":
		e.SetFontSize(op.Value)
	case "bold":
		e.SetBold(op.Bold)
	case "align":
		if !op.Align.Valid() {
			return errors.Errorf("unknown alignment %q", op.Align)
		}
		e.SetAlign(op.Align)
	case "style":
		if !op.Style.Valid() {
			return errors.Errorf("unknown signature style %q", op.Style)
		}
		e.SetSignatureStyle(op.Style)
	case "pointerDown":
		e.PointerDown(p, e.HitTest(p), mods)
	case "pointerMove":
		e.PointerMove(p)
	case "pointerUp":
		e.PointerUp(p)
	case "pointerLeave":
		e.PointerLeave()
	case "wheel":
		e.Wheel(p, mods)
	case "doubleClick":
		e.DoubleClick(p)
	case "zoomIn":
		e.ZoomIn()
	case "zoomOut":
		e.ZoomOut()
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	default:
		return errors.Errorf("unknown op %q", op.Op)
	}

	return nil
}
