package editor

import (
	"math"

	"github.com/golang/geo/r2"
)

// HitTest resolves the content point p to the object under it. Resize
// handles of the current selection win over bodies, signatures are stacked
// above text, and later annotations above earlier ones.
func (e *Editor) HitTest(p r2.Point) Target {
	half := e.cfg.HandleSize / 2
	handles := func(id string, b Box) (Target, bool) {
		r := e.viewport.ContentRect(b)
		corners := []struct {
			c  Corner
			pt r2.Point
		}{
			{CornerTopLeft, r.Lo()},
			{CornerTopRight, r2.Point{X: r.X.Hi, Y: r.Y.Lo}},
			{CornerBottomLeft, r2.Point{X: r.X.Lo, Y: r.Y.Hi}},
			{CornerBottomRight, r.Hi()},
		}
		for _, c := range corners {
			if math.Abs(p.X-c.pt.X) <= half && math.Abs(p.Y-c.pt.Y) <= half {
				return Target{Kind: TargetHandle, ID: id, Corner: c.c}, true
			}
		}
		return Target{}, false
	}

	if id := e.selection.Signature(); id != "" {
		if s, ok := e.store.Signature(id); ok {
			if t, ok := handles(id, s.Box); ok {
				return t
			}
		}
	}
	for _, id := range e.selection.Texts() {
		if t, ok := e.store.Text(id); ok {
			if h, ok := handles(id, t.Box); ok {
				return h
			}
		}
	}

	sigs := e.store.signatures
	for i := len(sigs) - 1; i >= 0; i-- {
		if e.viewport.ContentRect(sigs[i].Box).ContainsPoint(p) {
			return Target{Kind: TargetSignature, ID: sigs[i].ID}
		}
	}
	texts := e.store.texts
	for i := len(texts) - 1; i >= 0; i-- {
		if e.viewport.ContentRect(texts[i].Box).ContainsPoint(p) {
			return Target{Kind: TargetText, ID: texts[i].ID}
		}
	}
	page := Box{Width: e.canvas.Width, Height: e.canvas.Height}
	if e.viewport.ContentRect(page).ContainsPoint(p) {
		return Target{Kind: TargetPage}
	}
	return Target{Kind: TargetCanvas}
}

// PointerDown starts a gesture. It is ignored while another gesture is
// active.
func (e *Editor) PointerDown(p r2.Point, t Target, mods Modifiers) {
	if e.gesture.mode() != ModeIdle {
		return
	}
	e.lastPointer = p

	switch t.Kind {
	case TargetText:
		if _, ok := e.store.Text(t.ID); !ok {
			return
		}
		if mods.Shift {
			e.selection.Click(t.ID, true)
			return
		}
		ids := []string{t.ID}
		if e.selection.HasText(t.ID) && len(e.selection.Texts()) > 1 {
			ids = e.selection.Texts()
		} else {
			e.selection.Click(t.ID, false)
		}
		e.startDrag(p, ids, false)

	case TargetSignature:
		if _, ok := e.store.Signature(t.ID); !ok {
			return
		}
		e.selection.SelectSignature(t.ID)
		e.startDrag(p, []string{t.ID}, true)

	case TargetHandle:
		g, ok := e.drag.beginResize(p, t.ID, t.Corner)
		if !ok {
			return
		}
		e.record()
		e.gesture = g
		e.log.WithField("id", t.ID).WithField("corner", t.Corner).Debug("resize started")

	case TargetPage:
		if !mods.Shift {
			e.selection.Clear()
		}
		e.gesture = panGesture{start: p, startPan: e.viewport.Pan}

	default:
		if !mods.Shift {
			e.selection.Clear()
		}
		e.gesture = &marqueeGesture{marquee: Marquee{Start: p, End: p}, additive: mods.Shift}
	}
}

func (e *Editor) startDrag(p r2.Point, ids []string, signature bool) {
	g, ok := e.drag.beginDrag(p, ids, signature)
	if !ok {
		return
	}
	e.record()
	e.gesture = g
	e.log.WithField("ids", ids).WithField("group", g.group).Debug("drag started")
}

// PointerMove advances the active gesture. Intermediate moves never touch
// the history.
func (e *Editor) PointerMove(p r2.Point) {
	e.lastPointer = p
	switch g := e.gesture.(type) {
	case panGesture:
		e.viewport.Pan = g.startPan.Add(p.Sub(g.start))
	case dragGesture:
		e.drag.drag(g, p)
	case resizeGesture:
		e.drag.resize(g, p)
	case *marqueeGesture:
		g.marquee.End = p
	}
}

// PointerUp finalizes the active gesture at p.
func (e *Editor) PointerUp(p r2.Point) {
	e.PointerMove(p)
	if g, ok := e.gesture.(*marqueeGesture); ok && g.marquee.Exceeds(e.cfg.MarqueeMinSize) {
		ids := MarqueeHits(g.marquee, e.store.texts, e.viewport)
		if g.additive {
			for _, id := range ids {
				if !e.selection.HasText(id) {
					e.selection.Click(id, true)
				}
			}
		} else {
			e.selection.SetTexts(ids)
		}
	}
	if e.gesture.mode() != ModeIdle {
		e.log.WithField("mode", e.gesture.mode()).Debug("gesture finished")
	}
	e.drag.end()
	e.gesture = idleGesture{}
}

// PointerLeave finalizes the active gesture at the last known position.
func (e *Editor) PointerLeave() {
	e.PointerUp(e.lastPointer)
}
