package editor

import (
	"math"

	"github.com/golang/geo/r2"
)

// DragEngine turns pointer deltas into new annotation geometry. Deltas are
// measured in content coordinates and divided by the zoom, so annotations
// follow the pointer at any zoom level.
type DragEngine struct {
	cfg      Config
	store    *Store
	viewport *Viewport

	// Canvas bounds positions; a zero size leaves them unbounded.
	Canvas Size

	guides Guides
}

func NewDragEngine(cfg Config, store *Store, viewport *Viewport) *DragEngine {
	return &DragEngine{cfg: cfg, store: store, viewport: viewport}
}

func (d *DragEngine) Guides() Guides { return d.guides }

func (d *DragEngine) delta(start, p r2.Point) r2.Point {
	return p.Sub(start).Mul(1 / d.viewport.Zoom)
}

func (d *DragEngine) bounded() bool {
	return d.Canvas.Width > 0 && d.Canvas.Height > 0
}

// beginDrag captures the start boxes of ids. group disables snapping.
func (d *DragEngine) beginDrag(p r2.Point, ids []string, signature bool) (dragGesture, bool) {
	g := dragGesture{start: p, group: len(ids) > 1}
	for _, id := range ids {
		var box Box
		if signature {
			s, ok := d.store.Signature(id)
			if !ok {
				continue
			}
			box = s.Box
		} else {
			t, ok := d.store.Text(id)
			if !ok {
				continue
			}
			box = t.Box
		}
		g.items = append(g.items, dragItem{id: id, signature: signature, start: box})
	}
	return g, len(g.items) > 0
}

func (d *DragEngine) drag(g dragGesture, p r2.Point) {
	delta := d.delta(g.start, p)
	if g.group {
		d.dragGroup(g.items, delta)
		return
	}
	d.dragSingle(g.items[0], delta)
}

func (d *DragEngine) dragSingle(item dragItem, delta r2.Point) {
	box := item.start
	box.X += delta.X
	box.Y += delta.Y

	d.guides = Guides{}
	if !item.signature {
		var neighbours []Box
		for _, t := range d.store.texts {
			if t.ID != item.id {
				neighbours = append(neighbours, t.Box)
			}
		}
		box, d.guides = Snap(box, neighbours, d.cfg.SnapThreshold)
	}
	if d.bounded() {
		box = box.ClampInto(d.Canvas)
	}
	d.setPosition(item, box.X, box.Y)
}

// dragGroup moves every item by the same delta, shrinking the delta so the
// whole group stays inside the canvas.
func (d *DragEngine) dragGroup(items []dragItem, delta r2.Point) {
	d.guides = Guides{}
	if d.bounded() {
		minX, maxX := math.Inf(-1), math.Inf(1)
		minY, maxY := math.Inf(-1), math.Inf(1)
		for _, it := range items {
			minX = math.Max(minX, -it.start.X)
			maxX = math.Min(maxX, d.Canvas.Width-it.start.Right())
			minY = math.Max(minY, -it.start.Y)
			maxY = math.Min(maxY, d.Canvas.Height-it.start.Bottom())
		}
		if minX <= maxX {
			delta.X = clamp(delta.X, minX, maxX)
		}
		if minY <= maxY {
			delta.Y = clamp(delta.Y, minY, maxY)
		}
	}
	for _, it := range items {
		d.setPosition(it, it.start.X+delta.X, it.start.Y+delta.Y)
	}
}

func (d *DragEngine) setPosition(item dragItem, x, y float64) {
	if item.signature {
		d.store.UpdateSignature(item.id, SignaturePatch{X: ptr(x), Y: ptr(y)})
		return
	}
	d.store.UpdateText(item.id, TextPatch{X: ptr(x), Y: ptr(y)})
}

func (d *DragEngine) beginResize(p r2.Point, id string, corner Corner) (resizeGesture, bool) {
	g := resizeGesture{start: p, id: id, corner: corner}
	if t, ok := d.store.Text(id); ok {
		g.box, g.fontSize = t.Box, t.FontSize
		return g, true
	}
	if s, ok := d.store.Signature(id); ok {
		g.box, g.signature = s.Box, true
		return g, true
	}
	return g, false
}

func (d *DragEngine) resize(g resizeGesture, p r2.Point) {
	minW, minH := 0.0, d.cfg.minTextHeight(g.fontSize)
	if g.signature {
		minW, minH = d.cfg.SignatureMinWidth, d.cfg.SignatureMinHeight
	}
	box := ResizeBox(g.box, g.corner, d.delta(g.start, p), Size{Width: minW, Height: minH})
	if g.signature {
		d.store.UpdateSignature(g.id, SignaturePatch{X: &box.X, Y: &box.Y, Width: &box.Width, Height: &box.Height})
		return
	}
	d.store.UpdateText(g.id, TextPatch{X: &box.X, Y: &box.Y, Width: &box.Width, Height: &box.Height})
}

func (d *DragEngine) end() {
	d.guides = Guides{}
}

// ResizeBox moves the edges named by corner by delta. Dimensions are clamped
// to minimum, keeping the opposite edge fixed, and the box never crosses the
// document origin.
func ResizeBox(start Box, corner Corner, delta r2.Point, minimum Size) Box {
	box := start
	if corner.has("r") {
		box.Width = math.Max(start.Width+delta.X, minimum.Width)
	}
	if corner.has("l") {
		box.Width = math.Max(start.Width-delta.X, minimum.Width)
		box.X = start.Right() - box.Width
		if box.X < 0 {
			box.X = 0
			box.Width = math.Max(start.Right(), minimum.Width)
		}
	}
	if corner.has("b") {
		box.Height = math.Max(start.Height+delta.Y, minimum.Height)
	}
	if corner.has("t") {
		box.Height = math.Max(start.Height-delta.Y, minimum.Height)
		box.Y = start.Bottom() - box.Height
		if box.Y < 0 {
			box.Y = 0
			box.Height = math.Max(start.Bottom(), minimum.Height)
		}
	}
	return box
}
