package editor

type Direction string

const (
	DirectionRight Direction = "right"
	DirectionDown  Direction = "down"
)

// Duplicator derives copies of text annotations. Spacing is inferred from
// lineage: a copy of a copy repeats the vector between the source and its
// parent, so chains of duplicates stay evenly spaced.
type Duplicator struct {
	cfg   Config
	store *Store
	ids   IDGenerator

	// Canvas bounds the new position; a zero size leaves it unbounded.
	Canvas Size
}

func NewDuplicator(cfg Config, store *Store, ids IDGenerator) *Duplicator {
	return &Duplicator{cfg: cfg, store: store, ids: ids}
}

// Offset returns the displacement used to duplicate source in dir.
func (d *Duplicator) Offset(source TextAnnotation, dir Direction) (dx, dy float64) {
	parent, ok := TextAnnotation{}, false
	if source.DuplicatedFrom != "" {
		parent, ok = d.store.Text(source.DuplicatedFrom)
	}
	switch dir {
	case DirectionDown:
		if ok && source.Y != parent.Y {
			return 0, source.Y - parent.Y
		}
		return 0, source.Height + d.cfg.DuplicateGap
	default:
		if ok && source.X != parent.X {
			return source.X - parent.X, 0
		}
		return source.Width + d.cfg.DuplicateGap, 0
	}
}

// Duplicate adds a copy of sourceID shifted in dir and returns it.
func (d *Duplicator) Duplicate(sourceID string, dir Direction) (TextAnnotation, bool) {
	source, ok := d.store.Text(sourceID)
	if !ok {
		return TextAnnotation{}, false
	}
	dx, dy := d.Offset(source, dir)

	dup := source
	dup.ID = newUniqueID(d.ids, KindText, d.store.Has)
	dup.DuplicatedFrom = source.ID
	dup.X += dx
	dup.Y += dy
	if d.Canvas.Width > 0 && d.Canvas.Height > 0 {
		dup.Box = dup.Box.ClampInto(d.Canvas)
	}
	if !d.store.AddText(dup) {
		return TextAnnotation{}, false
	}
	dup, _ = d.store.Text(dup.ID)
	return dup, true
}
