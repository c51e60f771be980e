package editor

import (
	"strings"

	"github.com/golang/geo/r2"
)

// Corner names a resize handle as a combination of t, b, l and r.
type Corner string

const (
	CornerTopLeft     Corner = "tl"
	CornerTopRight    Corner = "tr"
	CornerBottomLeft  Corner = "bl"
	CornerBottomRight Corner = "br"
)

func (c Corner) has(edge string) bool { return strings.Contains(string(c), edge) }

// gesture is the state of the pointer state machine. idleGesture is the
// only state in which a new gesture may start.
type gesture interface {
	mode() Mode
}

type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeDragging
	ModeResizing
	ModeMarquee
)

func (m Mode) String() string {
	switch m {
	case ModePanning:
		return "panning"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	case ModeMarquee:
		return "marquee"
	}
	return "idle"
}

type idleGesture struct{}

type panGesture struct {
	start    r2.Point
	startPan r2.Point
}

type dragItem struct {
	id        string
	signature bool
	start     Box
}

type dragGesture struct {
	start r2.Point
	items []dragItem
	group bool
}

type resizeGesture struct {
	start     r2.Point
	id        string
	signature bool
	corner    Corner
	box       Box
	fontSize  float64
}

type marqueeGesture struct {
	marquee  Marquee
	additive bool
}

func (idleGesture) mode() Mode     { return ModeIdle }
func (panGesture) mode() Mode      { return ModePanning }
func (dragGesture) mode() Mode     { return ModeDragging }
func (resizeGesture) mode() Mode   { return ModeResizing }
func (*marqueeGesture) mode() Mode { return ModeMarquee }
