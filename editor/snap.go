package editor

import (
	"math"
)

// Guide is an alignment hint at Position on one axis.
type Guide struct {
	Position float64
	Visible  bool
}

// Guides holds the guide lines shown while dragging. X is a vertical line,
// Y a horizontal one.
type Guides struct {
	X Guide
	Y Guide
}

type snapCandidate struct {
	value float64 // position the dragged box would take
	guide float64 // neighbour edge or centre it aligns with
}

// Snap aligns moving against every neighbour, choosing the closest candidate
// per axis independently. An axis snaps only when its best candidate lies
// within threshold; otherwise the raw position is kept and no guide shown.
func Snap(moving Box, neighbours []Box, threshold float64) (Box, Guides) {
	var xs, ys []snapCandidate
	for _, n := range neighbours {
		xs = append(xs,
			snapCandidate{value: n.X, guide: n.X},
			snapCandidate{value: n.CenterX() - moving.Width/2, guide: n.CenterX()},
			snapCandidate{value: n.Right() - moving.Width, guide: n.Right()},
		)
		ys = append(ys,
			snapCandidate{value: n.Y, guide: n.Y},
			snapCandidate{value: n.CenterY() - moving.Height/2, guide: n.CenterY()},
			snapCandidate{value: n.Bottom() - moving.Height, guide: n.Bottom()},
		)
	}

	var guides Guides
	if c, ok := bestCandidate(moving.X, xs, threshold); ok {
		moving.X = c.value
		guides.X = Guide{Position: c.guide, Visible: true}
	}
	if c, ok := bestCandidate(moving.Y, ys, threshold); ok {
		moving.Y = c.value
		guides.Y = Guide{Position: c.guide, Visible: true}
	}
	return moving, guides
}

func bestCandidate(raw float64, candidates []snapCandidate, threshold float64) (snapCandidate, bool) {
	best, bestDist := snapCandidate{}, math.Inf(1)
	for _, c := range candidates {
		if d := math.Abs(raw - c.value); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist <= threshold
}
