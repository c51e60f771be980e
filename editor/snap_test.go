package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap(t *testing.T) {
	neighbour := Box{X: 100, Y: 100, Width: 80, Height: 30}

	tests := []struct {
		name   string
		moving Box
		want   Box
		guides Guides
	}{
		{
			name:   "left edge within threshold",
			moving: Box{X: 105, Y: 300, Width: 50, Height: 20},
			want:   Box{X: 100, Y: 300, Width: 50, Height: 20},
			guides: Guides{X: Guide{Position: 100, Visible: true}},
		},
		{
			name:   "left edge outside threshold",
			moving: Box{X: 107, Y: 300, Width: 50, Height: 20},
			want:   Box{X: 107, Y: 300, Width: 50, Height: 20},
		},
		{
			name:   "right edges",
			moving: Box{X: 128, Y: 300, Width: 50, Height: 20},
			want:   Box{X: 130, Y: 300, Width: 50, Height: 20},
			guides: Guides{X: Guide{Position: 180, Visible: true}},
		},
		{
			name:   "centres on both axes",
			moving: Box{X: 117, Y: 103, Width: 50, Height: 20},
			want:   Box{X: 115, Y: 105, Width: 50, Height: 20},
			guides: Guides{
				X: Guide{Position: 140, Visible: true},
				Y: Guide{Position: 115, Visible: true},
			},
		},
		{
			name:   "bottom edges",
			moving: Box{X: 400, Y: 114, Width: 50, Height: 20},
			want:   Box{X: 400, Y: 110, Width: 50, Height: 20},
			guides: Guides{Y: Guide{Position: 130, Visible: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, guides := Snap(tt.moving, []Box{neighbour}, 6)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.Equal(t, tt.guides, guides)
		})
	}
}

func TestSnapPicksClosestNeighbour(t *testing.T) {
	got, guides := Snap(
		Box{X: 203, Width: 10, Height: 10, Y: 500},
		[]Box{{X: 198, Width: 40, Height: 10}, {X: 204, Width: 40, Height: 10, Y: 50}},
		6,
	)
	assert.Equal(t, 204.0, got.X)
	assert.Equal(t, 204.0, guides.X.Position)
}

func TestSnapWithoutNeighbours(t *testing.T) {
	b := Box{X: 1, Y: 2, Width: 3, Height: 4}
	got, guides := Snap(b, nil, 6)
	assert.Equal(t, b, got)
	assert.Equal(t, Guides{}, guides)
}
