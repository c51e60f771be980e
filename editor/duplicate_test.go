package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateLineageKeepsSpacing(t *testing.T) {
	e := newTestEditor(t, text("A", 10, 10, 100, 20))

	b, ok := e.Duplicate("A", DirectionRight)
	require.True(t, ok)
	assert.Equal(t, "A", b.DuplicatedFrom)
	assert.Equal(t, 126.0, b.X)
	assert.Equal(t, 10.0, b.Y)
	assert.Equal(t, []string{b.ID}, e.SelectedTexts())

	// Move B to widen the gap; the next copy follows the new vector.
	require.True(t, e.store.UpdateText(b.ID, TextPatch{X: ptr(150.0)}))
	b = mustText(t, e, b.ID)

	c, ok := e.DuplicateSelection(DirectionRight)
	require.True(t, ok)
	assert.Equal(t, b.ID, c.DuplicatedFrom)
	assert.Equal(t, b.X-10, c.X-b.X)
	assert.Equal(t, []string{c.ID}, e.SelectedTexts())
}

func TestDuplicateDown(t *testing.T) {
	e := newTestEditor(t, text("A", 10, 10, 100, 20))

	b, _ := e.Duplicate("A", DirectionDown)
	assert.Equal(t, 10.0, b.X)
	assert.Equal(t, 46.0, b.Y)

	c, _ := e.Duplicate(b.ID, DirectionDown)
	assert.Equal(t, b.Y-10, c.Y-b.Y)

	// B was copied downwards, so its lineage has no horizontal vector and
	// the default gap applies.
	d, _ := e.Duplicate(b.ID, DirectionRight)
	assert.Equal(t, b.X+b.Width+16, d.X)
	assert.Equal(t, b.Y, d.Y)
}

func TestDuplicateWithoutParentUsesDefaultGap(t *testing.T) {
	e := newTestEditor(t, text("A", 10, 10, 100, 20))
	b, _ := e.Duplicate("A", DirectionRight)

	e.Select("A", false)
	require.Equal(t, 1, e.Delete())

	c, ok := e.Duplicate(b.ID, DirectionRight)
	require.True(t, ok)
	assert.Equal(t, b.X+b.Width+16, c.X)
}

func TestDuplicateClampsToCanvas(t *testing.T) {
	e := newTestEditor(t, text("A", 500, 770, 100, 20))

	b, _ := e.Duplicate("A", DirectionRight)
	assert.Equal(t, letter.Width-100, b.X)

	c, _ := e.Duplicate("A", DirectionDown)
	assert.Equal(t, letter.Height-20, c.Y)
}

func TestDuplicateCopiesStyle(t *testing.T) {
	src := text("A", 10, 10, 100, 40)
	src.Text, src.Bold, src.Align, src.FontSize = "hi", true, AlignCenter, 24
	e := newTestEditor(t, src)

	b, _ := e.Duplicate("A", DirectionRight)
	assert.Equal(t, "hi", b.Text)
	assert.True(t, b.Bold)
	assert.Equal(t, AlignCenter, b.Align)
	assert.Equal(t, 24.0, b.FontSize)
	assert.NotEqual(t, "A", b.ID)

	_, ok := e.Duplicate("missing", DirectionRight)
	assert.False(t, ok)

	require.True(t, e.Undo())
	assert.Len(t, e.Texts(), 1)
}
