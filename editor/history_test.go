package editor

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryBounded(t *testing.T) {
	e := newTestEditor(t)
	for i := 0; i < 12; i++ {
		e.AddText()
	}
	require.LessOrEqual(t, e.History().Len(), 10)

	for i := 0; i < 9; i++ {
		require.True(t, e.Undo(), "undo %d", i+1)
		h := e.History()
		require.True(t, h.Cursor() >= 0 && h.Cursor() < h.Len() && h.Len() <= 10)
	}
	assert.Len(t, e.Texts(), 3)
	assert.Equal(t, 0, e.History().Cursor())
	assert.False(t, e.Undo())
	assert.Len(t, e.Texts(), 3)
}

func TestHistoryRoundTrip(t *testing.T) {
	e := newTestEditor(t)
	initial := e.Snapshot()

	a := e.AddText()
	e.SetFontSize(30)
	e.SetText(a.ID, "first\nsecond")
	sig := e.AddSignature("data:image/png;base64,AAAA")
	e.SetSignatureStyle(StyleGray)
	drag(e, r2.Point{X: sig.X + 5, Y: sig.Y + 5}, Target{Kind: TargetSignature, ID: sig.ID}, Modifiers{}, r2.Point{X: 20, Y: 30})
	e.Duplicate(a.ID, DirectionDown)
	const edits = 7

	final := e.Snapshot()
	for i := 0; i < edits; i++ {
		require.True(t, e.Undo(), "undo %d", i+1)
	}
	assert.False(t, e.Undo())
	if diff := cmp.Diff(initial, e.Snapshot()); diff != "" {
		t.Fatalf("undo did not return to the initial state (-want +got):\n%s", diff)
	}

	for i := 0; i < edits; i++ {
		require.True(t, e.Redo(), "redo %d", i+1)
	}
	assert.False(t, e.Redo())
	if diff := cmp.Diff(final, e.Snapshot()); diff != "" {
		t.Fatalf("redo did not reproduce the final state (-want +got):\n%s", diff)
	}
}

func TestHistoryNewEditDropsRedoBranch(t *testing.T) {
	e := newTestEditor(t)
	e.AddText()
	e.AddText()
	require.True(t, e.Undo())
	require.True(t, e.History().CanRedo())

	e.AddSignature("x")
	assert.False(t, e.History().CanRedo())
	assert.False(t, e.Redo())
	assert.Len(t, e.Texts(), 1)
	assert.Len(t, e.Signatures(), 1)
}

func TestHistoryUndoClearsSelection(t *testing.T) {
	e := newTestEditor(t)
	e.AddText()
	a := e.AddText()
	require.Equal(t, []string{a.ID}, e.SelectedTexts())

	require.True(t, e.Undo())
	assert.Empty(t, e.SelectedTexts())
	assert.Empty(t, e.ActiveSignature())
}

func TestHistoryRecordIgnoredDuringReplay(t *testing.T) {
	s := NewStore(DefaultConfig())
	h := NewHistory(s, 10)

	s.AddText(text("a", 0, 0, 10, 20))
	h.Record()
	s.AddText(text("b", 0, 0, 10, 20))

	// A restore hook that edits and records must not add entries.
	h.OnRestore = func() {
		s.AddText(text("c", 0, 0, 10, 20))
		h.Record()
	}
	require.True(t, h.Undo())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 1, h.Cursor())
}

func TestHistorySnapshotsAreIndependent(t *testing.T) {
	s := NewStore(DefaultConfig())
	h := NewHistory(s, 10)
	s.AddText(text("a", 0, 0, 10, 20))
	h.Record()

	s.UpdateText("a", TextPatch{X: ptr(99.0)})
	snap, _ := s.capture()
	clone := snap.Clone()
	clone.Texts[0].X = -1
	a, _ := s.Text("a")
	assert.Equal(t, 99.0, a.X)

	require.True(t, h.Undo())
	a, _ = s.Text("a")
	assert.Equal(t, 0.0, a.X)
	require.True(t, h.Redo())
	a, _ = s.Text("a")
	assert.Equal(t, 99.0, a.X)
}

func TestHistoryCapacityOne(t *testing.T) {
	s := NewStore(DefaultConfig())
	h := NewHistory(s, 1)
	s.AddText(text("a", 0, 0, 10, 20))
	h.Record()
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	s.AddText(text("b", 0, 0, 10, 20))
	assert.False(t, h.Undo())
}
