package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsDuplicateIDs(t *testing.T) {
	s := NewStore(DefaultConfig())
	require.True(t, s.AddText(text("a", 0, 0, 10, 20)))
	assert.False(t, s.AddText(text("a", 5, 5, 10, 20)))
	assert.False(t, s.AddSignature(SignatureAnnotation{ID: "a"}))
	assert.False(t, s.AddText(text("", 0, 0, 10, 20)))
	assert.Equal(t, 1, s.Len())
}

func TestStoreUpdateMergesFields(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.AddText(text("a", 1, 2, 30, 40))

	require.True(t, s.UpdateText("a", TextPatch{Text: ptr("hello"), Bold: ptr(true)}))
	a, _ := s.Text("a")
	assert.Equal(t, Box{X: 1, Y: 2, Width: 30, Height: 40}, a.Box)
	assert.Equal(t, "hello", a.Text)
	assert.True(t, a.Bold)
	assert.Equal(t, AlignLeft, a.Align)

	assert.False(t, s.UpdateText("missing", TextPatch{Text: ptr("x")}))
}

func TestStoreNormalizes(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.AddText(TextAnnotation{ID: "a", Box: Box{Width: -5, Height: 1}, FontSize: 2, Align: "justify"})

	a, _ := s.Text("a")
	assert.Equal(t, 8.0, a.FontSize)
	assert.Equal(t, 0.0, a.Width)
	assert.Equal(t, 16.0, a.Height)
	assert.Equal(t, AlignLeft, a.Align)

	s.AddSignature(SignatureAnnotation{ID: "s", Style: "sepia", Box: Box{Height: -1}})
	g, _ := s.Signature("s")
	assert.Equal(t, StyleDefault, g.Style)
	assert.Equal(t, 0.0, g.Height)
}

func TestStoreRemoveNotifies(t *testing.T) {
	var sel Selection
	s := NewStore(DefaultConfig())
	s.OnRemove = sel.Evict
	s.AddText(text("a", 0, 0, 10, 20))
	s.AddText(text("b", 0, 0, 10, 20))
	sel.SetTexts([]string{"a", "b"})

	require.True(t, s.Remove("a"))
	assert.Equal(t, []string{"b"}, sel.Texts())
	assert.False(t, s.Remove("a"))

	s.AddSignature(SignatureAnnotation{ID: "s"})
	sel.SelectSignature("s")
	require.True(t, s.Remove("s"))
	assert.Empty(t, sel.Signature())
}

func TestStoreCopyOnWrite(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.AddText(text("a", 0, 0, 10, 20))
	before, v1 := s.capture()

	s.UpdateText("a", TextPatch{X: ptr(50.0)})
	s.AddText(text("b", 0, 0, 10, 20))
	_, v2 := s.capture()

	assert.Equal(t, 0.0, before.Texts[0].X)
	assert.Len(t, before.Texts, 1)
	assert.NotEqual(t, v1, v2)

	s.UpdateText("a", TextPatch{X: ptr(50.0)})
	_, v3 := s.capture()
	assert.Equal(t, v2, v3, "no-op update must not change the version")
}

func TestStoreReplaceDropsInvalid(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.Replace(Snapshot{
		Texts:      []TextAnnotation{text("a", 0, 0, 10, 20), text("a", 1, 1, 10, 20), text("", 0, 0, 1, 20)},
		Signatures: []SignatureAnnotation{{ID: "a"}, {ID: "s"}},
	})
	assert.Len(t, s.Texts(), 1)
	assert.Len(t, s.Signatures(), 1)
}
