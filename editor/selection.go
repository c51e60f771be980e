package editor

import (
	"math"

	"github.com/golang/geo/r2"
)

// Selection tracks the selected text ids (multi-select) and the active
// signature (single-select). Selecting one kind clears the other.
type Selection struct {
	texts     []string
	signature string
}

func (s *Selection) Texts() []string {
	return append([]string{}, s.texts...)
}

func (s *Selection) Signature() string { return s.signature }

func (s *Selection) Len() int {
	n := len(s.texts)
	if s.signature != "" {
		n++
	}
	return n
}

func (s *Selection) Empty() bool { return s.Len() == 0 }

func (s *Selection) HasText(id string) bool {
	for _, t := range s.texts {
		if t == id {
			return true
		}
	}
	return false
}

// Click applies a click on a text annotation. A plain click selects exactly
// id; shift toggles its membership and keeps everything else.
func (s *Selection) Click(id string, shift bool) {
	s.signature = ""
	if !shift {
		s.texts = []string{id}
		return
	}
	if s.HasText(id) {
		s.removeText(id)
		return
	}
	s.texts = append(s.texts, id)
}

func (s *Selection) SelectSignature(id string) {
	s.texts = nil
	s.signature = id
}

func (s *Selection) SetTexts(ids []string) {
	s.signature = ""
	s.texts = append([]string{}, ids...)
}

func (s *Selection) Clear() {
	s.texts = nil
	s.signature = ""
}

// Evict drops id from the selection if present.
func (s *Selection) Evict(id string) {
	if s.signature == id {
		s.signature = ""
	}
	s.removeText(id)
}

func (s *Selection) removeText(id string) {
	kept := s.texts[:0:0]
	for _, t := range s.texts {
		if t != id {
			kept = append(kept, t)
		}
	}
	s.texts = kept
}

// Marquee is a rubber-band rectangle in content coordinates.
type Marquee struct {
	Start, End r2.Point
}

func (m Marquee) Rect() r2.Rect {
	return r2.RectFromPoints(m.Start, m.End)
}

// Exceeds reports whether the marquee is larger than minSize on both axes.
func (m Marquee) Exceeds(minSize float64) bool {
	return math.Abs(m.End.X-m.Start.X) > minSize && math.Abs(m.End.Y-m.Start.Y) > minSize
}

// MarqueeHits returns the ids of the text annotations whose on-screen box
// intersects the marquee. Touching edges count as intersecting.
func MarqueeHits(m Marquee, texts []TextAnnotation, v *Viewport) []string {
	rect := m.Rect()
	var ids []string
	for _, t := range texts {
		if v.ContentRect(t.Box).Intersects(rect) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
