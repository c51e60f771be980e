package editor

import (
	"math"
)

// Store owns the two annotation collections. Collections are copy-on-write:
// every mutation installs a fresh slice, so a captured Snapshot stays valid
// without copying.
type Store struct {
	cfg Config

	texts      []TextAnnotation
	signatures []SignatureAnnotation

	// version identifies the current contents. It is unique per distinct
	// state and travels with snapshots through restore.
	version     uint64
	nextVersion uint64

	// OnRemove is called with the id of every removed annotation.
	OnRemove func(id string)
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

func (s *Store) bump() {
	s.nextVersion++
	s.version = s.nextVersion
}

func (s *Store) Texts() []TextAnnotation {
	return append([]TextAnnotation{}, s.texts...)
}

func (s *Store) Signatures() []SignatureAnnotation {
	return append([]SignatureAnnotation{}, s.signatures...)
}

func (s *Store) Len() int { return len(s.texts) + len(s.signatures) }

func (s *Store) textIndex(id string) int {
	for i := range s.texts {
		if s.texts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) signatureIndex(id string) int {
	for i := range s.signatures {
		if s.signatures[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Text(id string) (TextAnnotation, bool) {
	if i := s.textIndex(id); i >= 0 {
		return s.texts[i], true
	}
	return TextAnnotation{}, false
}

func (s *Store) Signature(id string) (SignatureAnnotation, bool) {
	if i := s.signatureIndex(id); i >= 0 {
		return s.signatures[i], true
	}
	return SignatureAnnotation{}, false
}

// Has reports whether id names an annotation of either kind.
func (s *Store) Has(id string) bool {
	return s.textIndex(id) >= 0 || s.signatureIndex(id) >= 0
}

func (s *Store) normalizeText(a TextAnnotation) TextAnnotation {
	if a.FontSize < s.cfg.MinFontSize {
		a.FontSize = s.cfg.MinFontSize
	}
	if !a.Align.Valid() {
		a.Align = AlignLeft
	}
	a.Width = math.Max(a.Width, 0)
	a.Height = math.Max(a.Height, s.cfg.minTextHeight(a.FontSize))
	return a
}

func (s *Store) normalizeSignature(a SignatureAnnotation) SignatureAnnotation {
	if !a.Style.Valid() {
		a.Style = StyleDefault
	}
	a.Width = math.Max(a.Width, 0)
	a.Height = math.Max(a.Height, 0)
	return a
}

// AddText appends a, rejecting duplicate ids.
func (s *Store) AddText(a TextAnnotation) bool {
	if a.ID == "" || s.Has(a.ID) {
		return false
	}
	texts := make([]TextAnnotation, len(s.texts), len(s.texts)+1)
	copy(texts, s.texts)
	s.texts = append(texts, s.normalizeText(a))
	s.bump()
	return true
}

func (s *Store) AddSignature(a SignatureAnnotation) bool {
	if a.ID == "" || s.Has(a.ID) {
		return false
	}
	sigs := make([]SignatureAnnotation, len(s.signatures), len(s.signatures)+1)
	copy(sigs, s.signatures)
	s.signatures = append(sigs, s.normalizeSignature(a))
	s.bump()
	return true
}

// UpdateText merges p into the text annotation id. Updates that change
// nothing leave the store version alone.
func (s *Store) UpdateText(id string, p TextPatch) bool {
	i := s.textIndex(id)
	if i < 0 {
		return false
	}
	updated := s.normalizeText(p.apply(s.texts[i]))
	if updated == s.texts[i] {
		return true
	}
	texts := s.Texts()
	texts[i] = updated
	s.texts = texts
	s.bump()
	return true
}

func (s *Store) UpdateSignature(id string, p SignaturePatch) bool {
	i := s.signatureIndex(id)
	if i < 0 {
		return false
	}
	updated := s.normalizeSignature(p.apply(s.signatures[i]))
	if updated == s.signatures[i] {
		return true
	}
	sigs := s.Signatures()
	sigs[i] = updated
	s.signatures = sigs
	s.bump()
	return true
}

// Remove deletes the annotation with id from whichever collection holds it.
func (s *Store) Remove(id string) bool {
	if i := s.textIndex(id); i >= 0 {
		texts := make([]TextAnnotation, 0, len(s.texts)-1)
		texts = append(texts, s.texts[:i]...)
		s.texts = append(texts, s.texts[i+1:]...)
	} else if i := s.signatureIndex(id); i >= 0 {
		sigs := make([]SignatureAnnotation, 0, len(s.signatures)-1)
		sigs = append(sigs, s.signatures[:i]...)
		s.signatures = append(sigs, s.signatures[i+1:]...)
	} else {
		return false
	}
	s.bump()
	if s.OnRemove != nil {
		s.OnRemove(id)
	}
	return true
}

// capture returns the current contents without copying. Callers must not
// modify the returned slices.
func (s *Store) capture() (Snapshot, uint64) {
	return Snapshot{Texts: s.texts, Signatures: s.signatures}, s.version
}

// restore installs snap as the current contents under version.
func (s *Store) restore(snap Snapshot, version uint64) {
	s.texts = snap.Texts
	s.signatures = snap.Signatures
	s.version = version
}

// Replace installs a copy of snap as new contents.
func (s *Store) Replace(snap Snapshot) {
	texts := make([]TextAnnotation, 0, len(snap.Texts))
	seen := map[string]bool{}
	for _, t := range snap.Texts {
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		texts = append(texts, s.normalizeText(t))
	}
	sigs := make([]SignatureAnnotation, 0, len(snap.Signatures))
	for _, g := range snap.Signatures {
		if g.ID == "" || seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		sigs = append(sigs, s.normalizeSignature(g))
	}
	s.texts = texts
	s.signatures = sigs
	s.bump()
}
