package editor

type historyEntry struct {
	snap    Snapshot
	version uint64
}

// History is a bounded undo/redo stack of store snapshots. The entry at the
// cursor holds the state the store was in when it was last recorded or
// restored; entries above the cursor form the redo branch.
//
// Mutating operations call Record before changing the store. Undo records
// any pending changes first so that Redo can come back to them.
type History struct {
	store    *Store
	capacity int

	entries []historyEntry
	cursor  int

	replaying bool

	// OnRestore is called after undo or redo installs a snapshot.
	OnRestore func()
}

func NewHistory(store *Store, capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	h := &History{store: store, capacity: capacity}
	h.Reset()
	return h
}

// Reset discards every entry and starts over from the current store state.
func (h *History) Reset() {
	snap, version := h.store.capture()
	h.entries = []historyEntry{{snap: snap, version: version}}
	h.cursor = 0
}

func (h *History) Len() int    { return len(h.entries) }
func (h *History) Cursor() int { return h.cursor }

func (h *History) CanUndo() bool {
	return h.cursor > 0 || h.pending()
}

func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1 && !h.pending()
}

// pending reports whether the store changed since the entry at the cursor.
func (h *History) pending() bool {
	return h.store.version != h.entries[h.cursor].version
}

// Record pushes the current store state, discarding the redo branch. When
// the state is already the one at the cursor nothing happens; the next
// change makes it pending and Redo refuses to jump over it. Record is a no-op
// during undo/redo replay.
func (h *History) Record() {
	if h.replaying || !h.pending() {
		return
	}
	h.entries = h.entries[:h.cursor+1]
	snap, version := h.store.capture()
	h.entries = append(h.entries, historyEntry{snap: snap, version: version})
	if len(h.entries) > h.capacity {
		h.entries = append(h.entries[:0:0], h.entries[1:]...)
		return
	}
	h.cursor++
}

func (h *History) Undo() bool {
	if h.pending() {
		h.Record()
	}
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	h.replay()
	return true
}

func (h *History) Redo() bool {
	if h.pending() || h.cursor >= len(h.entries)-1 {
		return false
	}
	h.cursor++
	h.replay()
	return true
}

func (h *History) replay() {
	h.replaying = true
	defer func() { h.replaying = false }()

	e := h.entries[h.cursor]
	h.store.restore(e.snap, e.version)
	if h.OnRestore != nil {
		h.OnRestore()
	}
}
