package state

// DefaultHistoryDepth bounds the text history when no depth is configured.
const DefaultHistoryDepth = 30

// History is the bounded log of text-element snapshots. Each snapshot is the
// full element list after a mutation; Cursor marks the active one.
//
// History is a value: every method that changes it returns a new History and
// leaves the receiver's snapshots untouched, so older DocumentStates keep
// seeing their own log.
type History struct {
	Snapshots [][]TextElement `json:"snapshots"`
	Cursor    int             `json:"cursor"`
	MaxDepth  int             `json:"max_depth"`
}

// NewHistory returns a history seeded with one empty snapshot.
func NewHistory(maxDepth int) History {
	if maxDepth <= 0 {
		maxDepth = DefaultHistoryDepth
	}
	return History{
		Snapshots: [][]TextElement{{}},
		Cursor:    0,
		MaxDepth:  maxDepth,
	}
}

// Len is the number of stored snapshots.
func (h History) Len() int { return len(h.Snapshots) }

func (h History) CanUndo() bool { return h.Cursor > 0 }

func (h History) CanRedo() bool { return h.Cursor < len(h.Snapshots)-1 }

// Current returns a copy of the active snapshot.
func (h History) Current() []TextElement {
	if h.Cursor < 0 || h.Cursor >= len(h.Snapshots) {
		return []TextElement{}
	}
	return cloneTexts(h.Snapshots[h.Cursor])
}

// Checkpoint records snapshot as the newest entry. Any redo tail is
// discarded and the oldest entries are evicted once MaxDepth is exceeded.
func (h History) Checkpoint(snapshot []TextElement) History {
	maxDepth := h.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultHistoryDepth
	}

	keep := h.Cursor + 1
	if keep > len(h.Snapshots) {
		keep = len(h.Snapshots)
	}
	snapshots := make([][]TextElement, 0, keep+1)
	snapshots = append(snapshots, h.Snapshots[:keep]...)
	snapshots = append(snapshots, cloneTexts(snapshot))

	// Evict from the front, keeping the most recent entries.
	if len(snapshots) > maxDepth {
		snapshots = snapshots[len(snapshots)-maxDepth:]
	}

	return History{
		Snapshots: snapshots,
		Cursor:    len(snapshots) - 1,
		MaxDepth:  maxDepth,
	}
}

// Undo moves the cursor back one snapshot. ok is false when there is
// nothing to undo, in which case h is returned unchanged.
func (h History) Undo() (next History, restored []TextElement, ok bool) {
	if !h.CanUndo() {
		return h, nil, false
	}
	next = h
	next.Cursor--
	return next, next.Current(), true
}

// Redo moves the cursor forward one snapshot. ok is false at the tail.
func (h History) Redo() (next History, restored []TextElement, ok bool) {
	if !h.CanRedo() {
		return h, nil, false
	}
	next = h
	next.Cursor++
	return next, next.Current(), true
}

func cloneTexts(in []TextElement) []TextElement {
	out := make([]TextElement, len(in))
	copy(out, in)
	return out
}
