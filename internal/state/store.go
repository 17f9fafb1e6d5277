package state

import (
	"sync"

	"github.com/jinzhu/copier"
)

// Store owns one document. Dispatch calls are serialised, so a stroke append
// and a history checkpoint can never interleave. Observers are called after
// each change, in dispatch order, with their own copy of the new state.
type Store struct {
	mu      sync.Mutex
	reducer Reducer
	state   DocumentState
	version uint64

	// pending holds snapshots not yet delivered; draining is set while one
	// goroutine delivers them. Both are guarded by mu.
	pending  []DocumentState
	draining bool

	obsMu     sync.Mutex
	observers map[int]func(DocumentState)
	nextObs   int
}

// Option configures a Store.
type Option func(*Store)

// WithIDs sets the id generator used for new strokes and text elements.
func WithIDs(ids IDGenerator) Option {
	return func(s *Store) { s.reducer = NewReducer(ids) }
}

// WithHistoryDepth bounds the text history.
func WithHistoryDepth(depth int) Option {
	return func(s *Store) { s.state.History = NewHistory(depth) }
}

// WithColor sets the initial ink color.
func WithColor(c Color) Option {
	return func(s *Store) { s.state.SelectedColor = c }
}

// WithCanvasSize sets the initial canvas size.
func WithCanvasSize(w, h int) Option {
	return func(s *Store) {
		s.state.CanvasWidth = w
		s.state.CanvasHeight = h
	}
}

// NewStore creates a store holding an empty document.
func NewStore(opts ...Option) *Store {
	s := &Store{
		reducer:   NewReducer(nil),
		state:     NewDocument(DefaultHistoryDepth),
		observers: make(map[int]func(DocumentState)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dispatch applies a to the document and notifies observers if anything
// changed. It reports whether the state changed. Observers may dispatch
// themselves; such nested changes are delivered after the current one.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	prev := s.state
	next := s.reducer.Reduce(prev, a)
	if sameState(prev, next) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	s.version++
	s.pending = append(s.pending, cloneState(next))
	if s.draining {
		s.mu.Unlock()
		return true
	}
	s.draining = true
	s.mu.Unlock()

	s.drain()
	return true
}

// drain delivers pending snapshots in the order they were produced.
func (s *Store) drain() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		snap := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, fn := range s.snapshotObservers() {
			fn(snap)
		}
	}
}

// Observe returns a copy of the current state.
func (s *Store) Observe() DocumentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Version increases by one with every state change.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers fn for state changes. The returned func removes it.
func (s *Store) Subscribe(fn func(DocumentState)) (cancel func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

func (s *Store) snapshotObservers() []func(DocumentState) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	fns := make([]func(DocumentState), 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// cloneState deep-copies st so callers can never reach the store's slices.
func cloneState(st DocumentState) DocumentState {
	var out DocumentState
	if err := copier.CopyWithOption(&out, &st, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types; fall back to a manual copy.
		return manualClone(st)
	}
	if st.CurrentStroke == nil {
		out.CurrentStroke = nil
	}
	return out
}

func manualClone(st DocumentState) DocumentState {
	out := st
	if st.CurrentStroke != nil {
		cur := *st.CurrentStroke
		cur.Points = append([]Point(nil), cur.Points...)
		out.CurrentStroke = &cur
	}
	out.Strokes = make([]Stroke, len(st.Strokes))
	for i, s := range st.Strokes {
		s.Points = append([]Point(nil), s.Points...)
		out.Strokes[i] = s
	}
	out.TextElements = cloneTexts(st.TextElements)
	out.History.Snapshots = make([][]TextElement, len(st.History.Snapshots))
	for i, snap := range st.History.Snapshots {
		out.History.Snapshots[i] = cloneTexts(snap)
	}
	return out
}

// sameState is a cheap identity check. The reducer returns its input
// untouched for every no-op, so comparing slice headers and scalars is
// enough to detect that nothing happened.
func sameState(a, b DocumentState) bool {
	return a.SelectedColor == b.SelectedColor &&
		a.CurrentStroke == b.CurrentStroke &&
		sameSlice(a.Strokes, b.Strokes) &&
		sameSlice(a.TextElements, b.TextElements) &&
		a.Selection == b.Selection &&
		a.CanvasWidth == b.CanvasWidth &&
		a.CanvasHeight == b.CanvasHeight &&
		a.History.Cursor == b.History.Cursor &&
		a.History.MaxDepth == b.History.MaxDepth &&
		sameSlice(a.History.Snapshots, b.History.Snapshots)
}

func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
