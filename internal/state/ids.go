package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for strokes and text elements. Every
// call must return a value never returned before by the same generator.
type IDGenerator interface {
	NextID() string
}

// Sequence issues "<site>-<n>" ids from a monotonic counter. The site is a
// random uuid, so ids from different documents never collide either.
type Sequence struct {
	site    string
	counter uint64
}

// NewSequence creates a generator with a fresh site id.
func NewSequence() *Sequence {
	return &Sequence{site: uuid.NewString()}
}

// NewSequenceForSite creates a generator with a fixed site id. Mostly useful
// in tests that want predictable ids.
func NewSequenceForSite(site string) *Sequence {
	return &Sequence{site: site}
}

func (s *Sequence) NextID() string {
	n := atomic.AddUint64(&s.counter, 1)
	return fmt.Sprintf("%s-%d", s.site, n)
}

// Site returns the generator's site id.
func (s *Sequence) Site() string {
	return s.site
}

// UUIDs issues random version 4 uuids.
type UUIDs struct{}

func (UUIDs) NextID() string {
	return uuid.NewString()
}
