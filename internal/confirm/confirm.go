// Package confirm implements the two-tap confirmation used by destructive
// buttons: the first tap arms a short window, a second tap inside it
// confirms, and the window otherwise lapses on its own.
package confirm

import (
	"sync"
	"time"
)

// DefaultWindow is how long a first tap stays armed.
const DefaultWindow = 3 * time.Second

// Confirmer tracks one armed/disarmed button.
type Confirmer struct {
	mu       sync.Mutex
	window   time.Duration
	armed    bool
	timer    *time.Timer
	gen      uint64
	onChange func(armed bool)
}

// New returns a confirmer whose armed window lasts window. onChange, if not
// nil, is called whenever the armed state flips. It runs without the lock
// held, on the tapping goroutine or on the timer's goroutine.
func New(window time.Duration, onChange func(armed bool)) *Confirmer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Confirmer{window: window, onChange: onChange}
}

// Tap registers a tap. It returns true when the tap confirms, i.e. the
// confirmer was armed. The pending timer is stopped under the same lock that
// reads the armed state, so a window expiring concurrently can not undo a
// confirmation or fire after it.
func (c *Confirmer) Tap() (confirmed bool) {
	c.mu.Lock()
	if c.armed {
		c.stopLocked()
		c.armed = false
		c.mu.Unlock()
		c.notify(false)
		return true
	}

	c.stopLocked()
	c.armed = true
	gen := c.gen
	c.timer = time.AfterFunc(c.window, func() { c.expire(gen) })
	c.mu.Unlock()
	c.notify(true)
	return false
}

// Armed reports whether the next tap confirms.
func (c *Confirmer) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Reset disarms without confirming.
func (c *Confirmer) Reset() {
	c.mu.Lock()
	was := c.armed
	c.stopLocked()
	c.armed = false
	c.mu.Unlock()
	if was {
		c.notify(false)
	}
}

// expire disarms if the timer that fired still belongs to the current
// arming. A timer stopped too late to prevent its func from running sees a
// newer generation and does nothing.
func (c *Confirmer) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.armed {
		c.mu.Unlock()
		return
	}
	c.armed = false
	c.timer = nil
	c.gen++
	c.mu.Unlock()
	c.notify(false)
}

func (c *Confirmer) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Confirmer) notify(armed bool) {
	if c.onChange != nil {
		c.onChange(armed)
	}
}
