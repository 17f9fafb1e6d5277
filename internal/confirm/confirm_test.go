package confirm

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondTapConfirms(t *testing.T) {
	var changes []bool
	var mu sync.Mutex
	c := New(time.Minute, func(armed bool) {
		mu.Lock()
		changes = append(changes, armed)
		mu.Unlock()
	})

	assert.False(t, c.Tap())
	assert.True(t, c.Armed())
	assert.True(t, c.Tap())
	assert.False(t, c.Armed())

	// A third tap starts over.
	assert.False(t, c.Tap())
	c.Reset()
	assert.False(t, c.Armed())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false, true, false}, changes)
}

func TestWindowExpires(t *testing.T) {
	disarmed := make(chan struct{}, 1)
	c := New(20*time.Millisecond, func(armed bool) {
		if !armed {
			disarmed <- struct{}{}
		}
	})

	require.False(t, c.Tap())
	select {
	case <-disarmed:
	case <-time.After(2 * time.Second):
		t.Fatal("window never expired")
	}
	assert.False(t, c.Armed())
	assert.False(t, c.Tap(), "tap after expiry arms again")
}

func TestConfirmRacingExpiryFiresOnce(t *testing.T) {
	for i := 0; i < 50; i++ {
		var disarms int32
		c := New(time.Millisecond, func(armed bool) {
			if !armed {
				atomic.AddInt32(&disarms, 1)
			}
		})
		c.Tap()
		time.Sleep(time.Millisecond)
		if !c.Tap() {
			// The window lapsed first; the second tap re-armed instead.
			c.Reset()
			continue
		}
		time.Sleep(5 * time.Millisecond)

		// The confirmation consumed the arming; the stopped timer must not
		// report a second disarm.
		assert.Equal(t, int32(1), atomic.LoadInt32(&disarms))
		assert.False(t, c.Armed())
	}
}

func TestDefaultWindow(t *testing.T) {
	c := New(0, nil)
	assert.Equal(t, DefaultWindow, c.window)
}
