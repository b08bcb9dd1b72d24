// Package debounce provides a leading-and-trailing debouncer for bursts of
// input events such as typeahead keystrokes.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the debounce window used by the search typeahead.
const DefaultWindow = 200 * time.Millisecond

// Debouncer runs the first call of a burst immediately and the last call
// once the burst has been quiet for the window. Calls in between are
// dropped. The trailing call ends the burst, so the next call runs at once.
// Flush and Cancel must not be called from inside a debounced function.
type Debouncer struct {
	mu       sync.Mutex
	window   time.Duration
	timer    *time.Timer
	gen      uint64
	pending  func()
	inWindow bool

	// running counts trailing calls executing on timer goroutines.
	running sync.WaitGroup
}

func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger registers fn as the latest call of the current burst.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	leading := !d.inWindow
	d.inWindow = true
	if leading {
		d.pending = nil
	} else {
		d.pending = fn
	}
	d.schedule()
	d.mu.Unlock()

	if leading {
		fn()
	}
}

// schedule restarts the window. Timers from earlier windows are ignored by
// their generation.
func (d *Debouncer) schedule() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.flush(gen) })
}

func (d *Debouncer) flush(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.inWindow = false
	d.timer = nil
	if fn == nil {
		d.mu.Unlock()
		return
	}
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	fn()
}

// Flush runs the pending trailing call now, if any, and closes the window.
// It returns once any trailing call already started by the timer is done.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = nil
	d.inWindow = false
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
	d.running.Wait()
}

// Cancel drops any pending trailing call and closes the window. Like Flush
// it waits for a trailing call the timer has already started.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = nil
	d.inWindow = false
	d.mu.Unlock()

	d.running.Wait()
}
