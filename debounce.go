package voltwire

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period before a live binding update is
// synchronized to the server.
const DefaultDebounceDelay = 300 * time.Millisecond

// debouncer coalesces rapid live-binding updates into a single delayed
// round trip. At most one timer is outstanding at a time, process-wide for
// the owning runtime: each new qualifying update cancels and replaces the
// previous schedule, whichever component it belongs to.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newDebouncer(delay time.Duration) *debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &debouncer{delay: delay}
}

// Schedule replaces any pending callback with fn, to run after the delay
// elapses uninterrupted.
func (d *debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// scheduleSync queues a debounced property synchronization for the
// component. When the delay elapses the reserved sync action runs with no
// source element, so no busy indicator is involved.
func (rt *Runtime) scheduleSync(component string) {
	rt.debounce.Schedule(func() {
		rt.Execute(context.Background(), component, SyncAction, nil)
	})
}
