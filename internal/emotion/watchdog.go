package emotion

import (
	"sync"
	"time"
)

// DefaultSilence is how long the customer waits for a trainee message before
// losing patience.
const DefaultSilence = 30 * time.Minute

// Watchdog fires a callback when the trainee goes silent for too long.
// It is independent of the UI typing-indicator timer and must stay that way.
type Watchdog struct {
	mu      sync.Mutex
	d       time.Duration
	timer   *time.Timer
	onFire  func()
	stopped bool
}

// NewWatchdog creates a stopped watchdog. Call Reset to arm it.
func NewWatchdog(d time.Duration, onFire func()) *Watchdog {
	if d <= 0 {
		d = DefaultSilence
	}
	return &Watchdog{d: d, onFire: onFire, stopped: true}
}

// Reset (re)arms the watchdog for a full interval.
func (w *Watchdog) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.stopped = false
	w.timer = time.AfterFunc(w.d, func() {
		w.mu.Lock()
		if w.stopped {
			w.mu.Unlock()
			return
		}
		w.stopped = true
		w.mu.Unlock()
		w.onFire()
	})
}

// Stop disarms the watchdog. Safe to call repeatedly.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
}
