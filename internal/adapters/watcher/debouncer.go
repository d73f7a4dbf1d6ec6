// Package watcher turns file system notifications into batches of keys to invalidate.
package watcher

import (
	"sync"
	"time"

	"go.trai.ch/recache/internal/core/domain"
)

// Debouncer coalesces rapid file system events into batched invalidations.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[domain.Key]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(keys []domain.Key)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
// The callback receives each batch in lexical order.
func NewDebouncer(window time.Duration, callback func(keys []domain.Key)) *Debouncer {
	return &Debouncer{
		pending:  make(map[domain.Key]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add queues key and restarts the debounce window.
func (d *Debouncer) Add(key domain.Key) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[key] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Pending returns the number of keys waiting for the window to expire.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Debouncer) fire() {
	d.mu.Lock()

	// Flush may have drained the set already.
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	keys := d.drain()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		go d.callback(keys)
	}
}

// Flush immediately triggers the callback with all pending keys.
// It blocks until the callback returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than processing twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}

	keys := d.drain()
	d.mu.Unlock()

	if len(keys) > 0 && d.callback != nil {
		d.callback(keys)
	}
}

// drain empties the pending set. The caller holds d.mu.
func (d *Debouncer) drain() []domain.Key {
	keys := make([]domain.Key, 0, len(d.pending))
	for key := range d.pending {
		keys = append(keys, key)
	}
	d.pending = make(map[domain.Key]struct{})
	return domain.SortKeys(keys)
}
