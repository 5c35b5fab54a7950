// Package dispatch models the framework's single designated GUI-thread
// event loop. Components that must deliver notifications
// "queued, outside the lock, on the main thread" — ObjectRegistry's
// objectAdded/objectRemoved, SignalMonitor's relays, LogSink-driven pushes —
// post closures here instead of calling listeners inline from whatever
// goroutine triggered them (creation/destruction hooks may fire on any
// thread).
package dispatch

// Queue is a FIFO of pending callbacks, drained by a single Pump goroutine
// that stands in for the framework's event loop thread.
type Queue struct {
	items chan func()
	done  chan struct{}
}

// New creates a queue with the given backlog capacity.
func New(capacity int) *Queue {
	return &Queue{items: make(chan func(), capacity), done: make(chan struct{})}
}

// Post enqueues fn for later execution on the pump goroutine. Safe to call
// from any goroutine, matching hooks firing on any thread.
func (q *Queue) Post(fn func()) {
	select {
	case q.items <- fn:
	case <-q.done:
	}
}

// Pump runs until Stop is called, executing posted callbacks in order on
// the calling goroutine — the "event loop tick" every queued notification
// waits for.
func (q *Queue) Pump() {
	for {
		select {
		case fn := <-q.items:
			fn()
		case <-q.done:
			// Drain anything already queued before exiting.
			for {
				select {
				case fn := <-q.items:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Stop signals Pump to return after draining pending items. Safe to call
// once.
func (q *Queue) Stop() { close(q.done) }
