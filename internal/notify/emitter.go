package notify

import (
	"sync"
	"time"
)

// Option configures an Emitter.
type Option func(*Emitter)

// WithTTL sets how long each message stays visible.
func WithTTL(d time.Duration) Option {
	return func(e *Emitter) {
		if d > 0 {
			e.ttl = d
		}
	}
}

// WithClock overrides the time source used to stamp expiries.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		e.now = now
	}
}

// Emitter holds one session's notification and clears it when its window
// elapses. Safe for concurrent use.
type Emitter struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	current Notification
	gen     uint64
	timer   *time.Timer
	subs    map[uint64]func(Notification)
	nextSub uint64
}

// NewEmitter creates an idle emitter.
func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		ttl:  DefaultTTL,
		now:  time.Now,
		subs: make(map[uint64]func(Notification)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Show replaces the current message with msg and restarts the expiry timer.
// A clear scheduled by an earlier Show is superseded.
func (e *Emitter) Show(msg string) Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	gen := e.gen
	if e.timer != nil {
		e.timer.Stop()
	}
	e.current = Show(e.now(), msg, e.ttl)
	e.timer = time.AfterFunc(e.ttl, func() { e.expire(gen) })
	e.publishLocked()
	return e.current
}

// Current returns the visible message, or "" when idle.
func (e *Emitter) Current() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	msg, _ := e.current.Visible(e.now())
	return msg
}

// Snapshot returns the current notification, or the zero value when idle.
func (e *Emitter) Snapshot() Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.current.Visible(e.now()); !ok {
		return Notification{}
	}
	return e.current
}

// Subscribe registers fn to receive every change, including the clear on
// expiry. fn is called with the emitter lock held and must not block or call
// back into the emitter. The returned func unregisters fn.
func (e *Emitter) Subscribe(fn func(Notification)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Stop cancels any pending clear. The current message is left as is.
func (e *Emitter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Emitter) expire(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	e.current = Notification{}
	e.timer = nil
	e.publishLocked()
}

func (e *Emitter) publishLocked() {
	for _, fn := range e.subs {
		fn(e.current)
	}
}
