package skemaform

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// env is shared by every field of one form.
type env struct {
	opts Options
	loop *loop
}

func (e *env) message(code, label string) string {
	return e.opts.Translator.Message(code, map[string]string{"label": label})
}

// loop serialises lookup completions onto the goroutine that drives the form.
// Lookup goroutines only ever post; fields are touched by drain alone.
type loop struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	queue  []func()
	notify chan struct{}

	// pending counts lookups not yet applied. Host goroutine only.
	pending int
}

func newLoop() *loop {
	ctx, cancel := context.WithCancel(context.Background())
	return &loop{ctx: ctx, cancel: cancel, notify: make(chan struct{}, 1)}
}

func (l *loop) post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

func (l *loop) drain() int {
	l.mu.Lock()
	q := l.queue
	l.queue = nil
	l.mu.Unlock()
	for _, fn := range q {
		fn()
	}
	return len(q)
}

// lookup starts a list-mode lookup for target. done runs on the host
// goroutine and reports whether the result was applied. The returned cancel
// supersedes the call.
func (e *env) lookup(target string, done func(res any, err error) bool) context.CancelFunc {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if e.opts.LookupTimeout > 0 {
		ctx, cancel = context.WithTimeout(e.loop.ctx, e.opts.LookupTimeout)
	} else {
		ctx, cancel = context.WithCancel(e.loop.ctx)
	}
	e.opts.Observer.LookupStarted(target)
	e.loop.pending++
	start := time.Now()
	go func() {
		res, err := e.call(ctx, target)
		elapsed := time.Since(start)
		e.loop.post(func() {
			e.loop.pending--
			cancel()
			if done(res, err) {
				e.opts.Observer.LookupCompleted(target, elapsed, err)
				return
			}
			e.opts.Observer.LookupDiscarded(target)
		})
	}()
	return cancel
}

func (e *env) call(ctx context.Context, target string) (res any, err error) {
	if e.opts.Lookup == nil {
		return nil, ErrNoLookup
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("skemaform: lookup %q panicked: %v", target, r)
		}
	}()
	return e.opts.Lookup.Lookup(ctx, target, "")
}
