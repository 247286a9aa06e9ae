package skemaform

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Lookup resolves a named reference target. An empty id asks for the full
// candidate list; a non-empty id asks for one record.
//
// A result may be a list of records or identifiers, a schema document, or a
// schema carrying an "enum" list. Errors degrade the field silently.
type Lookup interface {
	Lookup(ctx context.Context, target, id string) (any, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, target, id string) (any, error)

func (f LookupFunc) Lookup(ctx context.Context, target, id string) (any, error) {
	return f(ctx, target, id)
}

// Observer receives reference lookup events. Calls happen on the goroutine
// that drives the form.
type Observer interface {
	LookupStarted(target string)
	LookupCompleted(target string, elapsed time.Duration, err error)
	// LookupDiscarded reports a completion that arrived for a superseded or
	// unmounted field.
	LookupDiscarded(target string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) LookupStarted(string)                         {}
func (NopObserver) LookupCompleted(string, time.Duration, error) {}
func (NopObserver) LookupDiscarded(string)                       {}

// NewLogObserver reports failures at error level and the rest at debug level.
func NewLogObserver(log *zap.Logger) Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &logObserver{log: log.Named("lookup")}
}

type logObserver struct {
	log *zap.Logger
}

func (o *logObserver) LookupStarted(target string) {
	o.log.Debug("reference lookup started", zap.String("target", target))
}

func (o *logObserver) LookupCompleted(target string, elapsed time.Duration, err error) {
	if err != nil {
		o.log.Error("reference lookup failed",
			zap.String("target", target),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return
	}
	o.log.Debug("reference lookup completed",
		zap.String("target", target),
		zap.Duration("elapsed", elapsed),
	)
}

func (o *logObserver) LookupDiscarded(target string) {
	o.log.Debug("stale reference lookup discarded", zap.String("target", target))
}

// Observers fans events out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) LookupStarted(target string) {
	for _, o := range m {
		o.LookupStarted(target)
	}
}

func (m multiObserver) LookupCompleted(target string, elapsed time.Duration, err error) {
	for _, o := range m {
		o.LookupCompleted(target, elapsed, err)
	}
}

func (m multiObserver) LookupDiscarded(target string) {
	for _, o := range m {
		o.LookupDiscarded(target)
	}
}
