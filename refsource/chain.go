package refsource

import (
	"context"
	"errors"
	"fmt"
)

// Source is a reference lookup, the same contract the form engine consumes.
type Source interface {
	Lookup(ctx context.Context, target, id string) (any, error)
}

// Chain consults sources in order. A source that does not know the target
// passes to the next one; any other error stops the chain.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(ctx context.Context, target, id string) (any, error) {
	for _, s := range c {
		v, err := s.Lookup(ctx, target, id)
		if errors.Is(err, ErrUnknownTarget) {
			continue
		}
		return v, err
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
}
