package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reoring/skemaform/internal/config"
	"github.com/reoring/skemaform/refsource"
	"github.com/reoring/skemaform/refsource/httpref"
	"github.com/reoring/skemaform/refsource/sqlref"
)

// openSources chains the configured lookups: remote, then SQLite, then
// static fixtures. With none configured the source is nil.
func openSources(ctx context.Context, cfg config.RefsConfig) (refsource.Source, func(), error) {
	var chain refsource.Chain
	closers := []func(){}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Remote != "" {
		chain = append(chain, &httpref.Client{BaseURL: cfg.Remote})
	}
	if cfg.SQLite != "" {
		store, err := sqlref.Open(ctx, cfg.SQLite)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, func() { store.Close() })
		chain = append(chain, store)
	}
	if cfg.Static != "" {
		b, err := os.ReadFile(cfg.Static)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("reading fixtures: %w", err)
		}
		static, err := refsource.LoadStaticYAML(b)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		chain = append(chain, static)
	}
	if len(chain) == 0 {
		return nil, closeAll, nil
	}
	return chain, closeAll, nil
}
