package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/reoring/skemaform"
	"github.com/reoring/skemaform/i18n"
	"github.com/reoring/skemaform/internal/config"
	"github.com/reoring/skemaform/internal/logger"
	"github.com/reoring/skemaform/internal/schemafile"
	"github.com/reoring/skemaform/internal/server"
	"github.com/reoring/skemaform/internal/wire"
	"github.com/reoring/skemaform/promobserve"
	"github.com/reoring/skemaform/refsource"
	"github.com/reoring/skemaform/refsource/sqlref"
)

// common binds the flags shared by describe and serve over a loaded config.
type common struct {
	configPath string
	schema     string
	expr       string
	refs       string
	sqlite     string
	lang       string
}

func (c *common) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "config file (yaml, toml or json)")
	fs.StringVar(&c.schema, "schema", "", "schema document (.json, .yaml, .cue or a CUE package dir)")
	fs.StringVar(&c.expr, "expr", "", "CUE expression selecting the form")
	fs.StringVar(&c.refs, "refs", "", "static reference fixtures (yaml or json)")
	fs.StringVar(&c.sqlite, "sqlite", "", "SQLite DSN for reference records")
	fs.StringVar(&c.lang, "lang", "", "message language: en or ja")
}

func (c *common) load() *config.Config {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		fatalf("%v", err)
	}
	override(&cfg.Form.Schema, c.schema)
	override(&cfg.Form.Expr, c.expr)
	override(&cfg.Refs.Static, c.refs)
	override(&cfg.Refs.SQLite, c.sqlite)
	override(&cfg.Form.Lang, c.lang)
	if cfg.Form.Schema == "" {
		fatalf("no schema: pass -schema or set form.schema")
	}
	return cfg
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func describeCmd(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	var c common
	c.bind(fs)
	var valuePath string
	fs.StringVar(&valuePath, "value", "", "initial value (json)")
	_ = fs.Parse(args)

	cfg := c.load()
	log := mustLogger(cfg)
	defer log.Sync()

	doc, err := schemafile.Load(cfg.Form.Schema, cfg.Form.Expr)
	if err != nil {
		fatalf("%v", err)
	}
	var value any
	if valuePath != "" {
		b, err := os.ReadFile(valuePath)
		if err != nil {
			fatalf("reading value: %v", err)
		}
		if err := json.Unmarshal(b, &value); err != nil {
			fatalf("decoding value: %v", err)
		}
	}

	ctx := context.Background()
	src, closeSrc, err := openSources(ctx, cfg.Refs)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeSrc()

	form := skemaform.Render(doc, value, nil, formOptions(cfg, src, skemaform.NewLogObserver(log)))
	defer form.Close()
	wait := cfg.Form.LookupTimeout
	if wait == 0 {
		wait = 30 * time.Second
	}
	settleCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if err := form.Settle(settleCtx); err != nil {
		log.Warn("lookups still pending", zap.Int("pending", form.Pending()), zap.Error(err))
	}

	out, err := json.MarshalIndent(wire.ViewData{
		Root:    skemaform.Describe(form.Root()),
		Value:   wire.Sanitize(form.Value()),
		Pending: form.Pending(),
	}, "", "  ")
	if err != nil {
		fatalf("encoding view: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var c common
	c.bind(fs)
	var addr string
	fs.StringVar(&addr, "addr", "", "listen address")
	_ = fs.Parse(args)

	cfg := c.load()
	override(&cfg.Server.Addr, addr)
	log := mustLogger(cfg)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := schemafile.Load(cfg.Form.Schema, cfg.Form.Expr)
	if err != nil {
		fatalf("%v", err)
	}
	src, closeSrc, err := openSources(ctx, cfg.Refs)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeSrc()

	obs := skemaform.NewLogObserver(log)
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		prom, err := promobserve.New(reg, promobserve.Config{})
		if err != nil {
			fatalf("metrics: %v", err)
		}
		obs = skemaform.Observers(obs, prom)
		gatherer = reg
	}

	log.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.String("schema", cfg.Form.Schema))
	err = server.Run(ctx, server.Config{
		Addr:     cfg.Server.Addr,
		Schema:   doc,
		Options:  formOptions(cfg, src, obs),
		Refs:     src,
		Gatherer: gatherer,
		Log:      log,
		Origins:  cfg.Server.Origins,
		OnSubmit: func(id string, v any) {
			b, _ := json.Marshal(wire.Sanitize(v))
			log.Info("form submitted", zap.String("session", id), zap.ByteString("value", b))
		},
	})
	if err != nil {
		fatalf("server: %v", err)
	}
}

func seedCmd(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	var dsn, refs string
	fs.StringVar(&dsn, "sqlite", "", "SQLite DSN to seed")
	fs.StringVar(&refs, "refs", "", "static reference fixtures (yaml or json)")
	_ = fs.Parse(args)
	if dsn == "" || refs == "" {
		fs.Usage()
		os.Exit(2)
	}

	n, err := seed(context.Background(), dsn, refs)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(os.Stderr, "seeded %d targets into %s\n", n, dsn)
}

// seed copies the fixtures at refs into the SQLite store at dsn and reports
// how many targets were written.
func seed(ctx context.Context, dsn, refs string) (int, error) {
	b, err := os.ReadFile(refs)
	if err != nil {
		return 0, fmt.Errorf("reading fixtures: %w", err)
	}
	static, err := refsource.LoadStaticYAML(b)
	if err != nil {
		return 0, err
	}
	store, err := sqlref.Open(ctx, dsn)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.Seed(ctx, static); err != nil {
		return 0, fmt.Errorf("seeding: %w", err)
	}
	return len(static.Targets()), nil
}

func mustLogger(cfg *config.Config) *zap.Logger {
	log, err := logger.New(cfg.Log)
	if err != nil {
		fatalf("%v", err)
	}
	return log
}

func formOptions(cfg *config.Config, src refsource.Source, obs skemaform.Observer) skemaform.Options {
	opts := skemaform.Options{
		Observer:      obs,
		Translator:    i18n.New(cfg.Form.Lang),
		LookupTimeout: cfg.Form.LookupTimeout,
	}
	if src != nil {
		opts.Lookup = src
	}
	return opts
}
