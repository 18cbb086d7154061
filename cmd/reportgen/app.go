package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportgen"
	"github.com/goliatone/go-reportgen/internal/catalog/store"
	"github.com/goliatone/go-reportgen/internal/config"
	"github.com/goliatone/go-reportgen/internal/logging"
	"github.com/goliatone/go-reportgen/pkg/catalog"
)

type app struct {
	cfg      config.Config
	logger   *zap.Logger
	closers  []func() error
	rejected []catalog.Rejection
}

func bootstrap(quiet bool) (*app, error) {
	cfg, err := config.Load(configPath, config.WithEnvFile(envFile))
	if err != nil {
		return nil, err
	}
	logger, closeLog := logging.New(logging.Options{
		File:       cfg.App.LogFile,
		Production: cfg.Production(),
		Console:    os.Stderr,
		Quiet:      quiet,
	})
	return &app{cfg: cfg, logger: logger, closers: []func() error{closeLog}}, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			fmt.Fprintf(os.Stderr, "close: %v\n", err)
		}
	}
}

// openStore connects to the catalog database and migrates it.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	if !a.cfg.UsesStore() {
		return nil, errors.New("catalog database is not configured (set REPORTGEN_CATALOG_DSN)")
	}
	s, err := store.Open(a.cfg.Catalog.Driver, a.cfg.Catalog.DSN, store.WithLogger(a.logger.Named("store")))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, s.Close)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// catalogReader resolves the configured catalog: the database store behind a
// read cache, or a file/URL payload loaded into memory.
func (a *app) catalogReader(ctx context.Context) (catalog.Reader, error) {
	if a.cfg.UsesStore() {
		s, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.NewCached(s, a.cfg.Catalog.CacheTTL), nil
	}

	location := a.cfg.Catalog.URL
	if location == "" {
		location = a.cfg.Catalog.File
	}
	src, err := reportgen.ParseSource(location)
	if err != nil {
		return nil, err
	}
	loader := reportgen.NewLoader(catalog.WithHTTP(a.cfg.Catalog.RequestTimeout))
	memory, rejected, err := reportgen.LoadCatalog(ctx, loader, src)
	if err != nil {
		return nil, err
	}
	for _, r := range rejected {
		a.logger.Warn("catalog entry quarantined",
			zap.Int("index", r.Index), zap.String("id", r.ID), zap.String("reason", r.Reason))
	}
	a.rejected = rejected
	a.logger.Info("catalog loaded", zap.String("source", src.Location()), zap.Int("definitions", memory.Len()))
	return memory, nil
}
