package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"hotelorders/collections"
	"hotelorders/config"
	"hotelorders/pivot"
	"hotelorders/services"
	"hotelorders/sources"
)

// wiring builds the configured pipeline once, on first use by either the
// web server or a CLI command. Flags are only parsed by then.
type wiring struct {
	app        core.App
	configPath *string

	once   sync.Once
	err    error
	cancel context.CancelFunc

	cfg    *config.Config
	logger *zap.Logger
	gen    *services.Generator
}

func newWiring(app core.App, configPath *string) *wiring {
	return &wiring{app: app, configPath: configPath}
}

func (r *wiring) load(ctx context.Context) error {
	r.once.Do(func() { r.err = r.setup(ctx) })
	return r.err
}

func (r *wiring) close() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
}

func (r *wiring) setup(ctx context.Context) error {
	cfg, err := config.Load(*r.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	r.cfg, r.logger = cfg, logger

	if err := collections.Setup(r.app); err != nil {
		return fmt.Errorf("set up collections: %w", err)
	}

	src, err := sources.New(ctx, sources.Options{
		Kind:            cfg.Source.Kind,
		SpreadsheetID:   cfg.Source.SpreadsheetID,
		Range:           cfg.Source.Range,
		CredentialsFile: cfg.Source.CredentialsFile,
		Path:            cfg.Source.Path,
		Sheet:           cfg.Source.Sheet,
	}, r.app, logger.Named("source"))
	if err != nil {
		return fmt.Errorf("open order source: %w", err)
	}
	cache := sources.NewCache(src, cfg.Source.CacheTTL.Std(), logger.Named("cache"))

	if cfg.Source.Watch {
		watchCtx, cancel := context.WithCancel(context.Background())
		r.cancel = cancel
		if _, err := sources.Watch(watchCtx, cfg.Source.Path, cache, logger.Named("watch")); err != nil {
			cancel()
			return fmt.Errorf("watch %s: %w", cfg.Source.Path, err)
		}
	}

	warnMissingFont(logger, cfg.Render)

	hotels := cfg.Report.Hotels()
	r.gen = &services.Generator{
		Source:              cache,
		Normalizer:          pivot.Normalizer{Layout: cfg.Report.DateLayout, Hotels: hotels},
		Hotels:              hotels,
		Workers:             cfg.Report.Workers,
		Timeout:             cfg.Report.Timeout.Std(),
		IncludeAbsentHotels: cfg.Report.IncludeAbsentHotels,
		Assembler:           services.Assembler{SecondaryLabel: cfg.Render.SecondaryLabel},
		PDF: services.PDFRenderer{
			Fonts:     services.Fonts(cfg.Render.Fonts),
			Secondary: cfg.Render.Language(),
		},
		Excel:  services.ExcelRenderer{},
		Logger: logger.Named("report"),
	}
	return nil
}

// seedDemo fills an empty order store with a demo day when the config asks
// for it. Only the server calls it.
func (r *wiring) seedDemo(day time.Time) {
	if !r.cfg.Source.SeedDemo || r.cfg.Source.Kind != sources.KindPocketBase {
		return
	}
	if err := collections.Seed(r.app, day); err != nil {
		r.logger.Warn("seed demo orders", zap.Error(err))
	}
}

// warnMissingFont reports when secondary names would fall back to the PDF
// default font, which cannot draw most non-Latin scripts.
func warnMissingFont(logger *zap.Logger, r config.RenderConfig) bool {
	lang := r.Language()
	if services.Fonts(r.Fonts).For(lang) != "" {
		return false
	}
	logger.Warn("no font configured for secondary names; PDFs will use the default font",
		zap.String("language", lang.String()),
		zap.String("hint", "set render.fonts or place "+config.DefaultFontFile+" in the working directory"),
	)
	return true
}

// newLogger builds the production logger, or the development one when
// asked, at the configured level.
func newLogger(c config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if c.Level != "" {
		lvl, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = lvl
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
