package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/catalog"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/config"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/engine"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/store"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/telemetry"
)

// app is the wiring shared by commands that touch the answer store.
type app struct {
	cfg      config.Config
	engine   *engine.Engine
	store    *store.Store
	shutdown telemetry.Shutdown
}

// loadConfig reads the config file and environment, applies flag
// overrides and validates the result. It also installs the process logger;
// --format json switches it to the JSON handler.
func (o *RootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.Database != "" {
		cfg.DatabasePath = o.Database
	}
	if o.Driver != "" {
		cfg.Driver = o.Driver
	}
	if o.CatalogDir != "" {
		cfg.CatalogDir = o.CatalogDir
	}
	if o.Format == "json" {
		cfg.LogFormat = "json"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	slog.SetDefault(cfg.NewLogger(cmd.ErrOrStderr(), o.Verbose))
	return cfg, nil
}

// openApp loads config, the catalog and the answer store, and builds the
// engine. Callers must Close the returned app.
func (o *RootOptions) openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		// Tracing is optional; run without it.
		slog.Warn("telemetry disabled", "error", err)
	}

	slog.Debug("loading catalog", "path", cfg.CatalogDir)
	cat, err := catalog.LoadDir(cfg.CatalogDir)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	for _, w := range cat.Lint() {
		slog.Debug("catalog lint", "warning", w)
	}

	slog.Debug("opening database", "path", cfg.DatabasePath, "driver", cfg.Driver)
	st, err := store.Open(cfg.DatabasePath, store.WithDriver(cfg.Driver))
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	var engineOpts []engine.Option
	if o.Clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(o.Clock))
	}
	if o.IDs != nil {
		engineOpts = append(engineOpts, engine.WithIDGenerator(o.IDs))
	}
	engineOpts = append(engineOpts, engine.WithLogger(slog.Default()))

	return &app{
		cfg:      cfg,
		engine:   engine.New(cat, st, engineOpts...),
		store:    st,
		shutdown: shutdown,
	}, nil
}

// Close flushes telemetry and closes the store.
func (a *app) Close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		slog.Warn("telemetry shutdown", "error", err)
	}
	if err := a.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// withApp opens the app, runs fn and closes the app. Setup failures are
// reported through the formatter and exit with ExitCommandError.
func (o *RootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app, f *OutputFormatter) error) error {
	f := o.formatter(cmd)
	a, err := o.openApp(cmd)
	if err != nil {
		exitErr := f.Fail("failed to start", err)
		exitErr.Code = ExitCommandError
		return exitErr
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer a.Close(ctx)
	return fn(ctx, a, f)
}
