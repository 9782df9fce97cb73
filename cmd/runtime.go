package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zjrosen/registrar/internal/application/enrollment"
	"github.com/zjrosen/registrar/internal/application/roster"
	"github.com/zjrosen/registrar/internal/config"
	"github.com/zjrosen/registrar/internal/domain/records"
	"github.com/zjrosen/registrar/internal/flags"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/tracing"
	"github.com/zjrosen/registrar/internal/watcher"
)

// runtime is everything one command invocation needs, built from config.
type runtime struct {
	svc      *enrollment.Service
	loader   *roster.Loader
	tracing  *tracing.Provider
	cleanups []func()
}

func newRuntime(ctx context.Context, cfg config.Config, debug bool) (*runtime, error) {
	rt := &runtime{}

	if debug {
		cleanup, err := log.InitWithTeaLog(cfg.Log.Path, "registrar")
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
		rt.cleanups = append(rt.cleanups, cleanup)
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			log.SetMinLevel(level)
		}
		log.Info(log.CatConfig, "registrar starting", "debug", true, "logPath", cfg.Log.Path, "config", configPath)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  "registrar",
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	rt.tracing = provider
	rt.cleanups = append(rt.cleanups, func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	})

	rt.svc = enrollment.NewService(
		enrollment.WithFlags(flags.New(cfg.Flags)),
		enrollment.WithGradeBounds(gradeBounds(cfg.Grades)),
		enrollment.WithTracer(provider.Tracer()),
		enrollment.WithAverageCacheTTL(cfg.Cache.TTL),
	)
	rt.loader = roster.NewLoader(rt.svc, roster.WithLoaderTracer(provider.Tracer()))
	return rt, nil
}

// gradeBounds opens every side the config leaves unset.
func gradeBounds(g config.GradesConfig) records.GradeBounds {
	bounds := records.DefaultGradeBounds()
	if g.Min != nil {
		bounds.Min = *g.Min
	}
	if g.Max != nil {
		bounds.Max = *g.Max
	}
	return bounds
}

func (rt *runtime) loadRoster(ctx context.Context, path string) (roster.Report, error) {
	report, err := rt.loader.LoadFile(ctx, path)
	if err != nil {
		return roster.Report{}, fmt.Errorf("loading roster %s: %w", path, err)
	}
	log.Info(log.CatRoster, "Roster loaded", "path", path,
		"applied", report.Applied, "unchanged", report.Unchanged, "rejected", report.Rejected())
	return report, nil
}

// watchRoster re-applies the roster after every debounced change until ctx
// is done. Saves that leave the content untouched are skipped. Read failures
// are logged and the previous state is kept.
func (rt *runtime) watchRoster(ctx context.Context, path string) error {
	format, err := roster.DetectFormat(path)
	if err != nil {
		return err
	}
	last, err := os.ReadFile(path) //nolint:gosec // G304: user-chosen roster path
	if err != nil {
		return fmt.Errorf("reading roster %s: %w", path, err)
	}

	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return fmt.Errorf("creating roster watcher: %w", err)
	}
	onChange, err := w.Start(ctx)
	if err != nil {
		_ = w.Stop()
		return fmt.Errorf("starting roster watcher: %w", err)
	}
	rt.cleanups = append(rt.cleanups, func() { _ = w.Stop() })

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-onChange:
				last = rt.reloadIfChanged(ctx, path, format, last)
			}
		}
	}()
	return nil
}

// reloadIfChanged applies the roster when its content differs from last and
// returns the content now considered current.
func (rt *runtime) reloadIfChanged(ctx context.Context, path string, format roster.Format, last []byte) []byte {
	current, err := os.ReadFile(path) //nolint:gosec // G304: user-chosen roster path
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Roster reload failed", err, "path", path)
		return last
	}

	changes := roster.Compare(format, last, current)
	if !changes.Changed() {
		log.Debug(log.CatWatcher, "Roster saved without changes", "path", path)
		return last
	}
	log.Info(log.CatWatcher, "Roster changed", "path", path,
		"added", changes.Added, "removed", changes.Removed, "modified", changes.Modified)

	if _, err := rt.loadRoster(ctx, path); err != nil {
		log.ErrorErr(log.CatWatcher, "Roster reload failed", err, "path", path)
		return last
	}
	return current
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.cleanups) - 1; i >= 0; i-- {
		rt.cleanups[i]()
	}
	rt.cleanups = nil
}
