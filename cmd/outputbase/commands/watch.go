package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
	"github.com/yeswalrus/bazel-compilation-database/internal/logfields"
	"github.com/yeswalrus/bazel-compilation-database/internal/outputbase"
	"github.com/yeswalrus/bazel-compilation-database/internal/repogen"
)

// WatchCmd implements the 'watch' command. It keeps the generated package in
// sync with the workspace marker: whenever the marker is rewritten (e.g. by a
// bazel invocation recreating the execroot), the output base is re-resolved
// and the package regenerated.
type WatchCmd struct {
	Marker   string        `short:"m" help:"Workspace marker file path (overrides config and discovery)"`
	Output   string        `short:"o" help:"Directory for the generated package (overrides config)"`
	Debounce time.Duration `help:"Delay before regenerating after a change (overrides config)"`
}

// Run executes the watch command. It blocks until interrupted.
func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	marker, err := findMarker(w.Marker, cfg)
	if err != nil {
		return err
	}
	marker, err = filepath.Abs(marker)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot resolve marker path").WithContext("marker", marker)
	}

	dir := resolveOutputDir(w.Output, cfg)
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = cfg.Watch.Debounce()
	}

	gen := repogen.NewGenerator(dir)

	// Generate once up front so the package exists before the first change.
	if err := regenerate(gen, marker, uuid.NewString()); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityFatal,
			"failed to create file watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	// Watch the directory containing the marker (more reliable than watching
	// the file directly, which breaks on rename-replace).
	markerDir := filepath.Dir(marker)
	if err := watcher.Add(markerDir); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"failed to watch marker directory").WithContext("dir", markerDir)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("Watching workspace marker", logfields.Marker(marker), logfields.Path(dir))

	markerName := filepath.Base(marker)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			slog.Info("Shutdown signal received, stopping watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only process events for the marker file itself
			if filepath.Base(event.Name) != markerName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				slog.Debug("Marker change detected", logfields.Path(event.Name))
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else if event.Op&fsnotify.Remove == fsnotify.Remove {
				slog.Warn("Workspace marker removed", logfields.Path(event.Name))
			}

		case <-timerC:
			timerC = nil
			if err := regenerate(gen, marker, uuid.NewString()); err != nil {
				slog.Error("Failed to regenerate output base package", logfields.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// regenerate resolves the layout and rewrites the generated package, logging
// the run under a job id.
func regenerate(gen *repogen.Generator, marker, jobID string) error {
	start := time.Now()

	layout, err := outputbase.Resolve(marker)
	if err != nil {
		return err
	}
	if err := gen.Generate(layout.OutputBase); err != nil {
		return err
	}

	slog.Info("Output base package generated",
		logfields.JobID(jobID),
		logfields.OutputBase(layout.OutputBase),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
	return nil
}
