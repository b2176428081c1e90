package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xvierd/pomo/internal/adapters/haptics"
	"github.com/xvierd/pomo/internal/adapters/notification"
	"github.com/xvierd/pomo/internal/adapters/storage"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config  *config.Config
	storage ports.Storage
	journal *services.JournalService
	buzzer  *haptics.Async
	logger  *slog.Logger
	logFile *os.File
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration, falling back to defaults
	var loadErr error
	app.config, loadErr = config.LoadOrDefault()

	var err error
	app.logger, app.logFile, err = newLogger(debugMode, app.config.Log.File)
	if err != nil {
		return err
	}
	if loadErr != nil {
		app.logger.Warn("failed to load config, using defaults", "error", loadErr)
	}

	// Determine journal path: --journal flag > config
	path := app.config.Journal.Path
	if journalPath != "" {
		path = journalPath
	}
	if path == "" {
		path = config.MemoryJournal
	}
	if path != config.MemoryJournal {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	app.storage, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.journal = services.NewJournalService(app.storage.Transitions(), app.logger)
	app.buzzer = haptics.NewAsync(haptics.NewBuzzer(&app.config.Haptics, notification.New(&app.config.Notifications), app.logger))

	app.logger.Debug("services initialized", "journal", path)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.buzzer != nil {
		app.buzzer.Close()
	}
	var err error
	if app.storage != nil {
		err = app.storage.Close()
		app.storage = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
	return err
}

// newLogger returns a text logger writing to file when debug is set and a
// discarding logger otherwise. The terminal belongs to the watch face.
func newLogger(debug bool, file string) (*slog.Logger, *os.File, error) {
	if !debug || file == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), f, nil
}

// startJournal runs the journal until the returned stop function is called.
// stop waits for every queued transition to be written.
func startJournal(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = app.journal.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// newController builds a controller over a fresh idle state, reporting
// transitions to the journal, and paints the initial face.
func newController(display ports.Display, h ports.Haptics) *services.PomodoroController {
	ctrl := services.NewPomodoroController(domain.NewTimerState(), display, h,
		services.WithObserver(app.journal),
		services.WithLogger(app.logger),
	)
	ctrl.Render()
	return ctrl
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
