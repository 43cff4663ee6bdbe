// Package shell wires the backend supervisor, window lifecycle, tray and
// settings watcher into the running desktop shell.
package shell

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/prreview/prdesk/internal/buildinfo"
	"github.com/prreview/prdesk/internal/config"
	"github.com/prreview/prdesk/internal/logging"
	"github.com/prreview/prdesk/internal/models"
	"github.com/prreview/prdesk/internal/shell/backend"
	"github.com/prreview/prdesk/internal/shell/tray"
	"github.com/prreview/prdesk/internal/shell/watcher"
	"github.com/prreview/prdesk/internal/shell/window"
)

// Options controls how the shell starts.
type Options struct {
	// NoSidecar skips spawning the backend (also set by TAURI_NO_SIDECAR).
	NoSidecar bool
	// Foreground runs without a tray until SIGINT/SIGTERM.
	Foreground bool
	// LogLevel overrides settings.log_level and disables live reloading of it.
	LogLevel string
	// Console logs to stderr in addition to the log file.
	Console bool

	// OpenURL and ExitFunc replace the OS URL handler and os.Exit.
	OpenURL  func(url string) error
	ExitFunc func(code int)
}

// Shell is one run of the desktop shell.
type Shell struct {
	opts     Options
	settings *models.Settings
	log      *logging.Logger
	logger   *zap.Logger

	registry   *window.Registry
	lifecycle  *window.Lifecycle
	supervisor *backend.Supervisor
	controller *tray.Controller
	watcher    *watcher.Watcher

	infoMu sync.Mutex // guards info and watcher
	info   *models.ShellInfo

	startOnce    sync.Once
	shutdownOnce sync.Once
}

// New loads settings, sets up logging and builds the components. Nothing is
// started yet.
func New(opts Options) (*Shell, error) {
	if err := config.EnsureGlobalDir(); err != nil {
		return nil, fmt.Errorf("failed to create global directory: %w", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	logFile, err := config.GlobalLogFile()
	if err != nil {
		return nil, err
	}
	level := settings.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	lg, err := logging.New(logging.Options{
		Level:    level,
		Debug:    config.Debug(),
		FilePath: logFile,
		Console:  opts.Console,
	})
	if err != nil {
		return nil, err
	}

	s := &Shell{
		opts:     opts,
		settings: settings,
		log:      lg,
		logger:   lg.Logger,
		registry: window.NewRegistry(),
	}

	exitOpts := []window.LifecycleOption{window.WithLogger(lg.Named("window"))}
	if opts.ExitFunc != nil {
		exitOpts = append(exitOpts, window.WithExitFunc(opts.ExitFunc))
	}
	s.lifecycle = window.NewLifecycle(s.registry, exitOpts...)
	s.lifecycle.OnExit(s.Shutdown)

	resolver := backend.Resolver{Name: settings.Backend.Name, Override: settings.Backend.Path}
	s.supervisor = backend.NewSupervisor(backend.SupervisorOptions{
		Logger:  lg.Named("backend"),
		Port:    settings.Backend.Port,
		Resolve: resolver.Resolve,
		OnSpawn: s.recordBackend,
	})

	s.controller = tray.NewController(s.lifecycle, lg.Named("tray"))

	return s, nil
}

// Logger returns the shell's root logger.
func (s *Shell) Logger() *zap.Logger { return s.logger }

// Lifecycle returns the window lifecycle.
func (s *Shell) Lifecycle() *window.Lifecycle { return s.lifecycle }

// Supervisor returns the backend supervisor.
func (s *Shell) Supervisor() *backend.Supervisor { return s.supervisor }

// Controller returns the tray controller.
func (s *Shell) Controller() *tray.Controller { return s.controller }

// Settings returns the settings the shell started with.
func (s *Shell) Settings() *models.Settings { return s.settings }

// Start registers the main window, records shell.yaml, starts the backend
// supervisor and the settings watcher. It does not block.
func (s *Shell) Start() {
	s.startOnce.Do(s.start)
}

func (s *Shell) start() {
	skip := s.opts.NoSidecar || config.NoSidecar()

	s.logger.Info("shell started",
		zap.String("version", buildinfo.Version),
		zap.String("os", runtime.GOOS),
		zap.String("arch", runtime.GOARCH),
		zap.Int("pid", os.Getpid()),
		zap.Bool("manual_backend", skip),
		zap.Int("backend_port", s.settings.Backend.Port))

	mainWindow := window.NewBrowserWindow(s.settings.Window.URL, s.opts.OpenURL)
	s.registry.Register(window.MainID, mainWindow)

	s.infoMu.Lock()
	s.info = models.NewShellInfo(os.Getpid(), s.log.RunID, s.settings.Backend.Port, skip)
	s.saveInfoLocked()
	s.infoMu.Unlock()

	s.supervisor.Start(skip)
	s.startWatcher()

	if s.settings.Window.ShowOnStart {
		if err := s.lifecycle.ShowAndFocus(window.MainID); err != nil {
			s.logger.Warn("failed to show main window", zap.Error(err))
		}
	}
}

// Shutdown releases shell resources. When backend.kill_on_exit is set it stops
// the backend, which may take up to the stop grace period; otherwise the
// backend is left running and nothing waits. The log file stays open so late
// entries from the relay still land; Close releases it.
func (s *Shell) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.infoMu.Lock()
		w := s.watcher
		s.infoMu.Unlock()
		if w != nil {
			w.Stop()
		}
		if s.settings.Backend.KillOnExit {
			s.logger.Info("stopping backend on exit")
			s.supervisor.Stop()
		}
		if err := config.RemoveShellInfo(); err != nil {
			s.logger.Warn("failed to remove shell info", zap.Error(err))
		}
		s.logger.Info("shell stopped")
		_ = s.logger.Sync()
	})
}

// Close flushes and closes the log file. Call it last, after Shutdown.
func (s *Shell) Close() error {
	return s.log.Close()
}

func (s *Shell) recordBackend(proc *backend.Process) {
	s.infoMu.Lock()
	defer s.infoMu.Unlock()
	if s.info == nil {
		return
	}
	s.info.BackendPID = proc.PID()
	s.saveInfoLocked()
}

func (s *Shell) saveInfoLocked() {
	if err := config.SaveShellInfo(s.info); err != nil {
		s.logger.Warn("failed to write shell info", zap.Error(err))
	}
}

// startWatcher follows settings.yaml so log_level changes apply without a
// restart. Other settings take effect on the next run.
func (s *Shell) startWatcher() {
	if s.opts.LogLevel != "" || config.Debug() {
		return
	}
	dir, err := config.GlobalDir()
	if err != nil {
		s.logger.Warn("settings watcher disabled", zap.Error(err))
		return
	}
	w, err := watcher.New(dir, s.log.Named("watcher"), config.SettingsFileName)
	if err != nil {
		s.logger.Warn("settings watcher disabled", zap.Error(err))
		return
	}
	if err := w.Start(); err != nil {
		s.logger.Warn("settings watcher disabled", zap.Error(err))
		w.Stop()
		return
	}
	s.infoMu.Lock()
	s.watcher = w
	s.infoMu.Unlock()

	go func() {
		for {
			select {
			case ev := <-w.Events():
				s.reloadLogLevel(ev.Path)
			case <-w.Done():
				return
			}
		}
	}()
}

func (s *Shell) reloadLogLevel(path string) {
	settings, err := config.LoadSettingsFile(path)
	if err != nil {
		s.logger.Warn("ignoring invalid settings change", zap.Error(err))
		return
	}
	if err := logging.SetLevel(s.log.Level, settings.LogLevel); err != nil {
		s.logger.Warn("ignoring invalid log level", zap.Error(err))
		return
	}
	s.logger.Info("log level updated", zap.String("level", settings.LogLevel))
}

// Run starts the shell and blocks until it exits.
func Run(opts Options) error {
	s, err := New(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.Foreground {
		s.runForeground()
		return nil
	}
	s.runWithTray()
	return nil
}

// runForeground runs the shell without a system tray, blocking on signals.
func (s *Shell) runForeground() {
	s.logger.Info("running in foreground mode (no system tray)")
	s.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	s.logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
	s.Shutdown()
}

// runWithTray runs the shell with the tray on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func (s *Shell) runWithTray() {
	onStart := func() {
		s.Start()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			s.logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
			tray.Quit()
		}()
	}

	tray.Run(s.controller, onStart, s.Shutdown)
}
