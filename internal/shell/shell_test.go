package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/prreview/prdesk/internal/config"
	"github.com/prreview/prdesk/internal/models"
	"github.com/prreview/prdesk/internal/shell/tray"
)

type recorder struct {
	mu     sync.Mutex
	opened []string
	exits  []int
}

func (r *recorder) open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, url)
	return nil
}

func (r *recorder) exit(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exits = append(r.exits, code)
}

func (r *recorder) snapshot() ([]string, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...), append([]int(nil), r.exits...)
}

// setupHome points the global directory at a temp dir and clears the env
// toggles that change startup behavior.
func setupHome(t *testing.T) string {
	t.Helper()
	for _, key := range []string{config.EnvNoSidecar, config.EnvDebug} {
		if _, ok := os.LookupEnv(key); ok {
			t.Skipf("%s is set in the environment", key)
		}
	}
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	return home
}

func newTestShell(t *testing.T, rec *recorder, opts Options) *Shell {
	t.Helper()
	opts.OpenURL = rec.open
	opts.ExitFunc = rec.exit
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		s.Shutdown()
		_ = s.Close()
	})
	return s
}

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for supervisor")
	}
}

func TestManualBackendTrayFlow(t *testing.T) {
	setupHome(t)
	rec := &recorder{}
	s := newTestShell(t, rec, Options{NoSidecar: true})

	s.Start()
	waitDone(t, s.Supervisor().Done())

	if s.Supervisor().Process() != nil {
		t.Error("backend spawned despite manual mode")
	}

	info, err := config.LoadShellInfo()
	if err != nil || info == nil {
		t.Fatalf("LoadShellInfo = %v, %v", info, err)
	}
	if !info.ManualBackend || info.BackendPort != models.DefaultBackendPort || info.PID != os.Getpid() {
		t.Errorf("shell info = %+v", info)
	}

	if opened, _ := rec.snapshot(); len(opened) != 0 {
		t.Errorf("window shown before request: %v", opened)
	}

	if err := s.Controller().HandleMenu(tray.OpenID); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Controller().HandleIconEvent(tray.IconEvent{Button: tray.ButtonLeft, State: tray.StateUp}); err != nil {
		t.Fatalf("icon click: %v", err)
	}
	if err := s.Controller().HandleMenu("settings"); err != nil {
		t.Fatalf("unknown id: %v", err)
	}

	// The second open re-asserts the shown window instead of opening a tab.
	opened, exits := rec.snapshot()
	if len(opened) != 1 || opened[0] != models.DefaultWindowURL {
		t.Errorf("opened = %v", opened)
	}
	if len(exits) != 0 {
		t.Errorf("exits = %v", exits)
	}

	if err := s.Controller().HandleMenu(tray.QuitID); err != nil {
		t.Fatalf("quit: %v", err)
	}
	if _, exits := rec.snapshot(); len(exits) != 1 || exits[0] != 0 {
		t.Errorf("exits = %v, want [0]", exits)
	}

	info, err = config.LoadShellInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info != nil {
		t.Error("shell.yaml not removed on exit")
	}
}

func TestShowOnStart(t *testing.T) {
	setupHome(t)
	settings := models.NewSettings()
	settings.Window.ShowOnStart = true
	settings.Window.URL = "http://127.0.0.1:9999/review"
	if err := config.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	s := newTestShell(t, rec, Options{NoSidecar: true})
	s.Start()

	opened, _ := rec.snapshot()
	if len(opened) != 1 || opened[0] != "http://127.0.0.1:9999/review" {
		t.Errorf("opened = %v", opened)
	}
}

func TestMissingSidecarFallsBackToManual(t *testing.T) {
	home := setupHome(t)
	settings := models.NewSettings()
	settings.Backend.Name = "no-such-backend"
	settings.Backend.Path = home + "/missing-backend"
	if err := config.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	s := newTestShell(t, rec, Options{})
	s.Start()
	waitDone(t, s.Supervisor().Done())

	if s.Supervisor().Process() != nil {
		t.Error("expected no backend process")
	}
	info, err := config.LoadShellInfo()
	if err != nil || info == nil {
		t.Fatalf("LoadShellInfo = %v, %v", info, err)
	}
	if info.BackendPID != 0 || info.ManualBackend {
		t.Errorf("shell info = %+v", info)
	}
}

func TestSpawnRecordsBackendPID(t *testing.T) {
	setupHome(t)
	exe, err := os.Executable()
	if err != nil {
		t.Skip(err)
	}
	settings := models.NewSettings()
	// The test binary rejects --sidecar and exits, which is all this needs.
	settings.Backend.Path = exe
	if err := config.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	s := newTestShell(t, rec, Options{})
	s.Start()
	waitDone(t, s.Supervisor().Done())

	proc := s.Supervisor().Process()
	if proc == nil {
		t.Fatal("backend was not spawned")
	}
	info, err := config.LoadShellInfo()
	if err != nil || info == nil {
		t.Fatalf("LoadShellInfo = %v, %v", info, err)
	}
	if info.BackendPID != proc.PID() {
		t.Errorf("backend_pid = %d, want %d", info.BackendPID, proc.PID())
	}
}

func TestSettingsChangeUpdatesLogLevel(t *testing.T) {
	setupHome(t)
	rec := &recorder{}
	s := newTestShell(t, rec, Options{NoSidecar: true})
	s.Start()

	if got := s.log.Level.Level(); got != zapcore.InfoLevel {
		t.Fatalf("initial level = %v", got)
	}

	settings := models.NewSettings()
	settings.LogLevel = "debug"
	if err := config.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for s.log.Level.Level() != zapcore.DebugLevel {
		if time.Now().After(deadline) {
			t.Fatal("log level not updated after settings change")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestLogLevelFlagDisablesReload(t *testing.T) {
	setupHome(t)
	rec := &recorder{}
	s := newTestShell(t, rec, Options{NoSidecar: true, LogLevel: "warn"})
	s.Start()

	if got := s.log.Level.Level(); got != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", got)
	}
	if s.watcher != nil {
		t.Error("watcher started despite --log-level")
	}
}

func TestLogFileOutlivesExit(t *testing.T) {
	setupHome(t)
	rec := &recorder{}
	s := newTestShell(t, rec, Options{NoSidecar: true})
	s.Start()

	s.Lifecycle().Exit(0)
	s.Logger().Info("entry after exit")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	logFile, err := config.GlobalLogFile()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"shell stopped", "entry after exit"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q", want)
		}
	}
}

func TestKillOnExitStopsBackend(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the backend")
	}
	home := setupHome(t)

	script := filepath.Join(home, "backend.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 60\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	settings := models.NewSettings()
	settings.Backend.Path = script
	settings.Backend.KillOnExit = true
	if err := config.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	s := newTestShell(t, rec, Options{})
	s.Start()

	deadline := time.Now().Add(10 * time.Second)
	for s.Supervisor().Process() == nil {
		if time.Now().After(deadline) {
			t.Fatal("backend was not spawned")
		}
		time.Sleep(20 * time.Millisecond)
	}
	proc := s.Supervisor().Process()

	s.Lifecycle().Exit(0)

	if proc.IsRunning() {
		t.Fatal("backend still running after exit")
	}
	if proc.Status().Signal == "" {
		t.Errorf("backend was not stopped by a signal: %+v", proc.Status())
	}
	waitDone(t, s.Supervisor().Done())
	if _, exits := rec.snapshot(); len(exits) != 1 || exits[0] != 0 {
		t.Errorf("exits = %v, want [0]", exits)
	}
}
