package window

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Lifecycle shows and focuses registered windows and exits the application.
type Lifecycle struct {
	registry *Registry
	logger   *zap.Logger
	exitFn   func(code int)

	hookMu sync.Mutex
	hooks  []func()
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithExitFunc replaces os.Exit, for tests.
func WithExitFunc(fn func(code int)) LifecycleOption {
	return func(l *Lifecycle) { l.exitFn = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) LifecycleOption {
	return func(l *Lifecycle) { l.logger = logger }
}

// NewLifecycle creates a lifecycle over registry.
func NewLifecycle(registry *Registry, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		registry: registry,
		logger:   zap.NewNop(),
		exitFn:   os.Exit,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the window registry.
func (l *Lifecycle) Registry() *Registry {
	return l.registry
}

// ShowAndFocus looks up id now, then shows and focuses it. Returns
// ErrWindowNotFound when nothing is registered under id. Repeating the call on
// a visible, focused window only re-asserts that state.
func (l *Lifecycle) ShowAndFocus(id string) error {
	w, err := l.registry.Lookup(id)
	if err != nil {
		return err
	}
	if err := w.Show(); err != nil {
		return fmt.Errorf("failed to show window %q: %w", id, err)
	}
	if err := w.Focus(); err != nil {
		return fmt.Errorf("failed to focus window %q: %w", id, err)
	}
	return nil
}

// OnExit registers fn to run just before the process exits. Hooks must not
// block.
func (l *Lifecycle) OnExit(fn func()) {
	l.hookMu.Lock()
	defer l.hookMu.Unlock()
	l.hooks = append(l.hooks, fn)
}

// Exit runs exit hooks and terminates the process with code. It does not wait
// for the backend process.
func (l *Lifecycle) Exit(code int) {
	l.hookMu.Lock()
	hooks := append([]func(){}, l.hooks...)
	l.hookMu.Unlock()

	l.logger.Info("exiting", zap.Int("code", code))
	for _, fn := range hooks {
		runHook(l.logger, fn)
	}
	_ = l.logger.Sync()
	l.exitFn(code)
}

func runHook(logger *zap.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("exit hook panicked", zap.Any("panic", r))
		}
	}()
	fn()
}
