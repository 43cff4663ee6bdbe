// Package window tracks the application's windows by id and implements the
// show/focus and exit operations used by the tray.
package window

import (
	"errors"
	"fmt"
	"sync"
)

// MainID is the stable id of the main application window.
const MainID = "main"

// ErrWindowNotFound is returned when no window is registered under an id.
var ErrWindowNotFound = errors.New("window not found")

// Window is a platform window that can be brought to the foreground.
type Window interface {
	Show() error
	Focus() error
	Visible() bool
}

// Registry maps window ids to windows. Windows are looked up at the moment
// they are needed; callers must not hold on to the result.
type Registry struct {
	mu      sync.RWMutex
	windows map[string]Window
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{windows: make(map[string]Window)}
}

// Register adds or replaces the window for id.
func (r *Registry) Register(id string, w Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows[id] = w
}

// Remove drops the window for id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.windows, id)
}

// Lookup returns the window registered under id.
func (r *Registry) Lookup(id string) (Window, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWindowNotFound, id)
	}
	return w, nil
}
