package tray

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/prreview/prdesk/internal/shell/window"
)

// Lifecycle is the window and process control the tray drives.
type Lifecycle interface {
	ShowAndFocus(id string) error
	Exit(code int)
}

// Controller turns tray input into window and process operations. Handlers
// run one at a time.
type Controller struct {
	lifecycle Lifecycle
	logger    *zap.Logger

	mu sync.Mutex
}

// NewController creates a controller driving lifecycle.
func NewController(lifecycle Lifecycle, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{lifecycle: lifecycle, logger: logger}
}

// Items returns the menu the tray should display.
func (c *Controller) Items() []MenuItem {
	return MenuItems()
}

// HandleMenu dispatches a menu item activation by id.
func (c *Controller) HandleMenu(id string) error {
	action := ParseAction(id)
	if action == ActionUnknown {
		c.logger.Debug("ignoring unknown menu item", zap.String("id", id))
	}
	return c.Dispatch(action)
}

// HandleIconEvent treats a left-button release on the icon as Open and
// ignores everything else.
func (c *Controller) HandleIconEvent(ev IconEvent) error {
	if ev.Button != ButtonLeft || ev.State != StateUp {
		return nil
	}
	return c.Dispatch(ActionOpen)
}

// Dispatch performs action. A missing main window is returned to the caller
// but never surfaced to the user; adapters discard it.
func (c *Controller) Dispatch(action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch action {
	case ActionOpen:
		err := c.lifecycle.ShowAndFocus(window.MainID)
		switch {
		case errors.Is(err, window.ErrWindowNotFound):
			c.logger.Debug("open requested but main window does not exist")
		case err != nil:
			c.logger.Warn("failed to show main window", zap.Error(err))
		}
		return err
	case ActionQuit:
		c.logger.Info("quit requested from tray")
		c.lifecycle.Exit(0)
	}
	return nil
}
