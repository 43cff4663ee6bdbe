// Package tray implements the system tray icon and menu for the shell.
package tray

// Title and tooltip shown for the tray icon.
const (
	Title   = "PR Review Agent"
	ToolTip = "PR Review Agent"
)

// Menu item ids.
const (
	OpenID = "open"
	QuitID = "quit"
)

// Action is what a menu item or icon click asks the shell to do.
type Action int

// Tray actions. Unknown covers ids this build does not recognize.
const (
	ActionUnknown Action = iota
	ActionOpen
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseAction maps a menu item id to its action.
func ParseAction(id string) Action {
	switch id {
	case OpenID:
		return ActionOpen
	case QuitID:
		return ActionQuit
	default:
		return ActionUnknown
	}
}

// MenuItem describes one tray menu entry.
type MenuItem struct {
	ID      string
	Label   string
	Tooltip string
	Enabled bool
}

// MenuItems returns the tray menu, in display order.
func MenuItems() []MenuItem {
	return []MenuItem{
		{ID: OpenID, Label: "Open App", Tooltip: "Show the PR Review Agent window", Enabled: true},
		{ID: QuitID, Label: "Quit", Tooltip: "Quit PR Review Agent", Enabled: true},
	}
}

// MouseButton identifies the button in an icon click.
type MouseButton int

// Mouse buttons.
const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// ButtonState is whether the button went down or came up.
type ButtonState int

// Button states.
const (
	StateDown ButtonState = iota
	StateUp
)

// IconEvent is a click on the tray icon itself.
type IconEvent struct {
	Button MouseButton
	State  ButtonState
}
