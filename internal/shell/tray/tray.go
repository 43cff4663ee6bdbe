package tray

import (
	"runtime"

	"github.com/energye/systray"
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStart is called once the tray is ready; onExit when it exits.
//
// A left click on the icon opens the main window on every platform. The menu
// is shown on right click.
func Run(ctrl *Controller, onStart, onExit func()) {
	systray.Run(func() { onReady(ctrl, onStart) }, onExit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady(ctrl *Controller, onStart func()) {
	if runtime.GOOS == "windows" {
		systray.SetIcon(iconICO)
	} else {
		systray.SetTemplateIcon(iconData, iconData)
	}
	systray.SetTitle(Title)
	systray.SetTooltip(ToolTip)

	for _, item := range ctrl.Items() {
		mi := systray.AddMenuItem(item.Label, item.Tooltip)
		if !item.Enabled {
			mi.Disable()
		}
		mi.Click(menuClickHandler(ctrl, item.ID))
	}

	systray.SetOnClick(iconClickHandler(ctrl))
	// darwin and linux show the menu on right click by themselves.
	if runtime.GOOS == "windows" {
		systray.SetOnRClick(func(menu systray.IMenu) {
			_ = menu.ShowMenu()
		})
	}

	if onStart != nil {
		onStart()
	}
}

func menuClickHandler(ctrl *Controller, id string) func() {
	return func() { _ = ctrl.HandleMenu(id) }
}

// iconClickHandler reports a left-button release; systray fires OnClick once
// the click completes.
func iconClickHandler(ctrl *Controller) func(systray.IMenu) {
	return func(systray.IMenu) {
		_ = ctrl.HandleIconEvent(IconEvent{Button: ButtonLeft, State: StateUp})
	}
}
