package window

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// BrowserWindow is the front end opened in the platform's default browser.
// The browser owns the real window: the first Show hands it the URL, which
// also raises it. Later calls only re-assert visible and focused, since
// handing the URL over again would open another tab.
type BrowserWindow struct {
	url  string
	open func(url string) error

	mu      sync.Mutex
	visible bool
	focused bool
}

// NewBrowserWindow creates a window for url. A nil open uses OpenURL.
func NewBrowserWindow(url string, open func(url string) error) *BrowserWindow {
	if open == nil {
		open = OpenURL
	}
	return &BrowserWindow{url: url, open: open}
}

// URL returns the address the window shows.
func (b *BrowserWindow) URL() string {
	return b.url
}

// Show opens the URL the first time it is called. It does not wait for the
// browser.
func (b *BrowserWindow) Show() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.visible {
		return nil
	}
	if err := b.open(b.url); err != nil {
		return err
	}
	b.visible = true
	return nil
}

// Focus marks the window focused. Opening the URL already raised it.
func (b *BrowserWindow) Focus() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible {
		return fmt.Errorf("window for %s is not shown", b.url)
	}
	b.focused = true
	return nil
}

// Visible reports whether Show has succeeded.
func (b *BrowserWindow) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Focused reports whether Focus has succeeded.
func (b *BrowserWindow) Focused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.focused
}

// OpenURL hands url to the platform URL handler without waiting for it.
func OpenURL(url string) error {
	cmd, err := openCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported OS for opening URLs: %s", goos)
	}
}
