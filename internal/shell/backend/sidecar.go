package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SidecarArg is the single argument the backend is started with.
const SidecarArg = "--sidecar"

var (
	// ErrSidecarNotFound is returned when no backend executable exists.
	ErrSidecarNotFound = errors.New("sidecar binary not found")

	// ErrUnsupportedPlatform is returned for a GOOS/GOARCH with no target triple.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

var targetTriples = map[string]string{
	"windows/amd64": "x86_64-pc-windows-msvc",
	"windows/386":   "i686-pc-windows-msvc",
	"windows/arm64": "aarch64-pc-windows-msvc",
	"darwin/amd64":  "x86_64-apple-darwin",
	"darwin/arm64":  "aarch64-apple-darwin",
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"linux/386":     "i686-unknown-linux-gnu",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"linux/arm":     "armv7-unknown-linux-gnueabihf",
}

// TargetTriple returns the target triple suffix used for sidecar binaries.
func TargetTriple(goos, goarch string) (string, error) {
	triple, ok := targetTriples[goos+"/"+goarch]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
	}
	return triple, nil
}

// Resolver locates the backend executable.
type Resolver struct {
	// Name is the sidecar base name, e.g. "PR-Review-Agent".
	Name string
	// Override is an explicit path from settings; used when it exists.
	Override string
	// ExeDir is the directory searched. Empty means the running executable's dir.
	ExeDir string
	// GOOS and GOARCH default to the running platform.
	GOOS, GOARCH string
}

// Candidates lists the paths Resolve checks, in order.
func (r Resolver) Candidates() ([]string, error) {
	goos, goarch := r.GOOS, r.GOARCH
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}

	triple, err := TargetTriple(goos, goarch)
	if err != nil {
		return nil, err
	}

	dir := r.ExeDir
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		dir = filepath.Dir(exe)
	}

	ext := ""
	if goos == "windows" {
		ext = ".exe"
	}

	var candidates []string
	if r.Override != "" {
		candidates = append(candidates, r.Override)
	}
	candidates = append(candidates,
		filepath.Join(dir, r.Name+"-"+triple+ext),
		filepath.Join(dir, r.Name+ext),
	)
	return candidates, nil
}

// Resolve returns the first candidate that is a regular file.
func (r Resolver) Resolve() (string, error) {
	candidates, err := r.Candidates()
	if err != nil {
		return "", err
	}
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrSidecarNotFound, strings.Join(candidates, ", "))
}
