package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTargetTriple(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"windows", "amd64", "x86_64-pc-windows-msvc", false},
		{"darwin", "arm64", "aarch64-apple-darwin", false},
		{"darwin", "amd64", "x86_64-apple-darwin", false},
		{"linux", "amd64", "x86_64-unknown-linux-gnu", false},
		{"plan9", "amd64", "", true},
	}
	for _, tt := range tests {
		got, err := TargetTriple(tt.goos, tt.goarch)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedPlatform) {
				t.Errorf("TargetTriple(%s, %s) err = %v, want ErrUnsupportedPlatform", tt.goos, tt.goarch, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("TargetTriple(%s, %s) = %q, %v; want %q", tt.goos, tt.goarch, got, err, tt.want)
		}
	}
}

func TestResolverCandidates(t *testing.T) {
	r := Resolver{Name: "PR-Review-Agent", ExeDir: "/app", GOOS: "windows", GOARCH: "amd64", Override: "/custom/agent.exe"}
	got, err := r.Candidates()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"/custom/agent.exe",
		filepath.Join("/app", "PR-Review-Agent-x86_64-pc-windows-msvc.exe"),
		filepath.Join("/app", "PR-Review-Agent.exe"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestResolverResolve(t *testing.T) {
	t.Run("triple suffixed binary preferred", func(t *testing.T) {
		dir := t.TempDir()
		dev := filepath.Join(dir, "agent-x86_64-unknown-linux-gnu")
		touch(t, dev)
		touch(t, filepath.Join(dir, "agent"))

		got, err := Resolver{Name: "agent", ExeDir: dir, GOOS: "linux", GOARCH: "amd64"}.Resolve()
		if err != nil || got != dev {
			t.Errorf("Resolve = %q, %v; want %q", got, err, dev)
		}
	})

	t.Run("bundled name", func(t *testing.T) {
		dir := t.TempDir()
		bundled := filepath.Join(dir, "agent")
		touch(t, bundled)

		got, err := Resolver{Name: "agent", ExeDir: dir, GOOS: "linux", GOARCH: "amd64"}.Resolve()
		if err != nil || got != bundled {
			t.Errorf("Resolve = %q, %v; want %q", got, err, bundled)
		}
	})

	t.Run("override wins", func(t *testing.T) {
		dir := t.TempDir()
		override := filepath.Join(t.TempDir(), "elsewhere")
		touch(t, override)
		touch(t, filepath.Join(dir, "agent"))

		got, err := Resolver{Name: "agent", ExeDir: dir, Override: override, GOOS: "linux", GOARCH: "amd64"}.Resolve()
		if err != nil || got != override {
			t.Errorf("Resolve = %q, %v; want %q", got, err, override)
		}
	})

	t.Run("missing override falls through", func(t *testing.T) {
		dir := t.TempDir()
		bundled := filepath.Join(dir, "agent")
		touch(t, bundled)

		got, err := Resolver{Name: "agent", ExeDir: dir, Override: "/does/not/exist", GOOS: "linux", GOARCH: "amd64"}.Resolve()
		if err != nil || got != bundled {
			t.Errorf("Resolve = %q, %v; want %q", got, err, bundled)
		}
	})

	t.Run("directory is not a binary", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "agent"), 0o755); err != nil {
			t.Fatal(err)
		}

		_, err := Resolver{Name: "agent", ExeDir: dir, GOOS: "linux", GOARCH: "amd64"}.Resolve()
		if !errors.Is(err, ErrSidecarNotFound) {
			t.Errorf("err = %v, want ErrSidecarNotFound", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Resolver{Name: "agent", ExeDir: t.TempDir(), GOOS: "linux", GOARCH: "amd64"}.Resolve()
		if !errors.Is(err, ErrSidecarNotFound) {
			t.Errorf("err = %v, want ErrSidecarNotFound", err)
		}
	})
}
