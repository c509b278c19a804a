package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webmify/internal/services"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestFileCommandRejectsQualityOutOfRange(t *testing.T) {
	_, err := executeCommand(t, "file", "whatever.mp4", "--quality", "150")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "quality") {
		t.Fatalf("error should mention quality: %v", err)
	}
}

func TestFileCommandMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.mp4")
	_, err := executeCommand(t, "file", missing, "--quality", "30")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestFileCommandRejectsBadResize(t *testing.T) {
	_, err := executeCommand(t, "file", "clip.mp4", "--resize", "640by480")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFileCommandRejectsBadCrop(t *testing.T) {
	_, err := executeCommand(t, "file", "clip.mp4", "--crop", "1:2:3")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDirCommandMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	_, err := executeCommand(t, "dir", missing)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDirCommandRejectsZeroWorkers(t *testing.T) {
	_, err := executeCommand(t, "dir", t.TempDir(), "--workers", "0")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDirCommandEmptyDirectorySucceeds(t *testing.T) {
	out, err := executeCommand(t, "dir", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Total") || !strings.Contains(out, "0") {
		t.Fatalf("expected zero-count summary, got %q", out)
	}
}

func TestDirCommandInvalidConfigPath(t *testing.T) {
	_, err := executeCommand(t, "dir", t.TempDir(), "--config", filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "webmify") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestRootShowsHelp(t *testing.T) {
	out, err := executeCommand(t)
	if err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{"file", "dir", "deps", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing %q: %q", sub, out)
		}
	}
}

func TestConfigQualityAppliesWhenFlagUnset(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[convert]\nquality = 999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Out-of-range file value must be rejected at load time, proving the
	// config path feeds the conversion settings.
	_, err := executeCommand(t, "file", "clip.mp4", "--config", configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
