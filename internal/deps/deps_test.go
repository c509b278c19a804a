package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinariesMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "FFmpeg", Command: "definitely-not-a-real-binary-name"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("missing binary reported available")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "FFprobe", Command: "  "}})
	if statuses[0].Available {
		t.Fatal("unconfigured command reported available")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail %q", statuses[0].Detail)
	}
}

func TestCheckBinariesAvailable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executable setup is unix-specific")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	statuses := CheckBinaries([]Requirement{{Name: "FFmpeg", Command: bin}})
	if !statuses[0].Available {
		t.Fatalf("expected available, got %+v", statuses[0])
	}
	if statuses[0].Command != bin {
		t.Fatalf("expected resolved path %q, got %q", bin, statuses[0].Command)
	}
}

func TestDefaults(t *testing.T) {
	reqs := Defaults("my-ffmpeg", "my-ffprobe")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "my-ffmpeg" || reqs[1].Command != "my-ffprobe" {
		t.Fatalf("binaries not threaded through: %+v", reqs)
	}
}
