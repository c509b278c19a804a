package encoding

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webmify/internal/media/ffprobe"
	"webmify/internal/services"
)

type fakeProber struct {
	info ffprobe.VideoInfo
	err  error
}

func (f fakeProber) Probe(context.Context, string) (ffprobe.VideoInfo, error) {
	return f.info, f.err
}

// fakeExecutor records the invocation and creates the output file so the
// encoder's post-run stat succeeds.
type fakeExecutor struct {
	err    error
	stderr string
	calls  int
	binary string
	args   []string
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string) (string, string, error) {
	f.calls++
	f.binary = binary
	f.args = append([]string(nil), args...)
	if f.err != nil {
		return "", f.stderr, f.err
	}
	output := args[len(args)-1]
	if err := os.WriteFile(output, []byte("webm"), 0o644); err != nil {
		return "", "", err
	}
	return "", f.stderr, nil
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeDerivesOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "My Holiday Video.mp4")
	exec := &fakeExecutor{}
	enc := New("ffmpeg", fakeProber{info: ffprobe.VideoInfo{Width: 1920, Height: 1080, HasAudio: true}}, exec, nil)

	result, err := enc.Encode(context.Background(), input, "", Options{Quality: 50})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "my_holiday_video.webm")
	if result.OutputPath != want {
		t.Errorf("output = %q, want %q", result.OutputPath, want)
	}
	if result.Bitrate != 1250 {
		t.Errorf("bitrate = %d, want 1250", result.Bitrate)
	}
	if result.InputBytes <= 0 || result.OutputBytes <= 0 {
		t.Errorf("sizes not reported: %+v", result)
	}
	if exec.calls != 1 {
		t.Errorf("expected 1 ffmpeg invocation, got %d", exec.calls)
	}
}

func TestEncodeMissingInput(t *testing.T) {
	exec := &fakeExecutor{}
	enc := New("ffmpeg", fakeProber{}, exec, nil)

	_, err := enc.Encode(context.Background(), filepath.Join(t.TempDir(), "absent.mp4"), "", Options{Quality: 30})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if exec.calls != 0 {
		t.Fatal("no subprocess may be spawned for a missing input")
	}
}

func TestEncodeInvalidOptionsBeforeProbe(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "clip.mp4")
	exec := &fakeExecutor{}
	enc := New("ffmpeg", fakeProber{err: errors.New("probe must not run")}, exec, nil)

	_, err := enc.Encode(context.Background(), input, "", Options{Quality: 120})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if exec.calls != 0 {
		t.Fatal("no subprocess may be spawned for invalid options")
	}
}

func TestEncodeProbeFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "clip.mp4")
	probeErr := services.Wrap(services.ErrExternalTool, "probe", "geometry", "exit status 1", nil)
	exec := &fakeExecutor{}
	enc := New("ffmpeg", fakeProber{err: probeErr}, exec, nil)

	_, err := enc.Encode(context.Background(), input, "", Options{Quality: 30})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected wrapped probe error, got %v", err)
	}
	if exec.calls != 0 {
		t.Fatal("transcoder must not run after a probe failure")
	}
}

func TestEncodeTranscoderFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "clip.mp4")
	exec := &fakeExecutor{err: errors.New("exit status 1"), stderr: "Invalid data found"}
	enc := New("ffmpeg", fakeProber{info: ffprobe.VideoInfo{Width: 640, Height: 480}}, exec, nil)

	_, err := enc.Encode(context.Background(), input, "", Options{Quality: 30})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("stderr detail missing from error: %v", err)
	}
}

func TestEncodeCreatesOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "clip.mp4")
	output := filepath.Join(dir, "nested", "deeper", "clip.webm")
	enc := New("ffmpeg", fakeProber{info: ffprobe.VideoInfo{Width: 640, Height: 480}}, &fakeExecutor{}, nil)

	result, err := enc.Encode(context.Background(), input, output, Options{Quality: 30})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Fatalf("output not written: %v", err)
	}
}

func TestEncodeFilterAndAudioArgs(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "clip.mp4")
	exec := &fakeExecutor{}
	enc := New("ffmpeg", fakeProber{info: ffprobe.VideoInfo{Width: 1920, Height: 1080, HasAudio: false}}, exec, nil)

	_, err := enc.Encode(context.Background(), input, "", Options{
		Quality: 30,
		Crop:    "100:50:1280:720",
		Resize:  "640x480",
	})
	if err != nil {
		t.Fatal(err)
	}

	joined := strings.Join(exec.args, " ")
	want := "crop=1280:720:100:50,scale=640:480:force_original_aspect_ratio=decrease"
	if !strings.Contains(joined, want) {
		t.Errorf("filter chain missing or misordered: %q", joined)
	}
	if strings.Contains(joined, "libopus") {
		t.Errorf("audio args present for silent input: %q", joined)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/videos/sample.mp4", "sample.webm"},
		{"/videos/My Clip.MOV", "my_clip.webm"},
		{"SpriteSheet.avi", "sprite_sheet.webm"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.input); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSizeRatio(t *testing.T) {
	r := Result{InputBytes: 200, OutputBytes: 50}
	if got := r.SizeRatio(); got != 25 {
		t.Errorf("SizeRatio() = %v, want 25", got)
	}
	zero := Result{OutputBytes: 50}
	if got := zero.SizeRatio(); got != 0 {
		t.Errorf("SizeRatio() with zero input = %v, want 0", got)
	}
}
