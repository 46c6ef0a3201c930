package patternlock

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-confirm", "after-confirm"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	l, _ := newTestLock(t, nil)
	l.Screenshot("a")
	l.Screenshot("b")
	l.Screenshot("c")
	got := l.TakeScreenshots()
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("TakeScreenshots = %v, want [a b c]", got)
	}
	if again := l.TakeScreenshots(); again != nil {
		t.Errorf("second TakeScreenshots = %v, want nil", again)
	}
}

func TestWriteScreenshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	surf := NewRasterSurface(40, 30, ColorWhite)
	if err := WriteScreenshots(dir, surf.Image(), []string{"first", "second one"}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("wrote %d files, want 2", len(entries))
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, "_first.png") && !strings.HasSuffix(name, "_second_one.png") {
			t.Errorf("unexpected file %s", name)
		}
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
			t.Errorf("%s is %dx%d, want 40x30", name, b.Dx(), b.Dy())
		}
	}
}

func TestWriteScreenshotsNoLabels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	if err := WriteScreenshots(dir, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory created with nothing to write")
	}
}

func TestSaveScreenshotsLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	l, _ := newTestLock(t, func(c *Config) {
		c.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	})

	// A regular file where the directory should be makes MkdirAll fail.
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	surf := NewRasterSurface(8, 8, ColorWhite)
	l.Screenshot("after-set")
	err := l.SaveScreenshots(blocked, func() image.Image { return surf.Image() })
	if err == nil {
		t.Fatal("SaveScreenshots into a file path succeeded")
	}
	out := buf.String()
	if !strings.Contains(out, "screenshot failed") || !strings.Contains(out, "after-set") {
		t.Errorf("failure not logged, got %q", out)
	}
	if l.TakeScreenshots() != nil {
		t.Error("failed labels left queued")
	}
}

func TestSaveScreenshotsCapturesLazily(t *testing.T) {
	l, _ := newTestLock(t, nil)
	called := 0
	capture := func() image.Image {
		called++
		return NewRasterSurface(8, 8, ColorWhite).Image()
	}
	if err := l.SaveScreenshots(t.TempDir(), capture); err != nil || called != 0 {
		t.Fatalf("empty queue: err = %v, capture called %d times", err, called)
	}

	dir := filepath.Join(t.TempDir(), "shots")
	l.Screenshot("one")
	l.Screenshot("two")
	if err := l.SaveScreenshots(dir, capture); err != nil {
		t.Fatal(err)
	}
	if called != 1 {
		t.Errorf("capture called %d times, want 1", called)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 2 {
		t.Errorf("wrote %d files, want 2", len(entries))
	}
}
