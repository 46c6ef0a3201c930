package patternlock

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultScreenshotDir is where screenshots are written when no directory is
// configured.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled screenshot. The host writes queued screenshots
// after its next draw via TakeScreenshots and WriteScreenshots.
func (l *Lock) Screenshot(label string) {
	l.shots = append(l.shots, label)
}

// TakeScreenshots returns and clears the queued screenshot labels.
func (l *Lock) TakeScreenshots() []string {
	if len(l.shots) == 0 {
		return nil
	}
	out := l.shots
	l.shots = nil
	return out
}

// SaveScreenshots writes the queued screenshots to dir using the image
// returned by capture, which is only called when something is queued. A write
// failure is logged on the lock's logger and returned.
func (l *Lock) SaveScreenshots(dir string, capture func() image.Image) error {
	labels := l.TakeScreenshots()
	if len(labels) == 0 {
		return nil
	}
	if err := WriteScreenshots(dir, capture(), labels); err != nil {
		l.log.Warn("screenshot failed", "dir", dir, "labels", labels, "err", err)
		return err
	}
	l.log.Debug("screenshots written", "dir", dir, "count", len(labels))
	return nil
}

// WriteScreenshots encodes img once per label as dir/<timestamp>_<label>.png.
// Failures are reported on stderr and the first one is returned.
func WriteScreenshots(dir string, img image.Image, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[patternlock] screenshot: mkdir %s: %v\n", dir, err)
		return fmt.Errorf("screenshot dir: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	var first error
	for _, label := range labels {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[patternlock] screenshot: %v\n", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
