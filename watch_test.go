package patternlock

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatcherReload(t *testing.T) {
	path := writeFile(t, "lock.toml", "min_length = 4\n")
	w, err := NewConfigWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("min_length = 6\n"), 0o644))

	select {
	case cfg := <-w.Changes():
		assert.Equal(t, 6, cfg.MinLength)
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the file changed")
	}
}

func TestConfigWatcherInvalidFile(t *testing.T) {
	path := writeFile(t, "lock.toml", "min_length = 4\n")
	w, err := NewConfigWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("min_length = 0\n"), 0o644))

	select {
	case err := <-w.Errors():
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case cfg := <-w.Changes():
		t.Fatalf("invalid config delivered: %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("no error after writing an invalid config")
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "lock.toml", "min_length = 4\n")
	w, err := NewConfigWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0o644))

	select {
	case cfg := <-w.Changes():
		t.Fatalf("unrelated file triggered a reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestConfigWatcherStopWithoutStart(t *testing.T) {
	path := writeFile(t, "lock.toml", "")
	w, err := NewConfigWatcher(path, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWatchDebounce, w.debounce)
	w.Stop()
}

func TestConfigWatcherConcurrentStop(t *testing.T) {
	path := writeFile(t, "lock.toml", "min_length = 4\n")
	w, err := NewConfigWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	w.Start()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent Stop calls did not return")
	}

	select {
	case <-w.stoppedCh:
	default:
		t.Error("watch loop still running after Stop")
	}
	w.Stop()
}

func TestConfigWatcherStartAfterStop(t *testing.T) {
	path := writeFile(t, "lock.toml", "min_length = 4\n")
	w, err := NewConfigWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
	w.Start()

	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	assert.False(t, started, "Start after Stop launched the watch loop")

	require.NoError(t, os.WriteFile(path, []byte("min_length = 6\n"), 0o644))
	select {
	case cfg := <-w.Changes():
		t.Fatalf("stopped watcher delivered %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewConfigWatcherErrors(t *testing.T) {
	_, err := NewConfigWatcher("", 0, nil)
	assert.Error(t, err)

	_, err = NewConfigWatcher(filepath.Join(t.TempDir(), "missing", "lock.toml"), 0, nil)
	assert.Error(t, err)
}

func TestApplyConfigUpdatesMachineAndStyle(t *testing.T) {
	l, _ := newTestLock(t, nil)
	cfg := DefaultConfig()
	cfg.MinLength = 3
	cfg.Style.LineWidth = 9
	require.NoError(t, l.ApplyConfig(cfg))
	assert.Equal(t, 3, l.machine.MinLength())
	assert.Equal(t, 9.0, l.painter.style.LineWidth)
}
