package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, root string) *Context {
	t.Helper()
	w := &Context{
		Config: Config{
			Root:     root,
			Include:  []string{"*.launch.yml"},
			Exclude:  []string{"ignored"},
			Debounce: 100 * time.Millisecond,
		},
		Log: zerolog.Nop(),
	}
	require.NoError(t, w.Init())
	require.NoError(t, w.Start())
	t.Cleanup(w.Close)
	return w
}

func expectChange(t *testing.T, w *Context, want string) {
	t.Helper()
	select {
	case got := <-w.Changed:
		require.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported for %s", want)
	}
}

func expectNoChange(t *testing.T, w *Context) {
	t.Helper()
	select {
	case got := <-w.Changed:
		t.Fatalf("unexpected change %s", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_ReportsMatchingFile(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	p := filepath.Join(root, "nrf52.launch.yml")
	require.NoError(t, os.WriteFile(p, []byte("device_name: nRF52832\n"), 0o644))
	expectChange(t, w, p)
}

func TestWatcher_CoalescesWrites(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	p := filepath.Join(root, "nrf52.launch.yml")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(p, []byte("device_name: nRF52832\n"), 0o644))
	}
	expectChange(t, w, p)
	expectNoChange(t, w)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ignored"), 0o755))
	w := newTestWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored", "x.launch.yml"), nil, 0o644))
	expectNoChange(t, w)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	dir := filepath.Join(root, "boards")
	require.NoError(t, os.Mkdir(dir, 0o755))
	// give the watcher time to pick up the new directory
	time.Sleep(100 * time.Millisecond)

	p := filepath.Join(dir, "stm32.launch.yml")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	expectChange(t, w, p)
}

func TestWatcher_CloseTwice(t *testing.T) {
	w := newTestWatcher(t, t.TempDir())
	w.Close()
	w.Close()

	select {
	case <-w.Done():
	default:
		t.Fatal("done not closed")
	}
}

func TestWatcher_ForgetsSettledFiles(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	for _, name := range []string{"a.launch.yml", "b.launch.yml"} {
		p := filepath.Join(root, name)
		require.NoError(t, os.WriteFile(p, nil, 0o644))
		expectChange(t, w, p)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	require.Empty(t, w.debounce)
}
