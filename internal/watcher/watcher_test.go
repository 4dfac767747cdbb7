package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pinceau/internal/pubsub"
	"github.com/zjrosen/pinceau/internal/watcher"
)

func newTestWatcher(t *testing.T, path string, debounce time.Duration) (*watcher.Watcher, <-chan pubsub.Event[watcher.FileEvent]) {
	t.Helper()

	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: debounce})
	require.NoError(t, err, "failed to create watcher")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Broker().Subscribe(ctx)

	require.NoError(t, w.Start(), "failed to start watcher")
	return w, events
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.json")
	err := os.WriteFile(path, []byte("{}"), 0644)
	require.NoError(t, err, "failed to create test file")

	w, events := newTestWatcher(t, path, 50*time.Millisecond)
	defer func() { _ = w.Stop() }()

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		err := os.WriteFile(path, []byte("{}"), 0644)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	// Should receive exactly one notification
	select {
	case event := <-events:
		require.Equal(t, pubsub.UpdatedEvent, event.Type, "expected an update event")
		require.Equal(t, path, event.Payload.Path, "event should carry watched path")
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	// No second notification should come quickly
	select {
	case <-events:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
		// Expected - no second notification
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.json")
	otherPath := filepath.Join(dir, "notes.txt")
	err := os.WriteFile(path, []byte("{}"), 0644)
	require.NoError(t, err, "failed to create canvas file")
	// Pre-create the other file so writes to it are just Write events
	err = os.WriteFile(otherPath, []byte("initial"), 0644)
	require.NoError(t, err, "failed to create other file")

	w, events := newTestWatcher(t, path, 50*time.Millisecond)
	defer func() { _ = w.Stop() }()

	// Write to unrelated file (not Create, since it already exists)
	err = os.WriteFile(otherPath, []byte("other content"), 0644)
	require.NoError(t, err, "failed to write other file")

	select {
	case <-events:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
		// Expected - no notification for unrelated file
	}
}

func TestWatcher_AtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.json")
	err := os.WriteFile(path, []byte("{}"), 0644)
	require.NoError(t, err, "failed to create canvas file")

	w, events := newTestWatcher(t, path, 50*time.Millisecond)
	defer func() { _ = w.Stop() }()

	// Editors commonly save by writing a temp file and renaming it over
	// the target, which produces Create/Rename events rather than Write.
	tmpPath := filepath.Join(dir, ".art.json.tmp")
	err = os.WriteFile(tmpPath, []byte(`{"width":1,"height":1}`), 0644)
	require.NoError(t, err, "failed to write temp file")
	err = os.Rename(tmpPath, path)
	require.NoError(t, err, "failed to rename temp file")

	select {
	case event := <-events:
		require.Equal(t, pubsub.UpdatedEvent, event.Type, "expected an update event")
		require.Equal(t, path, event.Payload.Path, "event should carry watched path")
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for atomic save")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.json")
	err := os.WriteFile(path, []byte("{}"), 0644)
	require.NoError(t, err, "failed to create test file")

	w, _ := newTestWatcher(t, path, 50*time.Millisecond)

	// Stop should not hang or panic
	done := make(chan struct{})
	go func() {
		err := w.Stop()
		assert.NoError(t, err, "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
		// Expected - stop completed successfully
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestDefaultConfig(t *testing.T) {
	path := "/tmp/art.json"
	cfg := watcher.DefaultConfig(path)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 1*time.Second, cfg.DebounceDur)
}
