package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karakusoft/faqbot/internal/domain/ports"
)

func waitForEvent(t *testing.T, events <-chan ports.FileEvent) ports.FileEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "event channel closed early")
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file event")
		return ports.FileEvent{}
	}
}

func TestWatch_EmitsCreateForWatchedExtension(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFSNotifyWatcher(nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "guide.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0o644))

	event := waitForEvent(t, events)
	assert.Equal(t, path, event.Path)
	assert.Contains(t, []ports.FileOperation{ports.FileCreated, ports.FileModified}, event.Operation)
}

func TestWatch_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFSNotifyWatcher([]string{".pdf"})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manual.pdf"), []byte("pdf"), 0o644))

	// Only the pdf shows up, even though the txt was written first.
	event := waitForEvent(t, events)
	assert.Equal(t, filepath.Join(dir, "manual.pdf"), event.Path)
}

func TestWatch_ClosesOnContextCancel(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFSNotifyWatcher(nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("event channel did not close after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	w, err := NewFSNotifyWatcher(nil)
	require.NoError(t, err)
	defer w.Stop()

	_, err = w.Watch(context.Background(), filepath.Join(t.TempDir(), "nonexistent"))
	assert.Error(t, err)
}
