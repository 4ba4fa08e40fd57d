package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvey-slides/harvey/internal/domain/ports"
)

func TestDeckWatcher(t *testing.T) {
	t.Run("reports writes to a watched file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "talk.slides")
		require.NoError(t, os.WriteFile(path, []byte("---\n\nbody\n"), 0o644))

		w, err := NewDeckWatcher(50*time.Millisecond, nil)
		require.NoError(t, err)
		defer func() { _ = w.Stop() }()

		events, err := w.Watch(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("---\n\nedited\n"), 0o644))

		select {
		case ev := <-events:
			abs, _ := filepath.Abs(path)
			assert.Equal(t, abs, ev.Path)
		case <-time.After(5 * time.Second):
			t.Fatal("no change event received")
		}
	})

	t.Run("ignores sibling files", func(t *testing.T) {
		dir := t.TempDir()
		watchedPath := filepath.Join(dir, "watched.slides")
		require.NoError(t, os.WriteFile(watchedPath, []byte("a"), 0o644))

		w, err := NewDeckWatcher(50*time.Millisecond, nil)
		require.NoError(t, err)
		defer func() { _ = w.Stop() }()

		events, err := w.Watch(context.Background(), watchedPath)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("b"), 0o644))

		select {
		case ev, ok := <-events:
			if ok {
				t.Fatalf("unexpected event for %s", ev.Path)
			}
		case <-time.After(500 * time.Millisecond):
		}
	})

	t.Run("stop without watch", func(t *testing.T) {
		w, err := NewDeckWatcher(time.Millisecond, nil)
		require.NoError(t, err)
		require.NoError(t, w.Stop())
		require.NoError(t, w.Stop())
	})

	t.Run("stop closes event channel", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "talk.slides")
		require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

		w, err := NewDeckWatcher(time.Millisecond, nil)
		require.NoError(t, err)

		events, err := w.Watch(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, w.Stop())

		select {
		case _, ok := <-events:
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("event channel not closed")
		}
	})

	t.Run("watch after stop", func(t *testing.T) {
		w, err := NewDeckWatcher(time.Millisecond, nil)
		require.NoError(t, err)
		require.NoError(t, w.Stop())

		_, err = w.Watch(context.Background(), "anything")
		require.Error(t, err)
	})
}

func TestChangeTypeString(t *testing.T) {
	assert.Equal(t, "modified", ports.Modified.String())
	assert.Equal(t, "created", ports.Created.String())
	assert.Equal(t, "deleted", ports.Deleted.String())
	assert.Equal(t, "renamed", ports.Renamed.String())
	assert.Equal(t, "unknown", ports.ChangeType(42).String())
}
