package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RescansOnChange(t *testing.T) {
	root := t.TempDir()

	tr := New(root, quietLogger())
	require.NoError(t, tr.DiscoverAndTrackPlugins())
	require.Empty(t, tr.TrackedPlugins())

	w, err := NewWatcher(tr, quietLogger())
	require.NoError(t, err)

	rescanned := make(chan struct{}, 1)
	w.OnRescan = func() {
		select {
		case rescanned <- struct{}{}:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Install a plugin while the watcher is running.
	dir := newPluginDir(t, root, "alpha")
	writePluginModule(t, dir, "alpha.so", "Alpha")
	writeDepsManifest(t, dir, "alpha.so")

	select {
	case <-rescanned:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not rescan after plugin install")
	}

	assert.Len(t, tr.TrackedPlugins(), 1)
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	root := t.TempDir()
	tr := New(root, quietLogger())

	w, err := NewWatcher(tr, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}
