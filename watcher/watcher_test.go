package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir, filepath.Join(dir, "missing")}, 100*time.Millisecond, func() { calls.Add(1) })
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"), []byte{byte('a' + i)}, 0644))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestWatchNewDirectories(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir}, 50*time.Millisecond, func() { changed <- struct{}{} })
	}()

	time.Sleep(100 * time.Millisecond)
	sub := filepath.Join(dir, "weaviate")
	require.NoError(t, os.Mkdir(sub, 0755))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for new directory")
	}

	// the new directory is watched too
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "index.md"), []byte("# Weaviate"), 0644))
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported inside new directory")
	}

	cancel()
	require.NoError(t, <-done)
}
