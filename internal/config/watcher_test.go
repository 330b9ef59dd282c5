package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stavis.yaml")
	require.NoError(t, Save(Default(), path))

	var mu sync.Mutex
	var got []Config
	w, err := NewWatcher(path, zap.NewNop(), func(cfg Config) {
		mu.Lock()
		got = append(got, cfg)
		mu.Unlock()
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	cfg := Default()
	cfg.Clock.Period = 6.5
	require.NoError(t, Save(cfg, path))

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, "no reload delivered")

	mu.Lock()
	defer mu.Unlock()
	assert.InDelta(t, 6.5, got[len(got)-1].Clock.Period, 1e-9)
}

func TestWatcherIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stavis.yaml")
	require.NoError(t, Save(Default(), path))

	var mu sync.Mutex
	reloads := 0
	w, err := NewWatcher(path, zap.NewNop(), func(Config) {
		mu.Lock()
		reloads++
		mu.Unlock()
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("clock:\n  period: -1\n"), 0644))
	time.Sleep(600 * time.Millisecond)

	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, reloads, "invalid config must not be delivered")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stavis.yaml")
	require.NoError(t, Save(Default(), path))

	var mu sync.Mutex
	reloads := 0
	w, err := NewWatcher(path, zap.NewNop(), func(Config) {
		mu.Lock()
		reloads++
		mu.Unlock()
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))
	time.Sleep(600 * time.Millisecond)

	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, reloads)
}

func TestWatcherStopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stavis.yaml")
	w, err := NewWatcher(path, zap.NewNop(), func(Config) {})
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop() // second stop must not panic or block
}
