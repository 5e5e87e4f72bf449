package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"filename-copier/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlerReturnsWhenQuiet(t *testing.T) {
	s := NewSettler(20*time.Millisecond, time.Second, logger.NoOpLogger{})

	start := time.Now()
	require.NoError(t, s.Wait(context.Background(), t.TempDir()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestSettlerTimesOutWhileFolderIsBusy(t *testing.T) {
	dir := t.TempDir()
	s := NewSettler(200*time.Millisecond, 300*time.Millisecond, logger.NoOpLogger{})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		path := filepath.Join(dir, "capture.png")
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = os.WriteFile(path, []byte(time.Now().String()), 0o644)
			}
		}
	}()

	assert.ErrorIs(t, s.Wait(context.Background(), dir), ErrNotSettled)
}

func TestSettlerMissingFolder(t *testing.T) {
	s := NewSettler(10*time.Millisecond, time.Second, logger.NoOpLogger{})
	assert.Error(t, s.Wait(context.Background(), filepath.Join(t.TempDir(), "gone")))
}

func TestSettlerHonoursCancel(t *testing.T) {
	s := NewSettler(time.Hour, 0, logger.NoOpLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Wait(ctx, t.TempDir()), context.Canceled)
}
