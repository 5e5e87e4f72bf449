package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filename-copier/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// ErrNotSettled is returned when the folder kept changing until the timeout.
var ErrNotSettled = errors.New("folder did not settle")

const settleOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Settler waits for a folder to stop receiving writes.
type Settler struct {
	quiet   time.Duration
	timeout time.Duration
	logger  logger.Logger
}

func NewSettler(quiet, timeout time.Duration, log logger.Logger) *Settler {
	return &Settler{quiet: quiet, timeout: timeout, logger: log}
}

// Wait returns nil once dir has seen no write, create or rename events for
// the quiet period, ErrNotSettled when the timeout elapses first.
func (s *Settler) Wait(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	quiet := time.NewTimer(s.quiet)
	defer quiet.Stop()

	events := 0
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&settleOps == 0 {
				continue
			}
			events++
			if !quiet.Stop() {
				select {
				case <-quiet.C:
				default:
				}
			}
			quiet.Reset(s.quiet)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warning("Settler", "watch error", map[string]interface{}{
				"dir":   dir,
				"error": err.Error(),
			})

		case <-quiet.C:
			s.logger.Debug("Settler", "folder settled", map[string]interface{}{
				"dir":    dir,
				"events": events,
			})
			return nil

		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrNotSettled
			}
			return ctx.Err()
		}
	}
}
