package gui

import (
	"errors"
	"sync"
	"time"

	"filename-copier/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var ErrCaptureTimeout = errors.New("keybind capture timed out")

// KeyCapture records the next key delivered to the window.
type KeyCapture struct {
	window fyne.Window
	logger logger.Logger

	mu      sync.Mutex
	pending *captureRequest
}

type captureRequest struct {
	onKey func(name string, err error)
	timer *time.Timer
}

func NewKeyCapture(window fyne.Window, log logger.Logger) *KeyCapture {
	return &KeyCapture{window: window, logger: log}
}

// Capture must be called on the UI goroutine. onKey also runs there, exactly
// once. A new Capture replaces any pending one without calling it.
func (k *KeyCapture) Capture(timeout time.Duration, onKey func(name string, err error)) {
	req := &captureRequest{onKey: onKey}

	k.mu.Lock()
	if k.pending != nil && k.pending.timer != nil {
		k.pending.timer.Stop()
	}
	k.pending = req
	k.mu.Unlock()

	c := k.window.Canvas()
	c.Unfocus()
	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) { k.finish(req, string(ev.Name), nil) })
	} else {
		c.SetOnTypedKey(func(ev *fyne.KeyEvent) { k.finish(req, string(ev.Name), nil) })
	}

	if timeout > 0 {
		timer := time.AfterFunc(timeout, func() {
			fyne.Do(func() { k.finish(req, "", ErrCaptureTimeout) })
		})
		k.mu.Lock()
		req.timer = timer
		k.mu.Unlock()
	}

	k.logger.Debug("KeyCapture", "listening for key", map[string]interface{}{
		"timeout": timeout.String(),
	})
}

// Pending reports whether a capture is waiting for a key.
func (k *KeyCapture) Pending() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pending != nil
}

func (k *KeyCapture) finish(req *captureRequest, name string, err error) {
	k.mu.Lock()
	if k.pending != req {
		k.mu.Unlock()
		return
	}
	k.pending = nil
	if req.timer != nil {
		req.timer.Stop()
	}
	k.mu.Unlock()

	c := k.window.Canvas()
	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(nil)
	} else {
		c.SetOnTypedKey(nil)
	}

	req.onKey(name, err)
}
