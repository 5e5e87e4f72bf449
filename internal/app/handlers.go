package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"filename-copier/internal/events"
	"filename-copier/internal/logger"
)

// Dependencies are the external facilities the handlers drive. Settler,
// Notifier and Dispatch are optional. Dispatch runs a function on the UI
// goroutine; without it the function runs in place.
type Dependencies struct {
	View      View
	Events    Publisher
	Monitor   HotkeyMonitor
	Resolver  LatestResolver
	Clipboard ClipboardWriter
	Chooser   FolderChooser
	Capturer  KeyCapturer
	Player    SoundPlayer
	Settler   Settler
	Notifier  Notifier
	Dispatch  func(func())
	Logger    logger.Logger
}

type Options struct {
	// Debounce is waited after every trigger before the folder is scanned,
	// giving the program that produced the file time to finish writing.
	Debounce       time.Duration
	CaptureTimeout time.Duration
}

// Handlers implements every user action. Button handlers run on the UI
// goroutine; HandleTrigger runs on the hotkey listener goroutine and only
// reaches the window through the event queue.
type Handlers struct {
	ctx   context.Context
	state *State
	deps  Dependencies
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)

	statusMu   sync.Mutex
	lastStatus string

	// generation changes on every Start and Stop. Events carry the value
	// current when their trigger began.
	generation atomic.Uint64
}

func NewHandlers(ctx context.Context, state *State, deps Dependencies, opts Options) *Handlers {
	log := deps.Logger
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Handlers{
		ctx:        ctx,
		state:      state,
		deps:       deps,
		opts:       opts,
		log:        log,
		sleep:      time.Sleep,
		lastStatus: StatusStopped,
	}
}

// HandleToggle is the Start/Stop button.
func (h *Handlers) HandleToggle() {
	if h.state.Running() {
		h.stop()
		return
	}
	h.start()
}

func (h *Handlers) start() {
	if !h.state.Ready() {
		h.setStatus(StatusNeedSetup)
		return
	}
	snap := h.state.Snapshot()

	// Running is set before registering so a trigger that fires immediately
	// is not discarded.
	h.generation.Add(1)
	h.state.setRun(Running)
	if err := h.deps.Monitor.Register(snap.Keybind, h.HandleTrigger); err != nil {
		h.state.setRun(Stopped)
		h.log.Error("Handlers", err, map[string]interface{}{"keybind": snap.Keybind})
		h.setStatus(StatusRegisterFailed)
		return
	}

	h.deps.View.SetRunning(true)
	h.setStatus(StatusRunning)
	h.log.Info("Handlers", "monitoring started", map[string]interface{}{
		"folder":  snap.Folder,
		"keybind": snap.Keybind,
	})
}

// stop always ends in Stopped, whatever the hotkey backend reports.
func (h *Handlers) stop() {
	h.generation.Add(1)
	h.state.setRun(Stopped)
	if err := h.deps.Monitor.Unregister(); err != nil {
		h.log.Error("Handlers", err, nil)
	}

	h.deps.View.SetRunning(false)
	h.setStatus(StatusStopped)
	h.log.Info("Handlers", "monitoring stopped", nil)
}

// HandleChooseFolder is the Choose Folder button. A cancelled dialog
// leaves everything unchanged.
func (h *Handlers) HandleChooseFolder() {
	path, ok, err := h.deps.Chooser.Choose(h.state.Folder())
	if err != nil {
		h.log.Error("Handlers", err, nil)
		h.setStatus(StatusDialogUnavailable)
		return
	}
	if !ok {
		h.log.Debug("Handlers", "folder selection cancelled", nil)
		return
	}

	h.state.SetFolder(path)
	h.deps.View.SetFolder(path)
	h.log.Info("Handlers", "folder selected", map[string]interface{}{"folder": path})
}

// HandleSetKeybind is the Set Keybind button. It returns immediately; the
// keybind is stored when the capturer reports the next key press.
func (h *Handlers) HandleSetKeybind() {
	if !h.state.beginCapture() {
		return
	}

	previous := h.currentStatus()
	h.setStatus(StatusPressKey)

	h.deps.Capturer.Capture(h.opts.CaptureTimeout, func(name string, err error) {
		defer h.state.endCapture()

		if err != nil {
			h.log.Warning("Handlers", "keybind capture ended", map[string]interface{}{"error": err.Error()})
			h.setStatus(StatusCaptureTimeout)
			return
		}
		if !h.deps.Monitor.Supports(name) {
			h.setStatus(StatusUnsupportedKey(name))
			return
		}

		h.state.SetKeybind(name)
		h.deps.View.SetKeybind(name)
		h.setStatus(previous)
		h.log.Info("Handlers", "keybind set", map[string]interface{}{"keybind": name})
	})
}

// HandleSignature is the signature button. Playback errors, including a
// press while the clip is still playing, are ignored.
func (h *Handlers) HandleSignature() {
	if err := h.deps.Player.Play(); err != nil {
		h.log.Debug("Handlers", "signature sound not played", map[string]interface{}{"error": err.Error()})
	}
}

// HandleTrigger runs when the global hotkey fires.
func (h *Handlers) HandleTrigger() {
	gen := h.generation.Load()
	if !h.state.Running() {
		h.log.Debug("Handlers", "trigger ignored while stopped", nil)
		return
	}

	h.sleep(h.opts.Debounce)

	folder := h.state.Folder()
	if h.deps.Settler != nil {
		if err := h.deps.Settler.Wait(h.ctx, folder); err != nil {
			h.log.Warning("Handlers", "folder did not settle", map[string]interface{}{
				"folder": folder,
				"error":  err.Error(),
			})
		}
	}

	h.copyLatest(gen, folder)
	h.refresh(gen)
}

// Current reports whether e was produced during the present Start/Stop
// cycle. It is meant to be called on the UI goroutine, where Start and Stop
// run, so a status from a trigger overtaken by Stop is never shown.
func (h *Handlers) Current(e events.Event) bool {
	return e.Generation == h.generation.Load()
}

func (h *Handlers) copyLatest(gen uint64, folder string) {
	name, ok, err := h.deps.Resolver.Latest(folder)
	if err != nil {
		h.log.Error("Handlers", err, map[string]interface{}{"folder": folder})
		h.publishStatus(gen, StatusFolderUnavailable)
		return
	}
	if !ok {
		h.log.Debug("Handlers", "no file in folder", map[string]interface{}{"folder": folder})
		return
	}

	if err := h.deps.Clipboard.Write(name); err != nil {
		h.log.Error("Handlers", err, nil)
		h.publishStatus(gen, StatusClipboardUnavailable)
		return
	}

	h.publishStatus(gen, StatusCopied(name))
	h.log.Info("Handlers", "file name copied", map[string]interface{}{"name": name})

	if h.deps.Notifier != nil {
		if err := h.deps.Notifier.Copied(name); err != nil {
			h.log.Warning("Handlers", "notification failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// refresh re-registers the keybind currently in state on the UI goroutine,
// unless monitoring was stopped or restarted since gen. A keybind changed
// while running takes effect here, not earlier.
func (h *Handlers) refresh(gen uint64) {
	h.dispatch(func() {
		if !h.state.Running() || h.generation.Load() != gen {
			return
		}

		key := h.state.Keybind()
		if err := h.deps.Monitor.Register(key, h.HandleTrigger); err != nil {
			h.log.Error("Handlers", err, map[string]interface{}{"keybind": key})
			h.state.setRun(Stopped)
			h.deps.Events.Publish(events.Event{Type: events.RunningChanged, Flag: false, Generation: gen})
			h.publishStatus(gen, StatusRegisterFailed)
			return
		}

		// A Stop that slipped in while registering has already unregistered;
		// undo the registration it could not see.
		if !h.state.Running() {
			if err := h.deps.Monitor.Unregister(); err != nil {
				h.log.Error("Handlers", err, nil)
			}
		}
	})
}

func (h *Handlers) dispatch(fn func()) {
	if h.deps.Dispatch == nil {
		fn()
		return
	}
	h.deps.Dispatch(fn)
}

// Shutdown drops the hotkey registration if monitoring is active.
func (h *Handlers) Shutdown() {
	if !h.state.Running() {
		return
	}
	h.generation.Add(1)
	h.state.setRun(Stopped)
	if err := h.deps.Monitor.Unregister(); err != nil {
		h.log.Error("Handlers", err, nil)
	}
}

func (h *Handlers) setStatus(text string) {
	h.rememberStatus(text)
	h.deps.View.SetStatus(text)
}

func (h *Handlers) publishStatus(gen uint64, text string) {
	h.rememberStatus(text)
	h.deps.Events.Publish(events.Event{Type: events.StatusChanged, Text: text, Generation: gen})
}

func (h *Handlers) rememberStatus(text string) {
	if text == StatusPressKey {
		return
	}
	h.statusMu.Lock()
	h.lastStatus = text
	h.statusMu.Unlock()
}

func (h *Handlers) currentStatus() string {
	h.statusMu.Lock()
	defer h.statusMu.Unlock()
	return h.lastStatus
}
