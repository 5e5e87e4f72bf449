package app

import (
	"context"
	"time"

	"filename-copier/internal/events"
)

// View is the window as seen by the handlers. It is only called from the UI
// goroutine; other goroutines go through Publisher.
type View interface {
	SetStatus(text string)
	SetFolder(path string)
	SetKeybind(name string)
	SetRunning(running bool)
}

type HotkeyMonitor interface {
	Register(key string, onTrigger func()) error
	Unregister() error
	Supports(key string) bool
}

type LatestResolver interface {
	Latest(dir string) (name string, ok bool, err error)
}

type ClipboardWriter interface {
	Write(text string) error
}

// FolderChooser reports ok == false when the user dismisses the dialog.
type FolderChooser interface {
	Choose(start string) (path string, ok bool, err error)
}

// KeyCapturer listens for the next key press and calls onKey once with its
// symbolic name, or with an error when the timeout elapses first. A zero
// timeout waits indefinitely.
type KeyCapturer interface {
	Capture(timeout time.Duration, onKey func(name string, err error))
}

type SoundPlayer interface {
	Play() error
}

type Settler interface {
	Wait(ctx context.Context, dir string) error
}

type Notifier interface {
	Copied(name string) error
}

type Publisher interface {
	Publish(event events.Event)
}
