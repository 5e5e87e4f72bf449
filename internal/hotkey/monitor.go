// Package hotkey owns the single system-wide hotkey registration.
package hotkey

import (
	"errors"
	"fmt"
	"sync"

	"filename-copier/internal/logger"

	"golang.design/x/hotkey"
)

var ErrUnsupportedKey = errors.New("unsupported key")

// binding is the part of *hotkey.Hotkey the monitor relies on. Unregister
// may block until the key is next pressed and released.
type binding interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
	Keyup() <-chan hotkey.Event
}

type registration struct {
	key       string
	binding   binding
	onTrigger func()
	done      chan struct{}
}

// Monitor keeps at most one global hotkey registered. The trigger callback
// runs on the registration's listener goroutine.
type Monitor struct {
	mu         sync.Mutex
	current    *registration
	newBinding func(hotkey.Key) binding
	logger     logger.Logger
	releases   sync.WaitGroup
}

func NewMonitor(log logger.Logger) *Monitor {
	return &Monitor{
		newBinding: func(key hotkey.Key) binding {
			return hotkey.New(nil, key)
		},
		logger: log,
	}
}

func (m *Monitor) Supports(key string) bool {
	_, ok := lookup(key)
	return ok
}

// Register makes key the held hotkey. Registering the key already held only
// swaps the callback and never touches the OS hook, so it is safe from the
// trigger callback itself. A different key replaces the old registration,
// which is released in the background.
func (m *Monitor) Register(key string, onTrigger func()) error {
	code, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedKey, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.key == key {
		m.current.onTrigger = onTrigger
		return nil
	}

	m.releaseLocked()

	b := m.newBinding(code)
	if err := b.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey %q: %w", key, err)
	}

	reg := &registration{key: key, binding: b, onTrigger: onTrigger, done: make(chan struct{})}
	m.current = reg
	go m.listen(reg)

	m.logger.Debug("Hotkey", "registered", map[string]interface{}{"key": key})
	return nil
}

// Unregister removes this application's registration, if any, and returns
// without waiting for the OS hook to let go. Hotkeys owned by other
// programs are never touched.
func (m *Monitor) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseLocked()
	return nil
}

// Registered reports the key currently held, or "" when none.
func (m *Monitor) Registered() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ""
	}
	return m.current.key
}

// Shutdown drops the registration and waits for pending releases. The
// shutdown manager bounds the wait.
func (m *Monitor) Shutdown() {
	if err := m.Unregister(); err != nil {
		m.logger.Error("Hotkey", err, nil)
	}
	m.releases.Wait()
}

func (m *Monitor) releaseLocked() {
	reg := m.current
	if reg == nil {
		return
	}
	m.current = nil
	close(reg.done)

	m.releases.Add(1)
	go m.release(reg)
}

// release unregisters reg's binding. Events still produced by the hook are
// drained meanwhile so its forwarding goroutine can exit.
func (m *Monitor) release(reg *registration) {
	defer m.releases.Done()

	unregistered := make(chan struct{})
	go func() {
		keydown, keyup := reg.binding.Keydown(), reg.binding.Keyup()
		for {
			select {
			case _, ok := <-keydown:
				if !ok {
					keydown = nil
				}
			case _, ok := <-keyup:
				if !ok {
					keyup = nil
				}
			case <-unregistered:
				return
			}
		}
	}()

	err := reg.binding.Unregister()
	close(unregistered)

	if err != nil {
		m.logger.Error("Hotkey", fmt.Errorf("failed to unregister hotkey %q: %w", reg.key, err), nil)
		return
	}
	m.logger.Debug("Hotkey", "unregistered", map[string]interface{}{"key": reg.key})
}

func (m *Monitor) listen(reg *registration) {
	keydown := reg.binding.Keydown()
	for {
		select {
		case <-reg.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			m.mu.Lock()
			active := m.current == reg
			onTrigger := reg.onTrigger
			m.mu.Unlock()
			if !active {
				return
			}
			m.logger.Debug("Hotkey", "triggered", map[string]interface{}{"key": reg.key})
			onTrigger()
		}
	}
}
