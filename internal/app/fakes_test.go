package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"filename-copier/internal/events"
)

type fakeView struct {
	mu      sync.Mutex
	status  string
	folder  string
	keybind string
	running bool
}

func (v *fakeView) SetStatus(text string) { v.mu.Lock(); v.status = text; v.mu.Unlock() }
func (v *fakeView) SetFolder(path string) { v.mu.Lock(); v.folder = path; v.mu.Unlock() }
func (v *fakeView) SetKeybind(name string) { v.mu.Lock(); v.keybind = name; v.mu.Unlock() }
func (v *fakeView) SetRunning(running bool) { v.mu.Lock(); v.running = running; v.mu.Unlock() }

func (v *fakeView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *fakePublisher) statuses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		if e.Type == events.StatusChanged {
			out = append(out, e.Text)
		}
	}
	return out
}

type fakeMonitor struct {
	mu          sync.Mutex
	registered  string
	callback    func()
	registers   []string
	unregisters int
	failWith    error
	unsupported map[string]bool
	onRegister  func()
}

func (m *fakeMonitor) Register(key string, onTrigger func()) error {
	if hook := m.onRegister; hook != nil {
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registers = append(m.registers, key)
	if m.failWith != nil {
		return m.failWith
	}
	m.registered = key
	m.callback = onTrigger
	return nil
}

func (m *fakeMonitor) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregisters++
	m.registered = ""
	m.callback = nil
	return nil
}

func (m *fakeMonitor) Supports(key string) bool {
	return !m.unsupported[key]
}

// fire simulates the OS delivering the hotkey; it does nothing when no
// hotkey is registered.
func (m *fakeMonitor) fire() bool {
	m.mu.Lock()
	cb := m.callback
	m.mu.Unlock()
	if cb == nil {
		return false
	}
	cb()
	return true
}

type fakeResolver struct {
	mu    sync.Mutex
	name  string
	ok    bool
	err   error
	calls []string
}

func (r *fakeResolver) Latest(dir string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, dir)
	return r.name, r.ok, r.err
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (c *fakeClipboard) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

type fakeChooser struct {
	paths []string
	err   error
	seen  []string
}

func (c *fakeChooser) Choose(start string) (string, bool, error) {
	c.seen = append(c.seen, start)
	if c.err != nil {
		return "", false, c.err
	}
	if len(c.paths) == 0 {
		return "", false, nil
	}
	p := c.paths[0]
	c.paths = c.paths[1:]
	return p, true, nil
}

// fakeCapturer holds the pending callback until resolve is called.
type fakeCapturer struct {
	pending func(string, error)
	timeout time.Duration
	calls   int
}

func (c *fakeCapturer) Capture(timeout time.Duration, onKey func(string, error)) {
	c.calls++
	c.timeout = timeout
	c.pending = onKey
}

func (c *fakeCapturer) press(name string) {
	cb := c.pending
	c.pending = nil
	cb(name, nil)
}

func (c *fakeCapturer) expire() {
	cb := c.pending
	c.pending = nil
	cb("", errors.New("capture timed out"))
}

type fakePlayer struct {
	busy   bool
	starts int
}

func (p *fakePlayer) Play() error {
	if p.busy {
		return errors.New("busy")
	}
	p.busy = true
	p.starts++
	return nil
}

type fakeSettler struct {
	dirs []string
	err  error
}

func (s *fakeSettler) Wait(_ context.Context, dir string) error {
	s.dirs = append(s.dirs, dir)
	return s.err
}

type fakeNotifier struct {
	names []string
}

func (n *fakeNotifier) Copied(name string) error {
	n.names = append(n.names, name)
	return nil
}
