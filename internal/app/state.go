package app

import "sync"

type RunState int

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// State is the application's only mutable data. Handlers on the UI
// goroutine and the hotkey goroutine share it.
type State struct {
	mu        sync.RWMutex
	folder    string
	keybind   string
	run       RunState
	capturing bool
}

type Snapshot struct {
	Folder  string
	Keybind string
	Run     RunState
}

func NewState() *State {
	return &State{run: Stopped}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Folder: s.folder, Keybind: s.keybind, Run: s.run}
}

func (s *State) Folder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folder
}

// SetFolder ignores the empty string, which stands for "unset".
func (s *State) SetFolder(path string) {
	if path == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folder = path
}

func (s *State) Keybind() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keybind
}

func (s *State) SetKeybind(name string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keybind = name
}

func (s *State) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.run == Running
}

// Ready reports whether both folder and keybind are set.
func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folder != "" && s.keybind != ""
}

func (s *State) setRun(run RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run = run
}

// beginCapture returns false when a capture is already pending.
func (s *State) beginCapture() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capturing {
		return false
	}
	s.capturing = true
	return true
}

func (s *State) endCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capturing = false
}

func (s *State) Capturing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capturing
}
