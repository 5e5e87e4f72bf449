// Package audio plays the signature clip.
package audio

import (
	"errors"
	"fmt"
	"sync"

	"filename-copier/internal/logger"
)

// ErrBusy is returned by Play while a clip is still playing.
var ErrBusy = errors.New("playback already active")

// output starts asynchronous playback of clip and calls done exactly once
// when it has finished.
type output interface {
	Play(clip *Clip, done func()) error
	Close() error
}

type Player struct {
	mu      sync.Mutex
	playing bool
	starts  int
	clip    *Clip
	out     output
	logger  logger.Logger
}

// NewPlayer opens the default playback backend for a preloaded clip.
func NewPlayer(clip *Clip, log logger.Logger) (*Player, error) {
	out, err := newDeviceOutput()
	if err != nil {
		return nil, err
	}
	return newPlayer(clip, out, log), nil
}

func newPlayer(clip *Clip, out output, log logger.Logger) *Player {
	return &Player{clip: clip, out: out, logger: log}
}

// Play starts the clip from the beginning unless it is already playing,
// in which case it returns ErrBusy and changes nothing.
func (p *Player) Play() error {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return ErrBusy
	}
	p.playing = true
	p.starts++
	p.mu.Unlock()

	if err := p.out.Play(p.clip, p.finished); err != nil {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
		return fmt.Errorf("playback failed: %w", err)
	}

	p.logger.Debug("Audio", "playback started", map[string]interface{}{
		"duration_ms": p.clip.Duration().Milliseconds(),
	})
	return nil
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Starts counts playbacks that were actually started.
func (p *Player) Starts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.starts
}

func (p *Player) Shutdown() {
	if err := p.out.Close(); err != nil {
		p.logger.Error("Audio", err, nil)
	}
}

func (p *Player) finished() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
	p.logger.Debug("Audio", "playback finished", nil)
}
