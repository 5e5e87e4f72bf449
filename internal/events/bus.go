// Package events is the single-consumer queue that carries UI updates from
// background goroutines to the fyne event loop.
package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	StatusChanged  = "status"
	RunningChanged = "running"
)

// Event is one UI update. Generation identifies the run that produced it so
// subscribers can drop updates that arrive after a restart.
type Event struct {
	Type       string
	Timestamp  time.Time
	Text       string
	Flag       bool
	Generation uint64
}

type Handler interface {
	Handle(event Event)
	GetID() string
}

// HandlerFunc adapts a function to Handler under the given id.
type HandlerFunc struct {
	ID string
	Fn func(Event)
}

func (h HandlerFunc) Handle(event Event) { h.Fn(event) }
func (h HandlerFunc) GetID() string      { return h.ID }

// Bus delivers events in publish order from one worker goroutine.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
	buffer      chan Event
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	closeOnce   sync.Once
	dropped     atomic.Int64
}

func NewBus(bufferSize int) *Bus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &Bus{
		subscribers: make(map[string][]Handler),
		buffer:      make(chan Event, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}

	bus.startWorker()
	return bus
}

// Publish never blocks; events are dropped when the buffer is full or the
// bus is shut down.
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case <-b.ctx.Done():
		return
	default:
	}

	select {
	case b.buffer <- event:
	case <-b.ctx.Done():
	default:
		b.dropped.Add(1)
	}
}

func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

func (b *Bus) Unsubscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[eventType]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[eventType] = append(handlers[:i], handlers[i+1:]...)
			break
		}
	}
}

func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Shutdown stops the worker after it has drained queued events.
func (b *Bus) Shutdown() {
	b.closeOnce.Do(func() {
		b.cancel()
		b.wg.Wait()
	})
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for {
			select {
			case event := <-b.buffer:
				b.dispatch(event)
			case <-b.ctx.Done():
				b.drain()
				return
			}
		}
	}()
}

func (b *Bus) drain() {
	for {
		select {
		case event := <-b.buffer:
			b.dispatch(event)
		default:
			return
		}
	}
}

func (b *Bus) dispatch(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subscribers[event.Type]))
	copy(handlers, b.subscribers[event.Type])
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			// A panicking subscriber must not kill the worker.
			defer func() { _ = recover() }()
			h.Handle(event)
		}()
	}
}
