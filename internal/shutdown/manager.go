// Package shutdown tears the application down in reverse registration order
// when the window closes or the process receives a termination signal.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"filename-copier/internal/logger"
)

const DefaultTimeout = 5 * time.Second

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type component struct {
	name string
	impl Shutdownable
}

type Manager struct {
	components []component
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	signals    chan os.Signal
}

func NewManager(log logger.Logger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:  log,
		timeout: timeout,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register adds a component. Components are shut down last-registered first.
func (m *Manager) Register(name string, s Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, impl: s})
}

// Listen runs onSignal once the process is interrupted or terminated.
// onSignal usually quits the UI loop, which in turn calls Shutdown.
func (m *Manager) Listen(onSignal func()) {
	m.signals = make(chan os.Signal, 1)
	signal.Notify(m.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-m.signals:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			if onSignal != nil {
				onSignal()
				return
			}
			m.Shutdown()
		case <-m.done:
		}
	}()
}

// Shutdown is idempotent. A component that does not return within the
// timeout is abandoned and the sequence moves on.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	if m.signals != nil {
		signal.Stop(m.signals)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			c.impl.Shutdown()
		}()

		select {
		case <-finished:
			m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
				"component": c.name,
			})
		case <-time.After(m.timeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": c.name,
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// Context is cancelled as soon as Shutdown starts.
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
