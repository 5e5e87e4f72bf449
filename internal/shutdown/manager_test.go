package shutdown

import (
	"sync"
	"testing"
	"time"

	"filename-copier/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestShutdownReverseOrder(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, time.Second)

	var mu sync.Mutex
	var order []string
	record := func(name string) Func {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}
	m.Register("audio", record("audio"))
	m.Register("hotkey", record("hotkey"))
	m.Register("events", record("events"))

	m.Shutdown()

	assert.Equal(t, []string{"events", "hotkey", "audio"}, order)
	assert.Error(t, m.Context().Err())
	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, time.Second)
	calls := 0
	m.Register("counter", Func(func() { calls++ }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, 1, calls)
}

func TestShutdownSkipsHungComponent(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, 20*time.Millisecond)
	block := make(chan struct{})
	defer close(block)

	reached := false
	m.Register("after", Func(func() { reached = true }))
	m.Register("hung", Func(func() { <-block }))

	start := time.Now()
	m.Shutdown()

	assert.True(t, reached)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDefaultTimeout(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, 0)
	assert.Equal(t, DefaultTimeout, m.timeout)
}
