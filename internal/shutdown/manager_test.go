package shutdown

import (
	"sync"
	"testing"
	"time"

	"course-giveaway/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestShutdownReverseOrder(t *testing.T) {
	m := NewManager(logger.Nop())

	var mu sync.Mutex
	var order []string
	record := func(name string) ShutdownFunc {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}

	m.Register("sender", record("sender"))
	m.Register("controller", record("controller"))
	m.Shutdown()

	assert.Equal(t, []string{"controller", "sender"}, order)
	require.Error(t, m.Context().Err())
}

func TestShutdownRunsOnce(t *testing.T) {
	m := NewManager(logger.Nop())

	calls := 0
	m.Register("counter", ShutdownFunc(func() { calls++ }))

	m.Shutdown()
	m.Shutdown()
	assert.Equal(t, 1, calls)
}

func TestShutdownTimeout(t *testing.T) {
	m := NewManager(logger.Nop())
	m.SetTimeout(20 * time.Millisecond)

	release := make(chan struct{})
	m.Register("stuck", ShutdownFunc(func() { <-release }))

	start := time.Now()
	m.Shutdown()
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	// let the stuck component's goroutine observe the release
	time.Sleep(10 * time.Millisecond)
}

func TestListenExitsOnShutdown(t *testing.T) {
	m := NewManager(logger.Nop())
	m.Listen(nil)
	m.Shutdown()
	time.Sleep(10 * time.Millisecond)
}
