package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/ssma/pkg/lifecycle"
)

func TestStartupMarksReady(t *testing.T) {
	lc := lifecycle.New()
	var started atomic.Int32

	for range 3 {
		lc.OnStartup(func() {
			time.Sleep(5 * time.Millisecond)
			started.Add(1)
		})
	}

	assert.False(t, lc.Ready())
	lc.WaitForStartup()

	assert.Equal(t, int32(3), started.Load())
	assert.True(t, lc.Ready())
	assert.NoError(t, lc.Shutdown(time.Second))
	assert.False(t, lc.Ready())
}

func TestShutdownWaitsForHooks(t *testing.T) {
	lc := lifecycle.New()
	var closed atomic.Bool

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		closed.Store(true)
	})

	assert.NoError(t, lc.Shutdown(time.Second))
	assert.True(t, closed.Load())
	assert.Error(t, lc.Context().Err())
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	lc.OnShutdown(func() { <-release })

	err := lc.Shutdown(10 * time.Millisecond)
	assert.ErrorContains(t, err, "shutdown timeout")
}

func TestNotReadyAfterCancelledStartup(t *testing.T) {
	lc := lifecycle.New()
	assert.NoError(t, lc.Shutdown(time.Second))

	lc.WaitForStartup()
	assert.False(t, lc.Ready())
}

func TestReadyHooks(t *testing.T) {
	lc := lifecycle.New()
	var dbUp atomic.Bool
	ran := make(chan bool, 2)

	lc.OnStartup(func() {
		time.Sleep(5 * time.Millisecond)
		dbUp.Store(true)
	})
	lc.OnReady(func() { ran <- dbUp.Load() })

	lc.WaitForStartup()
	assert.True(t, <-ran)

	lc.OnReady(func() { ran <- true })
	assert.True(t, <-ran)

	assert.NoError(t, lc.Shutdown(time.Second))
}

func TestReadyHooksSkippedAfterShutdown(t *testing.T) {
	lc := lifecycle.New()
	var ran atomic.Bool
	lc.OnReady(func() { ran.Store(true) })

	assert.NoError(t, lc.Shutdown(time.Second))
	lc.WaitForStartup()
	lc.OnReady(func() { ran.Store(true) })

	assert.False(t, ran.Load())
}
