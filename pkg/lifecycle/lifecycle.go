// Package lifecycle coordinates startup probes and graceful shutdown of
// the long-lived subsystems: the database pool, blob storage, the HTTP
// listener, and the background status refresh.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Coordinator runs startup hooks concurrently and reports ready once they
// all return. Shutdown hooks start immediately and are expected to block
// on Context().Done() before cleaning up. Ready hooks start once startup
// completes and are waited on by Shutdown like shutdown hooks.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	startup  sync.WaitGroup
	shutdown sync.WaitGroup
	ready    atomic.Bool

	mu      sync.Mutex
	onReady []func()
}

// New returns a Coordinator whose context is cancelled by Shutdown.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn in its own goroutine as part of startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startup.Go(fn)
}

// OnShutdown runs fn in its own goroutine; Shutdown waits for it.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Go(fn)
}

// OnReady runs fn in its own goroutine once WaitForStartup marks the
// coordinator ready, or right away if it already is. Hooks registered
// after shutdown begins never run.
func (c *Coordinator) OnReady(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.ctx.Err() != nil:
	case c.ready.Load():
		c.shutdown.Go(fn)
	default:
		c.onReady = append(c.onReady, fn)
	}
}

// Ready reports whether every startup hook has returned and shutdown has not begun.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// WaitForStartup blocks until all startup hooks return, then marks the
// coordinator ready and launches the ready hooks.
func (c *Coordinator) WaitForStartup() {
	c.startup.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx.Err() != nil || c.ready.Load() {
		return
	}
	c.ready.Store(true)
	for _, fn := range c.onReady {
		c.shutdown.Go(fn)
	}
	c.onReady = nil
}

// Shutdown cancels the context and waits up to timeout for shutdown hooks.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.mu.Lock()
	c.ready.Store(false)
	c.cancel()
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
