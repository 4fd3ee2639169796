// Package metrics provides the per-invocation performance collector used by
// the multiplication algorithms: a monotonic wall-clock timer and a scalar
// multiplication counter.
//
// A Collector is created fresh for each multiplication run and passed
// explicitly down the call tree, so independent runs can never contaminate
// each other's figures. The counter is atomic because the parallel engine
// increments it from several recursive branches at once; the timer methods
// are driven by a single goroutine per run.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
)

// Collector accumulates the scalar multiplication count and elapsed time of
// one multiplication run.
type Collector struct {
	mu      sync.Mutex
	started bool
	stopped bool
	start   time.Time
	stop    time.Time

	count atomic.Int64
}

// NewCollector returns a zeroed Collector ready for a run.
func NewCollector() *Collector {
	return &Collector{}
}

// StartTimer records the run's start instant. Calling it again before
// StopTimer overwrites the previous start and discards any recorded stop.
func (c *Collector) StartTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = time.Now()
	c.started = true
	c.stopped = false
}

// StopTimer records the run's stop instant.
//
// Returns:
//   - error: ErrInvalidState if StartTimer was never called.
func (c *Collector) StopTimer() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return apperrors.WrapError(apperrors.ErrInvalidState, "stop timer without start")
	}
	c.stop = time.Now()
	c.stopped = true
	return nil
}

// IncrementMultiplicationCount adds one scalar multiplication to the counter.
// Safe for concurrent use by the parallel engine's recursive branches.
func (c *Collector) IncrementMultiplicationCount() {
	c.count.Add(1)
}

// AddMultiplications adds n scalar multiplications to the counter.
//
// Parameters:
//   - n: The number of multiplications to add; must be non-negative.
//
// Returns:
//   - error: ErrInvalidArgument if n is negative.
func (c *Collector) AddMultiplications(n int64) error {
	if n < 0 {
		return apperrors.WrapError(apperrors.ErrInvalidArgument, "negative multiplication count %d", n)
	}
	c.count.Add(n)
	return nil
}

// MultiplicationCount returns the accumulated scalar multiplication count.
func (c *Collector) MultiplicationCount() int64 {
	return c.count.Load()
}

// Elapsed returns the duration between the recorded start and stop instants,
// or 0 if the timer was never completed.
func (c *Collector) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || !c.stopped {
		return 0
	}
	return c.stop.Sub(c.start)
}

// ElapsedTimeMs returns the completed timer duration in whole milliseconds.
// It is always non-negative and is 0 when StopTimer was never invoked.
func (c *Collector) ElapsedTimeMs() int64 {
	return c.Elapsed().Milliseconds()
}

// ResetAll zeroes the timer and the counter so the Collector can be reused
// across independent runs.
func (c *Collector) ResetAll() {
	c.mu.Lock()
	c.started = false
	c.stopped = false
	c.start = time.Time{}
	c.stop = time.Time{}
	c.mu.Unlock()
	c.count.Store(0)
}
