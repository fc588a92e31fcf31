// Package parallel provides the engine's map capability: fan a pure function
// out over an argument list on a worker pool, with explicit sequential
// fallback when no pool is running. Workers share no mutable state; every
// task receives its own inputs and owns its output slot.
package parallel

import (
	"fmt"
	"math"
	"runtime"
	"sync"
)

// Pool manages a fixed set of worker goroutines.
type Pool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // Protects tasks from concurrent close during send
	closed  bool         // Protected by mu
}

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = fmt.Errorf("worker count exceeds maximum")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// NewPool creates a pool with the given number of workers. A count <= 0 uses
// one worker per CPU.
func NewPool(workers int) (*Pool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p, nil
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// worker drains the task queue until it is closed. Task panics are the
// submitting Map call's responsibility; the worker itself never recovers.
func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// submit adds a task to the queue. Returns false if the pool is closed.
func (p *Pool) submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Close shuts the pool down and waits for in-flight tasks to finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
