package parallel

import (
	"fmt"
	"sync"
)

// Map applies fn to every item and returns the results in input order. With a
// nil or closed pool it degrades to sequential execution. A panicking task
// fails the whole call: no partial results are returned. There is no
// cancellation; a submitted map runs to completion.
func Map[T, R any](p *Pool, items []T, fn func(T) R) ([]R, error) {
	results := make([]R, len(items))

	if p == nil {
		for i, item := range items {
			results[i] = fn(item)
		}
		return results, nil
	}

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("map task %d panicked: %v", i, r)
					}
					errMu.Unlock()
				}
			}()
			results[i] = fn(item)
		}
		if !p.submit(task) {
			// Pool closed under us; finish inline.
			task()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// Shared is the process-wide pool used by the top-level procedures. It is
// created lazily by StartShared and stays nil (sequential execution) until
// then.
var (
	shared   *Pool
	sharedMu sync.Mutex
)

// StartShared starts the shared pool if it is not already running and
// returns it.
func StartShared(workers int) (*Pool, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil {
		return shared, nil
	}
	p, err := NewPool(workers)
	if err != nil {
		return nil, err
	}
	shared = p
	return shared, nil
}

// Shared returns the shared pool, or nil when parallel execution is disabled.
func Shared() *Pool {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	return shared
}

// StopShared drains and releases the shared pool.
func StopShared() {
	sharedMu.Lock()
	p := shared
	shared = nil
	sharedMu.Unlock()
	if p != nil {
		p.Close()
	}
}
