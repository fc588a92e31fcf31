package parallel

import (
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
)

func TestNewPool_DefaultsToNumCPU(t *testing.T) {
	p, err := NewPool(0)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer p.Close()

	if p.Workers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), p.Workers())
	}
}

func TestNewPool_RejectsExcessiveWorkers(t *testing.T) {
	if _, err := NewPool(MaxWorkers + 1); err == nil {
		t.Fatal("Expected error for excessive worker count")
	}
}

func TestPool_CloseIdempotent(t *testing.T) {
	p, err := NewPool(2)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	p.Close()
	p.Close()

	if p.submit(func() {}) {
		t.Error("Closed pool accepted a task")
	}
}

func TestMap_PreservesOrder(t *testing.T) {
	p, err := NewPool(4)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer p.Close()

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	results, err := Map(p, items, func(v int) int { return v * v })
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	for i, r := range results {
		if r != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, r, i*i)
		}
	}
}

func TestMap_NilPoolRunsSequentially(t *testing.T) {
	var calls int64
	results, err := Map(nil, []int{1, 2, 3}, func(v int) int {
		atomic.AddInt64(&calls, 1)
		return v + 1
	})
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if calls != 3 || len(results) != 3 || results[2] != 4 {
		t.Errorf("Sequential map produced %v after %d calls", results, calls)
	}
}

func TestMap_PanicFailsWholeCall(t *testing.T) {
	p, err := NewPool(2)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer p.Close()

	results, err := Map(p, []int{0, 1, 2}, func(v int) int {
		if v == 1 {
			panic("boom")
		}
		return v
	})
	if err == nil {
		t.Fatal("Expected error from panicking task")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error does not carry the panic value: %v", err)
	}
	if results != nil {
		t.Errorf("Expected no partial results, got %v", results)
	}
}

func TestMap_ClosedPoolFallsBackInline(t *testing.T) {
	p, err := NewPool(2)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	p.Close()

	results, err := Map(p, []int{1, 2}, func(v int) int { return v * 10 })
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if results[0] != 10 || results[1] != 20 {
		t.Errorf("Inline fallback produced %v", results)
	}
}

func TestMap_EmptyInput(t *testing.T) {
	p, err := NewPool(2)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer p.Close()

	results, err := Map(p, nil, func(v int) int { return v })
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty results, got %v", results)
	}
}

func TestSharedPool_Lifecycle(t *testing.T) {
	defer StopShared()

	if Shared() != nil {
		t.Fatal("Shared pool should start nil")
	}

	p, err := StartShared(2)
	if err != nil {
		t.Fatalf("StartShared failed: %v", err)
	}
	if Shared() != p {
		t.Error("Shared returned a different pool")
	}

	again, err := StartShared(8)
	if err != nil {
		t.Fatalf("StartShared failed: %v", err)
	}
	if again != p {
		t.Error("StartShared replaced a running pool")
	}

	StopShared()
	if Shared() != nil {
		t.Error("StopShared left the pool registered")
	}
}
