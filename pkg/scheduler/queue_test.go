package scheduler

import (
	"reflect"
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.Enqueue(func() { got = append(got, i) })
	}

	if q.Pending() != 3 {
		t.Fatalf("Pending() = %d, want 3", q.Pending())
	}
	if n := q.Flush(); n != 3 {
		t.Errorf("Flush() = %d, want 3", n)
	}
	if !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("order = %v", got)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() after flush = %d", q.Pending())
	}
}

func TestQueueReentrantEnqueue(t *testing.T) {
	q := NewQueue()
	var got []string
	q.Enqueue(func() {
		got = append(got, "a")
		q.Enqueue(func() { got = append(got, "c") })
	})
	q.Enqueue(func() { got = append(got, "b") })

	if n := q.Flush(); n != 3 {
		t.Errorf("Flush() = %d, want 3", n)
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", got)
	}
}

func TestQueueNestedFlush(t *testing.T) {
	q := NewQueue()
	var nested int
	q.Enqueue(func() {
		q.Enqueue(func() {})
		nested = q.Flush()
	})

	if n := q.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
	if nested != 0 {
		t.Errorf("nested Flush() = %d, want 0", nested)
	}
}

func TestQueuePanicKeepsRemainingTasks(t *testing.T) {
	q := NewQueue()
	ran := false
	q.Enqueue(func() { panic("boom") })
	q.Enqueue(func() { ran = true })

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		q.Flush()
	}()

	if q.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", q.Pending())
	}
	q.Flush()
	if !ran {
		t.Error("remaining task did not run")
	}
}

func TestQueueConcurrentEnqueue(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Enqueue(func() {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	select {
	case <-q.Ready():
	default:
		t.Error("Ready() not signalled")
	}
	q.Flush()
	if count != 50 {
		t.Errorf("count = %d, want 50", count)
	}
}
