package status

import (
	"sync"
	"testing"
)

func TestCounterCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Counter(Frames)
	b := r.Counter(Frames)
	if a != b {
		t.Error("Expected same counter pointer for the same key")
	}
	a.Add(2)
	r.Inc(Frames)
	if got := r.Get(Frames); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
}

func TestGetDoesNotCreate(t *testing.T) {
	r := NewRegistry()
	if got := r.Get("absent"); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if kv := r.KeyVals(); len(kv) != 0 {
		t.Errorf("Expected no counters, got %v", kv)
	}
}

func TestRangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Inc(Moves)
	r.Inc(Events)
	r.Inc(IntentPrefix + "quit")
	r.Inc(Events)

	kv := r.KeyVals()
	want := []any{Events, int64(2), IntentPrefix + "quit", int64(1), Moves, int64(1)}
	if len(kv) != len(want) {
		t.Fatalf("Expected %v, got %v", want, kv)
	}
	for i := range want {
		if kv[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, kv[i])
		}
	}
}

func TestConcurrentInc(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Inc(Events)
			}
		}()
	}
	wg.Wait()
	if got := r.Get(Events); got != 8000 {
		t.Errorf("Expected 8000, got %d", got)
	}
}
