package propcell

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPropertyWriteRead(t *testing.T) {
	p := New(0)

	if p.Read() != 0 {
		t.Errorf("expected initial value 0, got %d", p.Read())
	}

	if err := p.Write(5); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if p.Read() != 5 {
		t.Errorf("expected value 5, got %d", p.Read())
	}
}

func TestPropertyUpdate(t *testing.T) {
	p := New(10)
	if err := p.Update(func(n int) int { return n * 2 }); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if p.Read() != 20 {
		t.Errorf("expected value 20, got %d", p.Read())
	}
}

func TestPropertyRawViewEmitsOncePerWrite(t *testing.T) {
	p := New(0)
	rec := &recorder[int]{}
	p.Raw().Subscribe(rec.observer())

	for _, v := range []int{5, 5, 6, 6, 6} {
		if err := p.Write(v); err != nil {
			t.Fatalf("write %d failed: %v", v, err)
		}
	}

	want := []int{5, 5, 6, 6, 6}
	if !equalSlices(rec.values, want) {
		t.Errorf("raw view should emit every write including duplicates, expected %v, got %v", want, rec.values)
	}
}

func TestPropertyBehaviorViewCurrentFirstThenDistinct(t *testing.T) {
	p := New(5)
	rec := &recorder[int]{}
	if _, err := p.Behavior().Subscribe(rec.observer()); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	// Initial value delivered synchronously inside Subscribe.
	if !equalSlices(rec.values, []int{5}) {
		t.Fatalf("expected immediate [5], got %v", rec.values)
	}

	for _, v := range []int{5, 6, 6, 7, 7, 6} {
		p.Write(v)
	}

	want := []int{5, 6, 7, 6}
	if !equalSlices(rec.values, want) {
		t.Errorf("expected behavior sequence %v, got %v", want, rec.values)
	}
}

func TestPropertyBehaviorPerSubscriberTracking(t *testing.T) {
	p := New(0)

	early := &recorder[int]{}
	p.Behavior().Subscribe(early.observer())

	p.Write(6)

	// A second subscriber gets the current value even though the first
	// subscriber has already seen it; each tracks its own last emission.
	late := &recorder[int]{}
	p.Behavior().Subscribe(late.observer())
	if !equalSlices(late.values, []int{6}) {
		t.Fatalf("expected late subscriber to start at [6], got %v", late.values)
	}

	p.Write(6)
	p.Write(0)

	if want := []int{0, 6, 0}; !equalSlices(early.values, want) {
		t.Errorf("expected early subscriber %v, got %v", want, early.values)
	}
	if want := []int{6, 0}; !equalSlices(late.values, want) {
		t.Errorf("expected late subscriber %v, got %v", want, late.values)
	}
}

func TestPropertyDispose(t *testing.T) {
	p := New(3)
	rec := &recorder[int]{}
	p.Raw().Subscribe(rec.observer())

	p.Dispose()
	if rec.completes != 1 {
		t.Fatalf("expected exactly 1 completion, got %d", rec.completes)
	}
	if !p.Disposed() {
		t.Error("expected property to report disposed")
	}

	if err := p.Write(4); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed from write, got %v", err)
	}
	if err := p.Update(func(n int) int { return n + 1 }); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed from update, got %v", err)
	}
	if p.Read() != 3 {
		t.Errorf("read after dispose should return the frozen value 3, got %d", p.Read())
	}

	// Idempotent.
	p.Dispose()
	if rec.completes != 1 {
		t.Errorf("second dispose must not push another completion, got %d", rec.completes)
	}
}

func TestPropertyBehaviorSubscribeAfterDispose(t *testing.T) {
	p := New(9)
	p.Dispose()

	rec := &recorder[int]{}
	if _, err := p.Behavior().Subscribe(rec.observer()); err != nil {
		t.Fatalf("subscribe after dispose failed: %v", err)
	}

	// Frozen value first, then the sticky terminal signal.
	if !equalSlices(rec.values, []int{9}) {
		t.Errorf("expected frozen value [9], got %v", rec.values)
	}
	if rec.completes != 1 {
		t.Errorf("expected immediate completion, got %d", rec.completes)
	}
}

func TestPropertyWithEquals(t *testing.T) {
	p := New("Go", WithEquals(strings.EqualFold))
	rec := &recorder[string]{}
	p.Behavior().Subscribe(rec.observer())

	p.Write("GO") // equal under EqualFold, suppressed
	p.Write("rust")

	want := []string{"Go", "rust"}
	if !equalSlices(rec.values, want) {
		t.Errorf("expected %v, got %v", want, rec.values)
	}

	// The raw view still sees every write.
	if p.Read() != "rust" {
		t.Errorf("expected current value %q, got %q", "rust", p.Read())
	}
}

func TestPropertyDeepEqualFallback(t *testing.T) {
	p := New([]int{1, 2})
	rec := &recorder[[]int]{}
	p.Behavior().Subscribe(rec.observer())

	p.Write([]int{1, 2}) // same content, different slice header
	p.Write([]int{1, 2, 3})

	if len(rec.values) != 2 {
		t.Errorf("expected 2 emissions (initial + one distinct), got %d: %v", len(rec.values), rec.values)
	}
}

func TestPropertyConcurrentWrites(t *testing.T) {
	const writers = 8
	const writesEach = 200

	p := New(0)
	var delivered atomic.Int64
	p.Raw().Subscribe(Observer[int]{
		Value: func(int) error {
			delivered.Add(1)
			return nil
		},
	})

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < writesEach; i++ {
				if err := p.Write(w*writesEach + i); err != nil {
					t.Errorf("concurrent write failed: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := delivered.Load(); got != writers*writesEach {
		t.Errorf("expected %d deliveries, got %d", writers*writesEach, got)
	}
}

func TestPropertyBehaviorReentrantWriteDuringInitialEmission(t *testing.T) {
	p := New(0)

	var got []int
	_, err := p.Behavior().Subscribe(Observer[int]{
		Value: func(v int) error {
			got = append(got, v)
			if v == 0 {
				// A write landing while the initial value is being
				// delivered must still reach this subscriber.
				return p.Write(7)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	want := []int{0, 7}
	if !equalSlices(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if p.Read() != 7 {
		t.Errorf("expected final value 7, got %d", p.Read())
	}
}

func TestPropertyConcurrentWriteAndSubscribe(t *testing.T) {
	const writers = 4
	const writesEach = 100
	const subscribers = 8

	p := New(0)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 1; i <= writesEach; i++ {
				if err := p.Write(w*writesEach + i); err != nil {
					t.Errorf("concurrent write failed: %v", err)
					return
				}
			}
		}(w)
	}

	recs := make([][]int, subscribers)
	var mus [subscribers]sync.Mutex
	for s := 0; s < subscribers; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			_, err := p.Behavior().Subscribe(Observer[int]{
				Value: func(v int) error {
					mus[s].Lock()
					recs[s] = append(recs[s], v)
					mus[s].Unlock()
					return nil
				},
			})
			if err != nil {
				t.Errorf("concurrent subscribe failed: %v", err)
			}
		}(s)
	}
	wg.Wait()

	// With writers quiet, one more distinct write must reach everyone.
	if err := p.Write(-1); err != nil {
		t.Fatalf("final write failed: %v", err)
	}

	for s := 0; s < subscribers; s++ {
		mus[s].Lock()
		vals := recs[s]
		mus[s].Unlock()
		if len(vals) == 0 {
			t.Errorf("subscriber %d saw no values", s)
			continue
		}
		for i := 1; i < len(vals); i++ {
			if vals[i] == vals[i-1] {
				t.Errorf("subscriber %d saw consecutive duplicate %d at %d", s, vals[i], i)
			}
		}
		if vals[len(vals)-1] != -1 {
			t.Errorf("subscriber %d ended on %d, expected -1", s, vals[len(vals)-1])
		}
	}
}
