package propcell

import (
	"errors"
	"testing"
)

func TestFromSourceTracksPushes(t *testing.T) {
	feed := NewChangeStream[int]()
	sp := FromSource(feed, 0)

	if sp.Read() != 0 {
		t.Errorf("expected initial value 0, got %d", sp.Read())
	}

	rec := &recorder[int]{}
	if _, err := sp.Behavior().Subscribe(rec.observer()); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	feed.Push(5)
	feed.Push(5)
	feed.Push(6)

	if sp.Read() != 6 {
		t.Errorf("expected current value 6, got %d", sp.Read())
	}
	if want := []int{0, 5, 6}; !equalSlices(rec.values, want) {
		t.Errorf("expected behavior sequence %v, got %v", want, rec.values)
	}
}

func TestFromSourceRawViewSeesDuplicates(t *testing.T) {
	feed := NewChangeStream[int]()
	sp := FromSource(feed, 0)

	rec := &recorder[int]{}
	sp.Raw().Subscribe(rec.observer())

	feed.Push(1)
	feed.Push(1)

	if want := []int{1, 1}; !equalSlices(rec.values, want) {
		t.Errorf("expected raw sequence %v, got %v", want, rec.values)
	}
}

func TestFromSourceCompletionDisposesInnerOnce(t *testing.T) {
	feed := NewChangeStream[int]()
	sp := FromSource(feed, 1)

	rec := &recorder[int]{}
	sp.Raw().Subscribe(rec.observer())

	feed.Complete()
	if rec.completes != 1 {
		t.Fatalf("expected 1 completion, got %d", rec.completes)
	}
	if sp.Read() != 1 {
		t.Errorf("read after source completion should return last value, got %d", sp.Read())
	}

	// Dispose after the source already terminated is a no-op.
	sp.Dispose()
	if rec.completes != 1 {
		t.Errorf("expected no second completion, got %d", rec.completes)
	}
}

func TestFromSourceErrorFailsInner(t *testing.T) {
	feed := NewChangeStream[int]()
	sp := FromSource(feed, 0)

	rec := &recorder[int]{}
	sp.Raw().Subscribe(rec.observer())

	boom := errors.New("feed down")
	feed.Fail(boom)

	if len(rec.errs) != 1 || !errors.Is(rec.errs[0], boom) {
		t.Errorf("expected error signal %v, got %v", boom, rec.errs)
	}
	if rec.completes != 0 {
		t.Errorf("failed source must not complete, got %d completions", rec.completes)
	}
}

func TestFromSourceDisposeUnsubscribes(t *testing.T) {
	feed := NewChangeStream[int]()
	sp := FromSource(feed, 0)

	feed.Push(3)
	sp.Dispose()

	// The source stays alive; pushes simply no longer reach the property.
	if err := feed.Push(4); err != nil {
		t.Errorf("expected source push to succeed after dispose, got %v", err)
	}
	if sp.Read() != 3 {
		t.Errorf("expected frozen value 3, got %d", sp.Read())
	}
}

func TestFromSourceOnTerminatedSource(t *testing.T) {
	feed := NewChangeStream[int]()
	feed.Complete()

	sp := FromSource(feed, 8)
	if sp.Read() != 8 {
		t.Errorf("expected initial value 8, got %d", sp.Read())
	}

	rec := &recorder[int]{}
	sp.Behavior().Subscribe(rec.observer())
	if !equalSlices(rec.values, []int{8}) || rec.completes != 1 {
		t.Errorf("expected frozen value [8] and immediate completion, got %v / %d", rec.values, rec.completes)
	}
}

func TestFromSourceAsBindSource(t *testing.T) {
	feed := NewChangeStream[int]()
	sp := FromSource(feed, 10)
	target := New(0)

	if _, err := Bind[int, int](sp, Identity[int](), target); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if target.Read() != 10 {
		t.Fatalf("expected seeded 10, got %d", target.Read())
	}

	feed.Push(20)
	if target.Read() != 20 {
		t.Errorf("expected 20 propagated from the feed, got %d", target.Read())
	}
}

func TestToSinkCollects(t *testing.T) {
	var got []int
	sink := ToSink(func(n int) error {
		got = append(got, n)
		return nil
	})

	a := New(1)
	if _, err := Bind[int, int](a, Identity[int](), sink); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	a.Write(2)
	a.Write(2)
	a.Write(3)

	if want := []int{1, 2, 3}; !equalSlices(got, want) {
		t.Errorf("expected sink to receive %v, got %v", want, got)
	}
}
