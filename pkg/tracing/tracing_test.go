package tracing

import (
	"errors"
	"testing"

	"github.com/propcell-dev/propcell/pkg/propcell"
)

func TestMapPassesValuesThrough(t *testing.T) {
	double := Map("double", func(n int) (int, error) { return n * 2, nil })

	got, err := double(21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestMapPreservesErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := Map("failing", func(int) (int, error) { return 0, boom }, WithTracerName("test"))

	if _, err := failing(1); !errors.Is(err, boom) {
		t.Errorf("expected mapping error to pass through unchanged, got %v", err)
	}
}

func TestMapInsideBind(t *testing.T) {
	a := propcell.New(3)
	b := propcell.New(0)

	if _, err := propcell.Bind(a, Map("triple", func(n int) (int, error) {
		return n * 3, nil
	}), b); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	if b.Read() != 9 {
		t.Errorf("expected seeded 9, got %d", b.Read())
	}
	a.Write(10)
	if b.Read() != 30 {
		t.Errorf("expected 30, got %d", b.Read())
	}
}
