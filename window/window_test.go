package window

import (
	"testing"
	"time"

	"github.com/ftahirops/kestrel/model"
)

func mkSample(id string, v float64, t time.Time) model.Sample {
	return model.Sample{SignalID: id, Value: v, Timestamp: t, Valid: true}
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for capacity=0")
	}
	if _, err := New(-1); err == nil {
		t.Fatal("expected error for capacity=-1")
	}
}

func TestLatestUnknownSignalIsInvalidSentinel(t *testing.T) {
	w, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	s := w.Latest("ghost")
	if s.Valid {
		t.Fatal("expected invalid sentinel for unknown signal")
	}
	if s.SignalID != "ghost" {
		t.Fatalf("expected sentinel signal_id %q, got %q", "ghost", s.SignalID)
	}
	if got := w.ReadingsFor("ghost"); len(got) != 0 {
		t.Fatalf("expected empty readings for unknown signal, got %v", got)
	}
}

func TestBoundedRetentionAndOrder(t *testing.T) {
	w, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Now()
	for i := 0; i < 5; i++ {
		w.Push(mkSample("x", float64(i), base.Add(time.Duration(i)*time.Second)))
	}
	readings := w.ReadingsFor("x")
	if len(readings) != 3 {
		t.Fatalf("expected capacity-bounded length 3, got %d", len(readings))
	}
	want := []float64{2, 3, 4}
	for i, s := range readings {
		if s.Value != want[i] {
			t.Fatalf("readings[%d] = %v, want %v", i, s.Value, want[i])
		}
	}
	latest := w.Latest("x")
	if latest.Value != 4 {
		t.Fatalf("latest = %v, want 4", latest.Value)
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	w, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Now()
	for i := 0; i < 100; i++ {
		w.Push(mkSample("a", float64(i), base.Add(time.Duration(i)*time.Millisecond)))
		w.Push(mkSample("b", float64(i), base.Add(time.Duration(i)*time.Millisecond)))
		if len(w.ReadingsFor("a")) > 8 || len(w.ReadingsFor("b")) > 8 {
			t.Fatalf("capacity exceeded at iteration %d", i)
		}
	}
}

func TestInvalidSampleRetained(t *testing.T) {
	w, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	w.Push(model.InvalidSample("x", time.Now()))
	readings := w.ReadingsFor("x")
	if len(readings) != 1 {
		t.Fatalf("expected invalid sample retained, got %d readings", len(readings))
	}
	if readings[0].Valid {
		t.Fatal("expected retained sample to still be invalid")
	}
}

func TestUnknownSignalsIndependent(t *testing.T) {
	w, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	w.Push(mkSample("a", 1, time.Now()))
	if w.Known("b") {
		t.Fatal("signal b should not be known before any push")
	}
	if !w.Known("a") {
		t.Fatal("signal a should be known after push")
	}
}
