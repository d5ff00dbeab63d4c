package fault

import (
	"testing"
	"time"

	"github.com/ftahirops/kestrel/model"
)

func sample(id string, v float64) model.Sample {
	return model.Sample{SignalID: id, Value: v, Timestamp: time.Now(), Valid: true}
}

func TestApplyWithoutInjectIsIdentity(t *testing.T) {
	s := New()
	in := sample("x", 0.5)
	out := s.Apply(in)
	if out != in {
		t.Fatalf("expected identity pass-through, got %+v", out)
	}
}

func TestSpikeIsOneShot(t *testing.T) {
	s := New()
	s.Inject("x", model.FaultSpike, model.FaultParameters{InjectedValue: 999})

	out := s.Apply(sample("x", 0.5))
	if out.Value != 999 {
		t.Fatalf("expected spiked value 999, got %v", out.Value)
	}
	if s.HasFault("x") {
		t.Fatal("spike should self-clear after one application")
	}

	in := sample("x", 0.5)
	out2 := s.Apply(in)
	if out2 != in {
		t.Fatalf("second apply after spike should be identity, got %+v", out2)
	}
}

func TestInvalidValueDoesNotSelfClear(t *testing.T) {
	s := New()
	s.Inject("x", model.FaultInvalidValue, model.FaultParameters{InjectedValue: 42})
	for i := 0; i < 3; i++ {
		out := s.Apply(sample("x", 0.5))
		if out.Value != 42 {
			t.Fatalf("apply %d: expected 42, got %v", i, out.Value)
		}
	}
	if !s.HasFault("x") {
		t.Fatal("InvalidValue should not self-clear")
	}
}

func TestMissingUpdateSuppressesExactlyKThenClears(t *testing.T) {
	s := New()
	s.Inject("x", model.FaultMissingUpdate, model.FaultParameters{SuppressCycles: 3})

	for i := 0; i < 3; i++ {
		out := s.Apply(sample("x", 0.5))
		if out.Valid {
			t.Fatalf("apply %d: expected suppressed (invalid), got valid", i)
		}
	}
	if s.HasFault("x") {
		t.Fatal("MissingUpdate should self-clear once suppress_cycles exhausted")
	}

	in := sample("x", 0.5)
	out := s.Apply(in)
	if out != in {
		t.Fatalf("(k+1)th apply should be untouched, got %+v", out)
	}
}

func TestMissingUpdateOneCycle(t *testing.T) {
	s := New()
	s.Inject("x", model.FaultMissingUpdate, model.FaultParameters{SuppressCycles: 1})

	out := s.Apply(sample("x", 0.5))
	if out.Valid {
		t.Fatal("first apply with suppress_cycles=1 should be invalid")
	}
	if s.HasFault("x") {
		t.Fatal("should clear immediately after the single suppressed cycle")
	}
}

func TestInterfaceFailureNeverClears(t *testing.T) {
	s := New()
	s.Inject("x", model.FaultInterfaceFailure, model.FaultParameters{})
	for i := 0; i < 5; i++ {
		out := s.Apply(sample("x", 0.5))
		if out.Valid {
			t.Fatalf("apply %d: expected invalid under InterfaceFailure", i)
		}
	}
	if !s.HasFault("x") {
		t.Fatal("InterfaceFailure should never self-clear")
	}
}

func TestDelayedReadingBlocksAndPassesThrough(t *testing.T) {
	s := New()
	var slept time.Duration
	s.sleep = func(d time.Duration) { slept = d }
	s.Inject("x", model.FaultDelayedReading, model.FaultParameters{DelayMillis: 250})

	in := sample("x", 0.75)
	out := s.Apply(in)
	if out != in {
		t.Fatalf("DelayedReading must not modify the sample, got %+v", out)
	}
	if slept != 250*time.Millisecond {
		t.Fatalf("expected sleep of 250ms, got %v", slept)
	}
}

func TestInjectReplacesExistingFault(t *testing.T) {
	s := New()
	s.Inject("x", model.FaultInterfaceFailure, model.FaultParameters{})
	s.Inject("x", model.FaultInvalidValue, model.FaultParameters{InjectedValue: 7})
	out := s.Apply(sample("x", 1))
	if out.Value != 7 || !out.Valid {
		t.Fatalf("expected second inject to replace the first, got %+v", out)
	}
}

func TestClearAndClearAll(t *testing.T) {
	s := New()
	s.Inject("x", model.FaultInterfaceFailure, model.FaultParameters{})
	s.Inject("y", model.FaultInterfaceFailure, model.FaultParameters{})
	s.Clear("x")
	if s.HasFault("x") {
		t.Fatal("Clear should remove the fault on x")
	}
	if !s.HasFault("y") {
		t.Fatal("y should be unaffected by clearing x")
	}
	s.ClearAll()
	if s.HasFault("y") {
		t.Fatal("ClearAll should remove every fault")
	}
}

func TestFaultOnUnknownSignalIsNoop(t *testing.T) {
	s := New()
	s.Clear("nonexistent")
	if s.HasFault("nonexistent") {
		t.Fatal("clearing a signal with no fault should be a no-op")
	}
}
