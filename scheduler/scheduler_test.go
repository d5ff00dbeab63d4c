package scheduler

import (
	"testing"
	"time"

	"github.com/ftahirops/kestrel/model"
)

type fakeProvider struct {
	id    string
	value float64
	reads int
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Read() model.Sample {
	f.reads++
	return model.Sample{SignalID: f.id, Value: f.value, Timestamp: time.Now(), Valid: true}
}

func TestFirstPollAlwaysFires(t *testing.T) {
	s := New()
	p := &fakeProvider{id: "x"}
	s.Register(p, time.Second)

	samples := s.Poll()
	if len(samples) != 1 {
		t.Fatalf("expected first poll to fire, got %d samples", len(samples))
	}
	if p.reads != 1 {
		t.Fatalf("expected provider read once, got %d", p.reads)
	}
}

func TestCadenceRespected(t *testing.T) {
	s := New()
	p := &fakeProvider{id: "x"}
	s.Register(p, time.Second)

	now := time.Now()
	s.now = func() time.Time { return now }
	s.Poll() // fires (first ever)

	s.now = func() time.Time { return now.Add(500 * time.Millisecond) }
	if got := s.Poll(); len(got) != 0 {
		t.Fatalf("expected no fire before cadence elapses, got %d", len(got))
	}

	s.now = func() time.Time { return now.Add(time.Second) }
	if got := s.Poll(); len(got) != 1 {
		t.Fatalf("expected fire once cadence elapses, got %d", len(got))
	}
}

func TestZeroIntervalFiresEveryPoll(t *testing.T) {
	s := New()
	p := &fakeProvider{id: "x"}
	s.Register(p, 0)

	for i := 0; i < 5; i++ {
		if got := s.Poll(); len(got) != 1 {
			t.Fatalf("poll %d: expected zero-interval provider to fire every time, got %d", i, len(got))
		}
	}
}

func TestRegistrationOrderPreserved(t *testing.T) {
	s := New()
	a := &fakeProvider{id: "a"}
	b := &fakeProvider{id: "b"}
	c := &fakeProvider{id: "c"}
	s.Register(a, 0)
	s.Register(b, 0)
	s.Register(c, 0)

	samples := s.Poll()
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	ids := []string{samples[0].SignalID, samples[1].SignalID, samples[2].SignalID}
	want := []string{"a", "b", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("registration order not preserved: got %v, want %v", ids, want)
		}
	}
}

func TestMultipleCadencesIndependent(t *testing.T) {
	s := New()
	fast := &fakeProvider{id: "fast"}
	slow := &fakeProvider{id: "slow"}
	s.Register(fast, time.Second)
	s.Register(slow, 5*time.Second)

	now := time.Now()
	s.now = func() time.Time { return now }
	s.Poll() // both fire (first ever)

	s.now = func() time.Time { return now.Add(2 * time.Second) }
	samples := s.Poll()
	if len(samples) != 1 || samples[0].SignalID != "fast" {
		t.Fatalf("expected only fast provider to fire, got %+v", samples)
	}
}
