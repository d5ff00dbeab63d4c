// Package fault implements the FaultStage described in §4.4: a per-signal
// transform inserted between raw Samples and the engine, used to inject
// controlled degradation for verification of the detect -> degrade ->
// recover lifecycle. The one-shot/self-clearing bookkeeping here is
// grounded in the teacher's own self-clearing trigger idiom
// (engine/watchdog.go's cooldown-gated Check), adapted from a time-based
// cooldown to the spec's cycle-counted and one-shot semantics.
package fault

import (
	"sync"
	"time"

	"github.com/ftahirops/kestrel/model"
)

// Stage holds the active-fault table and applies it to Samples. It is the
// exclusive owner of that table (§3 Ownership).
type Stage struct {
	mu     sync.Mutex
	active map[string]*model.ActiveFault
	sleep  func(time.Duration) // overridable for tests
}

// New creates an empty Stage.
func New() *Stage {
	return &Stage{
		active: make(map[string]*model.ActiveFault),
		sleep:  time.Sleep,
	}
}

// Inject installs a fault for signalID, replacing any existing fault on
// that signal. At most one ActiveFault exists per signal at a time.
func (s *Stage) Inject(signalID string, kind model.FaultKind, params model.FaultParameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[signalID] = &model.ActiveFault{
		Kind:            kind,
		Parameters:      params,
		RemainingCycles: params.SuppressCycles,
	}
}

// Clear removes the fault registered for signalID, if any. A no-op for an
// unknown or unfaulted signal.
func (s *Stage) Clear(signalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, signalID)
}

// ClearAll removes every active fault.
func (s *Stage) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = make(map[string]*model.ActiveFault)
}

// HasFault reports whether signalID currently has an active fault.
func (s *Stage) HasFault(signalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[signalID]
	return ok
}

// Apply applies the fault (if any) registered for sample.SignalID and
// returns the transformed sample. A signal with no active fault passes
// through unchanged.
func (s *Stage) Apply(sample model.Sample) model.Sample {
	s.mu.Lock()
	af, ok := s.active[sample.SignalID]
	if !ok {
		s.mu.Unlock()
		return sample
	}

	switch af.Kind {
	case model.FaultSpike:
		out := sample
		out.Value = af.Parameters.InjectedValue
		delete(s.active, sample.SignalID) // one-shot
		s.mu.Unlock()
		return out

	case model.FaultInvalidValue:
		out := sample
		out.Value = af.Parameters.InjectedValue
		s.mu.Unlock()
		return out

	case model.FaultMissingUpdate:
		out := sample
		out.Valid = false
		af.RemainingCycles--
		if af.RemainingCycles <= 0 {
			delete(s.active, sample.SignalID) // exhausted: clears inside this call
		}
		s.mu.Unlock()
		return out

	case model.FaultInterfaceFailure:
		out := sample
		out.Valid = false
		s.mu.Unlock()
		return out

	case model.FaultDelayedReading:
		delay := time.Duration(af.Parameters.DelayMillis) * time.Millisecond
		s.mu.Unlock()
		s.sleep(delay)
		return sample

	default:
		s.mu.Unlock()
		return sample
	}
}
