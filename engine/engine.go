// Package engine turns an incoming batch of Samples into deterministic
// state updates and transitions (§4.3). It owns the MeasurementWindow and
// the rule list, mirroring the teacher's own Engine (engine/engine.go),
// which owns a collector registry and history and exposes a single Tick
// entry point; here the entry point is Process, driven by whatever batch
// of Samples the scheduler and fault stage produced for one tick.
package engine

import (
	"time"

	"github.com/ftahirops/kestrel/model"
	"github.com/ftahirops/kestrel/rules"
	"github.com/ftahirops/kestrel/window"
)

// Engine evaluates rules against a bounded measurement window and tracks
// per-signal and aggregate SystemState, appending a StateTransition on
// every change (§4.3).
type Engine struct {
	win    *window.Window
	rules  []rules.Rule
	states map[string]model.SystemState

	transitions []model.StateTransition
	violations  []model.RuleResult

	now func() time.Time
}

// New creates an Engine backed by a MeasurementWindow of the given
// per-signal capacity (§3 default 64).
func New(capacity int) (*Engine, error) {
	w, err := window.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Engine{
		win:    w,
		states: make(map[string]model.SystemState),
		now:    time.Now,
	}, nil
}

// AddRule extends the rule list. Order is significant only for message
// selection when multiple rules fire at the same severity (§4.3, §9).
func (e *Engine) AddRule(r rules.Rule) {
	e.rules = append(e.rules, r)
}

// Window returns read-only access to the underlying MeasurementWindow, for
// inspection and for rules that need it directly.
func (e *Engine) Window() *window.Window { return e.win }

// SensorState returns the current SystemState for signalID, or
// StateUnknown for a signal that has never been seen.
func (e *Engine) SensorState(signalID string) model.SystemState {
	if st, ok := e.states[signalID]; ok {
		return st
	}
	return model.StateUnknown
}

// AggregateState computes the worst-wins aggregate across all known
// signals: FAILED > UNKNOWN > DEGRADED > OK (§4.3, §8). With no known
// signals the aggregate is UNKNOWN.
func (e *Engine) AggregateState() model.SystemState {
	if len(e.states) == 0 {
		return model.StateUnknown
	}
	worst := model.StateOK
	seenAny := false
	for _, st := range e.states {
		seenAny = true
		if rank(st) > rank(worst) {
			worst = st
		}
	}
	if !seenAny {
		return model.StateUnknown
	}
	return worst
}

// rank orders SystemState for aggregate worst-wins comparison:
// FAILED(3) > UNKNOWN(2) > DEGRADED(1) > OK(0).
func rank(s model.SystemState) int {
	switch s {
	case model.StateFailed:
		return 3
	case model.StateUnknown:
		return 2
	case model.StateDegraded:
		return 1
	default:
		return 0
	}
}

// RecentTransitions returns the StateTransitions recorded since the last
// DrainTransitions call (or since construction), oldest first, without
// clearing them.
func (e *Engine) RecentTransitions() []model.StateTransition {
	return e.transitions
}

// DrainTransitions returns and clears the transitions appended since the
// last drain, supporting the supervisor's "new since last tick" contract
// (§4.8 step 7) without holding the whole process lifetime's log in the
// hot path.
func (e *Engine) DrainTransitions() []model.StateTransition {
	out := e.transitions
	e.transitions = nil
	return out
}

// DrainViolations returns and clears the RuleResults recorded by rule
// breaches (severity > OK) since the last drain, one per signal that
// breached a rule this tick. An invalid-reading FAILED classification
// bypasses rule evaluation entirely (§4.3 step 1) and so never appears
// here — it is visible only as a reading event and a state transition.
func (e *Engine) DrainViolations() []model.RuleResult {
	out := e.violations
	e.violations = nil
	return out
}

// Process consumes one batch of Samples: each is pushed into the window in
// iteration order, its signal's state is (re)computed, and a
// StateTransition is appended on change (§4.3).
func (e *Engine) Process(samples []model.Sample) {
	for _, s := range samples {
		e.processOne(s)
	}
}

func (e *Engine) processOne(s model.Sample) {
	if _, seen := e.states[s.SignalID]; !seen {
		e.states[s.SignalID] = model.StateUnknown
	}

	e.win.Push(s)

	newState, violation := e.evaluate(s.SignalID)
	if violation != nil {
		e.violations = append(e.violations, *violation)
	}
	oldState := e.states[s.SignalID]
	if newState == oldState {
		return
	}

	e.states[s.SignalID] = newState
	e.transitions = append(e.transitions, model.StateTransition{
		SignalID:  s.SignalID,
		From:      oldState,
		To:        newState,
		Reason:    "rule_evaluation",
		Timestamp: e.now(),
	})
}

// evaluate runs the per-signal evaluation algorithm from §4.3:
// an invalid latest reading trumps rule logic and always yields FAILED;
// otherwise rules run in registration order, severity is reduced with
// max(OK, DEGRADED, FAILED), and the first rule to reach the final
// severity supplies the diagnostic message, short-circuiting on FAILED.
func (e *Engine) evaluate(signalID string) (model.SystemState, *model.RuleResult) {
	if !e.win.Latest(signalID).Valid {
		return model.StateFailed, nil
	}

	final := model.OK
	var diagnostic *model.RuleResult
	for _, r := range e.rules {
		result := r.Evaluate(e.win, signalID)
		if result.Severity > final {
			final = result.Severity
			diagnostic = &result
		}
		if final == model.Failed {
			break
		}
	}
	return model.FromSeverity(final), diagnostic
}
