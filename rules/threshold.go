package rules

import (
	"fmt"

	"github.com/ftahirops/kestrel/model"
)

// Bounds is one (min, max, breach severity) triple.
type Bounds struct {
	Min, Max       float64
	BreachSeverity model.Severity
}

// ThresholdRule implements §4.2's ThresholdRule, in either of its two
// constructions: a single scalar bound optionally targeted at one signal,
// or a per-signal map of bounds. Exactly one of the two is non-zero for a
// given instance; use NewScalarThresholdRule or NewMappedThresholdRule.
type ThresholdRule struct {
	name string

	// Scalar construction.
	scalar    Bounds
	target    string // empty means "applies to every signal"
	scalarSet bool

	// Per-signal map construction.
	byID map[string]Bounds
}

// NewScalarThresholdRule builds a ThresholdRule that applies a single bound
// either to every signal (target == "") or only to the named target signal.
func NewScalarThresholdRule(name string, min, max float64, breach model.Severity, target string) *ThresholdRule {
	return &ThresholdRule{
		name:      name,
		scalar:    Bounds{Min: min, Max: max, BreachSeverity: breach},
		target:    target,
		scalarSet: true,
	}
}

// NewMappedThresholdRule builds a ThresholdRule whose bounds vary per
// signal_id. Signals absent from byID deliberately return OK.
func NewMappedThresholdRule(name string, byID map[string]Bounds) *ThresholdRule {
	return &ThresholdRule{name: name, byID: byID}
}

func (t *ThresholdRule) Name() string { return t.name }

func (t *ThresholdRule) Evaluate(w Window, signalID string) model.RuleResult {
	result := model.RuleResult{RuleName: t.name, SignalID: signalID, Severity: model.OK}

	bounds, applies := t.boundsFor(signalID)
	if !applies {
		return result
	}

	latest := w.Latest(signalID)
	if !latest.Valid {
		result.Severity = model.Failed
		result.Message = "no valid reading"
		return result
	}

	switch {
	case latest.Value < bounds.Min:
		result.Severity = bounds.BreachSeverity
		result.Message = fmt.Sprintf("value %.4f below minimum %.4f", latest.Value, bounds.Min)
	case latest.Value > bounds.Max:
		result.Severity = bounds.BreachSeverity
		result.Message = fmt.Sprintf("value %.4f above maximum %.4f", latest.Value, bounds.Max)
	}
	return result
}

func (t *ThresholdRule) boundsFor(signalID string) (Bounds, bool) {
	if t.scalarSet {
		if t.target != "" && t.target != signalID {
			return Bounds{}, false
		}
		return t.scalar, true
	}
	b, ok := t.byID[signalID]
	return b, ok
}
