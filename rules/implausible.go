package rules

import (
	"fmt"

	"github.com/ftahirops/kestrel/model"
)

// ImplausibleValueRule implements §4.2's ImplausibleValueRule: a hard
// physical bound independent of any per-signal threshold configuration.
type ImplausibleValueRule struct {
	name                     string
	absoluteMin, absoluteMax float64
}

// NewImplausibleValueRule builds a rule rejecting values outside
// [absoluteMin, absoluteMax].
func NewImplausibleValueRule(name string, absoluteMin, absoluteMax float64) *ImplausibleValueRule {
	return &ImplausibleValueRule{name: name, absoluteMin: absoluteMin, absoluteMax: absoluteMax}
}

func (r *ImplausibleValueRule) Name() string { return r.name }

func (r *ImplausibleValueRule) Evaluate(w Window, signalID string) model.RuleResult {
	result := model.RuleResult{RuleName: r.name, SignalID: signalID, Severity: model.OK}

	latest := w.Latest(signalID)
	if !latest.Valid {
		// Delegated to the missing-data rule; this rule only judges plausibility.
		return result
	}

	if latest.Value < r.absoluteMin || latest.Value > r.absoluteMax {
		result.Severity = model.Failed
		result.Message = fmt.Sprintf("value %.4f outside physical bounds [%.4f, %.4f]", latest.Value, r.absoluteMin, r.absoluteMax)
	}
	return result
}
