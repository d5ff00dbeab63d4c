package rules

import (
	"fmt"

	"github.com/ftahirops/kestrel/model"
)

// RateOfChangeRule implements §4.2's RateOfChangeRule: it inspects the last
// two retained Samples for a signal and flags an unphysically fast swing.
type RateOfChangeRule struct {
	name          string
	maxRatePerSec float64
}

// NewRateOfChangeRule builds a rule that flags DEGRADED when the
// per-second rate of change between the two most recent samples exceeds
// maxRatePerSec.
func NewRateOfChangeRule(name string, maxRatePerSec float64) *RateOfChangeRule {
	return &RateOfChangeRule{name: name, maxRatePerSec: maxRatePerSec}
}

func (r *RateOfChangeRule) Name() string { return r.name }

func (r *RateOfChangeRule) Evaluate(w Window, signalID string) model.RuleResult {
	result := model.RuleResult{RuleName: r.name, SignalID: signalID, Severity: model.OK}

	readings := w.ReadingsFor(signalID)
	if len(readings) < 2 {
		return result
	}

	v0 := readings[len(readings)-2]
	v1 := readings[len(readings)-1]
	if !v0.Valid || !v1.Valid {
		return result
	}

	dt := v1.Timestamp.Sub(v0.Timestamp).Seconds()
	if dt <= 0 {
		return result
	}

	rate := absFloat(v1.Value-v0.Value) / dt
	if rate > r.maxRatePerSec {
		result.Severity = model.Degraded
		result.Message = fmt.Sprintf("rate of change %.4f/s exceeds limit %.4f/s", rate, r.maxRatePerSec)
	}
	return result
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
