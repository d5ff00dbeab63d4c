package rules

import (
	"time"

	"github.com/ftahirops/kestrel/model"
)

// MissingDataRule implements §4.2's MissingDataRule: it compares the age of
// the latest retained sample against a warn and a fail threshold. Now is
// injected so evaluation is deterministic and testable.
type MissingDataRule struct {
	name            string
	maxAge, failAge time.Duration
	now             func() time.Time
}

// NewMissingDataRule builds a rule that returns DEGRADED once the latest
// sample is older than maxAge, and FAILED once older than failAge. maxAge
// must be less than failAge.
func NewMissingDataRule(name string, maxAge, failAge time.Duration) *MissingDataRule {
	return &MissingDataRule{name: name, maxAge: maxAge, failAge: failAge, now: time.Now}
}

// WithClock overrides the clock used for age computation; intended for tests.
func (r *MissingDataRule) WithClock(now func() time.Time) *MissingDataRule {
	r.now = now
	return r
}

func (r *MissingDataRule) Name() string { return r.name }

func (r *MissingDataRule) Evaluate(w Window, signalID string) model.RuleResult {
	result := model.RuleResult{RuleName: r.name, SignalID: signalID, Severity: model.OK}

	latest := w.Latest(signalID)
	if !latest.Valid {
		result.Severity = model.Failed
		result.Message = "no valid reading"
		return result
	}

	age := r.now().Sub(latest.Timestamp)
	switch {
	case age > r.failAge:
		result.Severity = model.Failed
		result.Message = "reading age exceeds fail threshold"
	case age > r.maxAge:
		result.Severity = model.Degraded
		result.Message = "reading age exceeds warn threshold"
	}
	return result
}
