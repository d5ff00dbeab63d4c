package model

import "time"

// Sample is an immutable record of one numeric observation from one signal
// at one instant. Consumers must not interpret Value when Valid is false.
type Sample struct {
	SignalID  string    `json:"signal_id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Valid     bool      `json:"valid"`
}

// InvalidSample returns the sentinel Sample used for signals that have
// never produced a reading, or for a provider that failed this tick.
func InvalidSample(signalID string, ts time.Time) Sample {
	return Sample{SignalID: signalID, Value: 0, Timestamp: ts, Valid: false}
}

// RuleResult is the verdict one Rule produced for one signal.
type RuleResult struct {
	RuleName string
	SignalID string
	Severity Severity
	Message  string
}

// StateTransition is an append-only record of a SystemState change for one
// signal (or, when SignalID is empty, for the aggregate system state).
type StateTransition struct {
	SignalID  string      `json:"signal_id"`
	From      SystemState `json:"from"`
	To        SystemState `json:"to"`
	Reason    string      `json:"reason"`
	Timestamp time.Time   `json:"timestamp"`
}
