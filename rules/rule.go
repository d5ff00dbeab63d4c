// Package rules implements the stateless rule predicates described in §4.2.
// Rules are evaluated through dynamic dispatch against the Rule interface,
// mirroring the polymorphic-collector idiom the teacher uses for its own
// pluggable analyzers (collector.Collector in collector/collector.go): a
// small interface, a concrete type per concern, and a slice the caller
// ranges over in registration order.
package rules

import "github.com/ftahirops/kestrel/model"

// Window is the read-only view a Rule needs of a signal's measurement
// history. window.Window satisfies this without rules importing engine.
type Window interface {
	Latest(signalID string) model.Sample
	ReadingsFor(signalID string) []model.Sample
}

// Rule is a stateless predicate over (window, signal id) producing a
// severity verdict and diagnostic message. Implementations must not retain
// mutable state between calls to Evaluate.
type Rule interface {
	Name() string
	Evaluate(w Window, signalID string) model.RuleResult
}
