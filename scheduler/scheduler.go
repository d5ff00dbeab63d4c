// Package scheduler implements the time-driven polling coordinator
// described in §4.6: it invokes each registered signal provider no more
// often than its configured cadence and returns the Samples produced on
// each Poll. It is grounded in the teacher's own headless polling loop
// (cmd/monitor/main.go's time.Ticker-driven tick) but factored so the
// cadence bookkeeping lives here instead of in main, letting the
// supervisor drive ticks without owning per-signal timing itself.
package scheduler

import (
	"time"

	"github.com/ftahirops/kestrel/model"
)

// Provider is the external signal-provider interface consumed by the
// Scheduler (§6). Implementations normalize every value into [0.0, 1.0]
// before returning and set Valid=false when the underlying facility fails.
type Provider interface {
	ID() string
	Read() model.Sample
}

type entry struct {
	provider   Provider
	interval   time.Duration
	lastPolled time.Time // zero value means "never polled"
}

// Scheduler owns the set of registered providers and their cadences. It
// does not sleep itself; the supervisor loop paces calls to Poll (§4.6).
type Scheduler struct {
	entries []*entry
	now     func() time.Time
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Register stores provider with the given polling interval. An interval of
// zero means "fire on every Poll call." The first Poll after Register
// always fires the provider, since its last-polled timestamp starts at
// the zero value ("never").
func (s *Scheduler) Register(provider Provider, interval time.Duration) {
	s.entries = append(s.entries, &entry{provider: provider, interval: interval})
}

// Poll invokes every registered provider whose cadence has elapsed and
// returns the resulting Samples in registration order.
func (s *Scheduler) Poll() []model.Sample {
	now := s.now()
	var out []model.Sample
	for _, e := range s.entries {
		if e.lastPolled.IsZero() || now.Sub(e.lastPolled) >= e.interval {
			out = append(out, e.provider.Read())
			e.lastPolled = now
		}
	}
	return out
}
