// Package supervisor implements the thin orchestrator loop described in
// §4.8: advance the fault schedule, poll signals, apply the fault stage,
// log, process, drain new transitions, sleep. It is grounded in the
// teacher's own headless loop (cmd/monitor/main.go and engine/daemon.go's
// RunDaemon): a time.Ticker paired with signal.Notify for SIGINT/SIGTERM,
// driving one collect-and-analyze cycle per tick.
package supervisor

import (
	"sync/atomic"
	"time"

	"github.com/ftahirops/kestrel/engine"
	"github.com/ftahirops/kestrel/eventsink"
	"github.com/ftahirops/kestrel/fault"
	"github.com/ftahirops/kestrel/logging"
	"github.com/ftahirops/kestrel/model"
	"github.com/ftahirops/kestrel/scheduler"
)

// Config wires the components the Supervisor drives.
type Config struct {
	Scheduler    *scheduler.Scheduler
	FaultStage   *fault.Stage
	Engine       *engine.Engine
	Sink         *eventsink.Sink
	FaultConfigs []model.FaultConfig
	TickInterval time.Duration // §4.8 step 8, spec default 500ms
	Logger       logging.Logger

	// now and started support deterministic tests; both default to
	// time.Now at construction if left zero.
	now     func() time.Time
	started time.Time
}

// Supervisor runs the tick loop. It owns the FaultConfig list and the
// Engine (§3 Ownership); no other component holds the process-wide
// shutdown flag.
type Supervisor struct {
	cfg      Config
	shutdown int32 // atomic bool, consulted at the top of each iteration (§9)
}

// New builds a Supervisor from cfg. Fields left zero take sensible
// defaults: TickInterval 500ms, now time.Now.
func New(cfg Config) *Supervisor {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 500 * time.Millisecond
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	if cfg.started.IsZero() {
		cfg.started = cfg.now()
	}
	return &Supervisor{cfg: cfg}
}

// Stop requests shutdown; the loop exits at the top of its next iteration
// and emits a final aggregate-state line (§4.8).
func (s *Supervisor) Stop() {
	atomic.StoreInt32(&s.shutdown, 1)
}

func (s *Supervisor) stopped() bool {
	return atomic.LoadInt32(&s.shutdown) != 0
}

// Run executes the tick loop until Stop is called (typically from a
// process-termination signal handler). It never returns an error: startup
// errors are the caller's responsibility to check before calling Run (§7).
func (s *Supervisor) Run() {
	for !s.stopped() {
		s.Tick()
		time.Sleep(s.cfg.TickInterval)
	}
	s.emitFinalState()
}

// Tick performs one full supervisor cycle (§4.8 steps 1-7): advance the
// fault schedule, poll signals, apply the fault stage, emit reading
// events, run the engine, and drain+emit new transitions and rule
// violations. Exported so tests and single-step callers can drive the
// loop deterministically without sleeping.
func (s *Supervisor) Tick() {
	now := s.cfg.now()
	elapsed := now.Sub(s.cfg.started).Seconds()

	s.advanceFaults(now, elapsed)

	raw := s.cfg.Scheduler.Poll()

	samples := make([]model.Sample, len(raw))
	for i, r := range raw {
		samples[i] = s.cfg.FaultStage.Apply(r)
	}

	for _, sample := range samples {
		s.cfg.Sink.Reading(sample)
	}

	s.cfg.Engine.Process(samples)

	for _, t := range s.cfg.Engine.DrainTransitions() {
		s.cfg.Sink.Transition(t)
	}
	for _, v := range s.cfg.Engine.DrainViolations() {
		s.cfg.Sink.RuleViolation(now, v)
	}
}

// advanceFaults implements §4.8 step 2: trigger any FaultConfig whose
// delay has elapsed, and clear any triggered, not yet cleared fault with a
// positive duration once that duration has elapsed.
func (s *Supervisor) advanceFaults(now time.Time, elapsedS float64) {
	for i := range s.cfg.FaultConfigs {
		fc := &s.cfg.FaultConfigs[i]

		if !fc.Triggered && elapsedS >= fc.TriggerAfterS {
			s.cfg.FaultStage.Inject(fc.SignalID, fc.Kind, fc.Parameters())
			fc.Triggered = true
			fc.InjectedAtS = elapsedS
			s.cfg.Sink.Fault(now, fc.SignalID, fc.Kind, fc.Value)
			s.cfg.Logger.Info().Str("signal", fc.SignalID).Str("kind", string(fc.Kind)).Msg("fault injected")
		}

		if fc.Triggered && !fc.Cleared && fc.DurationS > 0 && elapsedS >= fc.InjectedAtS+fc.DurationS {
			s.cfg.FaultStage.Clear(fc.SignalID)
			fc.Cleared = true
			s.cfg.Logger.Info().Str("signal", fc.SignalID).Msg("fault auto-cleared")
		}
	}
}

// emitFinalState writes a final aggregate-state transition line on clean
// shutdown (§4.8). It reuses the transition event shape with an empty
// SignalID, distinguishing it from per-signal transitions.
func (s *Supervisor) emitFinalState() {
	s.cfg.Sink.Transition(model.StateTransition{
		SignalID:  "",
		From:      s.cfg.Engine.AggregateState(),
		To:        s.cfg.Engine.AggregateState(),
		Reason:    "shutdown",
		Timestamp: s.cfg.now(),
	})
}
