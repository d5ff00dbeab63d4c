// Command kestrel runs the host-health monitoring supervisor loop. It
// follows the teacher's headless-monitor shape (cmd/monitor/main.go): a
// flag-configured ticker loop with signal.Notify driving clean shutdown.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ftahirops/kestrel/engine"
	"github.com/ftahirops/kestrel/eventsink"
	"github.com/ftahirops/kestrel/fault"
	"github.com/ftahirops/kestrel/logging"
	"github.com/ftahirops/kestrel/model"
	"github.com/ftahirops/kestrel/providers"
	"github.com/ftahirops/kestrel/rules"
	"github.com/ftahirops/kestrel/scheduler"
	"github.com/ftahirops/kestrel/supervisor"
)

func main() {
	faultProfile := flag.String("fault", "", "path to a fault profile JSON document")
	logPath := flag.String("log", "kestrel.jsonl", "path to the append-only event log (use /dev/null to disable)")
	threshold := flag.Float64("threshold", 0.95, "upper threshold for cpu_load/memory/storage, lower threshold for battery")
	interval := flag.Duration("interval", 500*time.Millisecond, "supervisor tick interval")
	capacity := flag.Int("capacity", 64, "per-signal measurement window capacity")
	flag.Parse()

	if *threshold <= 0 || *threshold >= 1 {
		fmt.Fprintln(os.Stderr, "kestrel: --threshold must be in (0, 1)")
		os.Exit(1)
	}

	log := logging.New(logging.Config{})

	eng, err := engine.New(*capacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kestrel: %v\n", err)
		os.Exit(1)
	}
	registerStandardRules(eng, *threshold)

	sch := scheduler.New()
	sch.Register(providers.NewCPUProvider(), *interval)
	sch.Register(providers.NewMemoryProvider(), *interval)
	sch.Register(providers.NewBatteryProvider(), *interval)
	sch.Register(providers.NewStorageProvider(), *interval)

	sink, err := eventsink.New(*logPath, eventsink.WithDiagnosticLogger(log.Logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "kestrel: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	var faultConfigs []model.FaultConfig
	if *faultProfile != "" {
		faultConfigs, err = fault.LoadProfile(*faultProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kestrel: %v\n", err)
			os.Exit(1)
		}
	}

	sv := supervisor.New(supervisor.Config{
		Scheduler:    sch,
		FaultStage:   fault.New(),
		Engine:       eng,
		Sink:         sink,
		FaultConfigs: faultConfigs,
		TickInterval: *interval,
		Logger:       log,
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("shutdown requested")
		sv.Stop()
	}()

	log.Info().Str("run_id", log.RunID.String()).Msg("kestrel starting")
	sv.Run()
}

// registerStandardRules wires the fixed rule set named in §6: per-signal
// thresholds, plausibility bounds, rate-of-change, and staleness.
func registerStandardRules(eng *engine.Engine, threshold float64) {
	eng.AddRule(rules.NewMappedThresholdRule("bounds", map[string]rules.Bounds{
		"cpu_load": {Min: 0, Max: threshold, BreachSeverity: model.Failed},
		"memory":   {Min: 0, Max: threshold, BreachSeverity: model.Failed},
		"storage":  {Min: 0, Max: threshold, BreachSeverity: model.Failed},
		"battery":  {Min: 1 - threshold, Max: 1.0, BreachSeverity: model.Failed},
	}))
	eng.AddRule(rules.NewImplausibleValueRule("plausibility", -1.0, 200.0))
	eng.AddRule(rules.NewRateOfChangeRule("rate_of_change", 0.5))
	eng.AddRule(rules.NewMissingDataRule("staleness", 5*time.Second, 15*time.Second))
}
