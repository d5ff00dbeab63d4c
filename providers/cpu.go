package providers

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ftahirops/kestrel/model"
)

// CPUProvider samples /proc/stat and reports cpu_load as the fraction of
// CPU ticks spent non-idle since the previous read (§6: normalized
// 1 − idle/total). It is grounded in the teacher's collector/cpu.go
// collectStat, which parses the same "cpu " aggregate line.
type CPUProvider struct {
	mu                sync.Mutex
	havePrev          bool
	prevIdle, prevTot uint64
}

// NewCPUProvider returns a ready-to-use cpu_load provider.
func NewCPUProvider() *CPUProvider {
	return &CPUProvider{}
}

func (p *CPUProvider) ID() string { return "cpu_load" }

// Read implements scheduler.Provider. The first call has no prior tick
// counts to delta against, so it reports the cumulative non-idle
// fraction since boot; every subsequent call reports the fraction over
// the interval since the last read.
func (p *CPUProvider) Read() model.Sample {
	now := time.Now()
	idle, total, err := readCPUTicks()
	if err != nil {
		return model.InvalidSample("cpu_load", now)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.havePrev {
		p.prevIdle, p.prevTot = idle, total
		p.havePrev = true
		if total == 0 {
			return model.Sample{SignalID: "cpu_load", Value: 0, Timestamp: now, Valid: true}
		}
		return model.Sample{SignalID: "cpu_load", Value: clamp01(1 - float64(idle)/float64(total)), Timestamp: now, Valid: true}
	}

	dIdle, dTotal := idle-p.prevIdle, total-p.prevTot
	p.prevIdle, p.prevTot = idle, total
	if total < p.prevTot || dTotal == 0 {
		return model.Sample{SignalID: "cpu_load", Value: 0, Timestamp: now, Valid: true}
	}
	return model.Sample{SignalID: "cpu_load", Value: clamp01(1 - float64(dIdle)/float64(dTotal)), Timestamp: now, Valid: true}
}

// readCPUTicks returns the idle and total tick counts from the aggregate
// "cpu " line of /proc/stat. idle includes iowait, matching the usual
// accounting for "not doing work".
func readCPUTicks() (idle, total uint64, err error) {
	lines, err := readFileLines(procStatPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read /proc/stat: %w", err)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		fields := strings.Fields(line)[1:]
		var vals [10]uint64
		for i := 0; i < len(fields) && i < len(vals); i++ {
			vals[i] = parseUint64Field(fields[i])
		}
		idle = vals[3] + vals[4] // idle + iowait
		for _, v := range vals {
			total += v
		}
		return idle, total, nil
	}
	return 0, 0, fmt.Errorf("no aggregate cpu line in /proc/stat")
}
