package providers

import (
	"time"

	"github.com/ftahirops/kestrel/model"
)

// MemoryProvider samples /proc/meminfo and reports memory as the used
// fraction 1 − available/total (§6). It is grounded in the teacher's
// collector/memory.go collectMeminfo, trimmed to the two fields the
// normalized signal needs.
type MemoryProvider struct{}

// NewMemoryProvider returns a ready-to-use memory provider.
func NewMemoryProvider() *MemoryProvider { return &MemoryProvider{} }

func (p *MemoryProvider) ID() string { return "memory" }

func (p *MemoryProvider) Read() model.Sample {
	now := time.Now()
	kv, err := parseKeyValueFile(procMeminfoPath)
	if err != nil {
		return model.InvalidSample("memory", now)
	}

	total := parseUint64Field(kv["MemTotal"])
	if total == 0 {
		return model.InvalidSample("memory", now)
	}
	available := parseUint64Field(kv["MemAvailable"])

	used := clamp01(1 - float64(available)/float64(total))
	return model.Sample{SignalID: "memory", Value: used, Timestamp: now, Valid: true}
}
