package fault

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ftahirops/kestrel/model"
)

// profileDocument mirrors the JSON shape defined in §4.5:
// {"faults": [ {sensor_id, type, value, suppress_cycles, delay_ms,
// trigger_after_s, duration_s}, ... ]}.
type profileDocument struct {
	Faults []profileEntry `json:"faults"`
}

type profileEntry struct {
	SensorID       string  `json:"sensor_id"`
	Type           string  `json:"type"`
	Value          float64 `json:"value"`
	SuppressCycles int     `json:"suppress_cycles"`
	DelayMillis    int     `json:"delay_ms"`
	TriggerAfterS  float64 `json:"trigger_after_s"`
	DurationS      float64 `json:"duration_s"`
}

// LoadProfile parses a fault profile JSON file into a list of FaultConfigs,
// in the style of the teacher's own config.Load (config/config.go): read
// the whole file, unmarshal, and surface a wrapped error rather than
// panicking. Unknown fault kind strings and unreadable files are reported
// as errors (§4.5, §7 Configuration errors).
func LoadProfile(path string) ([]model.FaultConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fault: read profile %s: %w", path, err)
	}
	return ParseProfile(data)
}

// ParseProfile parses a fault profile document from raw JSON bytes.
func ParseProfile(data []byte) ([]model.FaultConfig, error) {
	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fault: parse profile: %w", err)
	}

	configs := make([]model.FaultConfig, 0, len(doc.Faults))
	for i, e := range doc.Faults {
		if e.SensorID == "" {
			return nil, fmt.Errorf("fault: profile entry %d: sensor_id is required", i)
		}
		if e.Type == "" {
			return nil, fmt.Errorf("fault: profile entry %d: type is required", i)
		}
		if !model.ValidFaultKind(e.Type) {
			return nil, fmt.Errorf("fault: profile entry %d: unknown fault kind %q", i, e.Type)
		}
		configs = append(configs, model.FaultConfig{
			SignalID:       e.SensorID,
			Kind:           model.FaultKind(e.Type),
			Value:          e.Value,
			SuppressCycles: e.SuppressCycles,
			DelayMillis:    e.DelayMillis,
			TriggerAfterS:  e.TriggerAfterS,
			DurationS:      e.DurationS,
		})
	}
	return configs, nil
}

// WriteProfile serializes configs back into the §4.5 document shape.
// Runtime flags are never written back (the round-trip property in §8
// compares only declared fields).
func WriteProfile(configs []model.FaultConfig) ([]byte, error) {
	doc := profileDocument{Faults: make([]profileEntry, 0, len(configs))}
	for _, c := range configs {
		doc.Faults = append(doc.Faults, profileEntry{
			SensorID:       c.SignalID,
			Type:           string(c.Kind),
			Value:          c.Value,
			SuppressCycles: c.SuppressCycles,
			DelayMillis:    c.DelayMillis,
			TriggerAfterS:  c.TriggerAfterS,
			DurationS:      c.DurationS,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}
