package providers

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ftahirops/kestrel/model"
)

// powerSupplyRoot is overridden in tests to point at a fixture directory
// instead of the real /sys hierarchy.
var powerSupplyRoot = "/sys/class/power_supply"

// BatteryProvider samples the first battery device under
// /sys/class/power_supply and reports battery as the remaining charge
// fraction [0, 1] read directly from the device's "capacity" file. The
// teacher has no battery-bearing hardware to collect from; this follows
// its general pattern of treating a sysfs pseudo-file as a key-value
// source (the same shape used for /proc/meminfo and /proc/stat).
type BatteryProvider struct{}

// NewBatteryProvider returns a ready-to-use battery provider.
func NewBatteryProvider() *BatteryProvider { return &BatteryProvider{} }

func (p *BatteryProvider) ID() string { return "battery" }

func (p *BatteryProvider) Read() model.Sample {
	now := time.Now()

	dir, err := firstBatteryDevice(powerSupplyRoot)
	if err != nil {
		return model.InvalidSample("battery", now)
	}

	data, err := os.ReadFile(filepath.Join(dir, "capacity"))
	if err != nil {
		return model.InvalidSample("battery", now)
	}

	pct, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return model.InvalidSample("battery", now)
	}

	return model.Sample{SignalID: "battery", Value: clamp01(float64(pct) / 100.0), Timestamp: now, Valid: true}
}

// firstBatteryDevice returns the first entry under root whose name starts
// with "BAT", the conventional kernel naming for battery power supplies.
func firstBatteryDevice(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "BAT") {
			return filepath.Join(root, e.Name()), nil
		}
	}
	return "", os.ErrNotExist
}
