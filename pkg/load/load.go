// Package load implements the credibility-load model: a 0-100 scalar that
// accumulates while the user reads low-credibility sources, recovers on
// high-credibility reading, and decays with wall-clock time. The load maps
// to a tiered intervention level through the guidance mode.
package load

import "time"

// Tuning constants for the visit-driven load delta.
const (
	MaxLoad = 100.0

	baseIncrease         = 8.0  // flat cost of any below-threshold visit
	deficitFactor        = 8.0  // per-point cost below the threshold
	veryLowPenalty       = 8.0  // extra cost when credibility < veryLowCutoff
	veryLowCutoff        = 3.0
	strongRecovery       = 22.0 // credibility >= strongRecoveryCutoff
	mildRecovery         = 8.0  // credibility in [mildRecoveryCutoff, strongRecoveryCutoff)
	strongRecoveryCutoff = 8.0
	mildRecoveryCutoff   = 7.0
)

// DefaultDecayPerHour is how many load points drain per hour of elapsed
// wall-clock time.
const DefaultDecayPerHour = 10.0

// DefaultCredibilityThreshold is the credibility below which a visit adds
// load.
const DefaultCredibilityThreshold = 6.0

// Mode controls how aggressively load maps to intervention levels.
type Mode string

const (
	ModeOff      Mode = "off"
	ModeGentle   Mode = "gentle"
	ModeStandard Mode = "standard"
	ModeStrong   Mode = "strong"
)

// Level is the intervention tier derived from the current load.
type Level string

const (
	LevelNormal   Level = "normal"
	LevelElevated Level = "elevated"
	LevelHigh     Level = "high"
)

// modeThresholds maps each guidance mode to its (elevated, high) cutoffs.
var modeThresholds = map[Mode][2]float64{
	ModeGentle:   {60, 85},
	ModeStandard: {45, 75},
	ModeStrong:   {30, 60},
}

// Decay drains load for the wall-clock time between last and now, floored
// at zero. Elapsed time is computed from timestamps, not a running
// counter, so a suspended process decays correctly on resume.
func Decay(load float64, last, now time.Time, perHour float64) float64 {
	if now.Before(last) || perHour <= 0 {
		return load
	}
	load -= now.Sub(last).Hours() * perHour
	if load < 0 {
		return 0
	}
	return load
}

// ApplyVisit folds one visit's credibility into the load. A nil
// credibility (unknown source) never moves the load. Order of checks
// matters: the threshold comparison runs first so a raised threshold
// turns mid-range credibility into an increase rather than a no-op.
func ApplyVisit(load float64, credibility *float64, threshold float64) float64 {
	if credibility == nil {
		return load
	}
	c := *credibility
	switch {
	case c < threshold:
		delta := baseIncrease + (threshold-c)*deficitFactor
		if c < veryLowCutoff {
			delta += veryLowPenalty
		}
		load += delta
		if load > MaxLoad {
			load = MaxLoad
		}
	case c >= strongRecoveryCutoff:
		load -= strongRecovery
	case c >= mildRecoveryCutoff:
		load -= mildRecovery
	}
	if load < 0 {
		return 0
	}
	return load
}

// LevelFor maps a load value to an intervention level under the given
// mode. Off always yields normal.
func LevelFor(load float64, mode Mode) Level {
	th, ok := modeThresholds[mode]
	if !ok {
		return LevelNormal
	}
	switch {
	case load >= th[1]:
		return LevelHigh
	case load >= th[0]:
		return LevelElevated
	default:
		return LevelNormal
	}
}

// Meter is the stateful wrapper: current load plus the timestamp of the
// last update. Each visit decays to now first, then applies the visit
// delta.
type Meter struct {
	Load        float64   `json:"load"`
	LastUpdated time.Time `json:"lastUpdated"`

	clock func() time.Time
}

// NewMeter returns a zero meter. A nil clock means time.Now.
func NewMeter(clock func() time.Time) *Meter {
	if clock == nil {
		clock = time.Now
	}
	return &Meter{LastUpdated: clock(), clock: clock}
}

// Observe decays the load to now and folds in one visit.
func (m *Meter) Observe(credibility *float64, threshold, decayPerHour float64) float64 {
	now := m.clock()
	m.Load = Decay(m.Load, m.LastUpdated, now, decayPerHour)
	m.Load = ApplyVisit(m.Load, credibility, threshold)
	m.LastUpdated = now
	return m.Load
}

// Current returns the load after a lazy decay to now, without recording a
// visit.
func (m *Meter) Current(decayPerHour float64) float64 {
	now := m.clock()
	m.Load = Decay(m.Load, m.LastUpdated, now, decayPerHour)
	m.LastUpdated = now
	return m.Load
}

// Restore rehydrates meter state from a persisted snapshot.
func (m *Meter) Restore(load float64, lastUpdated time.Time) {
	if load < 0 {
		load = 0
	}
	if load > MaxLoad {
		load = MaxLoad
	}
	m.Load = load
	if !lastUpdated.IsZero() {
		m.LastUpdated = lastUpdated
	}
}

// Reset zeroes the meter.
func (m *Meter) Reset() {
	m.Load = 0
	m.LastUpdated = m.clock()
}
