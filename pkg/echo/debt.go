package echo

import (
	"time"

	"github.com/clearfeed/mediascope/pkg/sources"
)

// DefaultDebtThreshold is the consecutive same-bias count that incurs debt.
const DefaultDebtThreshold = 5

// SimplifyForDebtClearing maps a raw bias for the debt-clearing check.
// It intentionally diverges from SimplifyForTracker: left-center and
// right-center count as center here, so a leaning-but-moderate source is
// enough to clear debt while still counting toward its side in the
// realtime window. Do not unify the two without a product decision.
func SimplifyForDebtClearing(raw sources.Bias) SimpleBias {
	switch raw {
	case sources.BiasFarLeft, sources.BiasLeft, "liberal":
		return SimpleLeft
	case sources.BiasFarRight, sources.BiasRight, "conservative":
		return SimpleRight
	case sources.BiasCenter, sources.BiasCentrist, sources.BiasLeftCenter, sources.BiasRightCenter:
		return SimpleCenter
	default:
		return SimpleUnknown
	}
}

// Debt is the echo-chamber breaker state: either clear, or in debt to one
// side. At most one debt episode is active at a time, and debt does not
// escalate while held.
type Debt struct {
	InDebt      bool       `json:"inDebt"`
	CausingBias SimpleBias `json:"causingBias,omitempty"`
	IncurredAt  time.Time  `json:"incurredAt,omitempty"`

	clock func() time.Time
}

// NewDebt returns a clear debt state. A nil clock means time.Now.
func NewDebt(clock func() time.Time) *Debt {
	if clock == nil {
		clock = time.Now
	}
	return &Debt{clock: clock}
}

// Observe applies one classified visit to the state machine and reports
// whether a transition happened.
//
// Entry: breaker enabled, run length at or past the threshold, not already
// in debt. The causing side is the window's dominant bias when one is set,
// otherwise the side of the current run.
//
// Exit: the visit's debt-clearing bias is center or the opposite side.
// Same-side visits while in debt are no-ops.
func (d *Debt) Observe(raw sources.Bias, st Status, breakerEnabled bool, threshold int) (changed bool) {
	if d.InDebt {
		switch SimplifyForDebtClearing(raw) {
		case SimpleCenter, opposite(d.CausingBias):
			d.clear()
			return true
		}
		return false
	}

	if !breakerEnabled || threshold <= 0 {
		return false
	}
	if st.ConsecutiveCount < threshold {
		return false
	}
	causing := st.DominantBias
	if causing == "" || causing == SimpleUnknown {
		causing = SimplifyForTracker(raw)
	}
	if causing != SimpleLeft && causing != SimpleRight {
		// A center streak is not an echo chamber; nothing to break.
		return false
	}
	d.InDebt = true
	d.CausingBias = causing
	d.IncurredAt = d.clock()
	return true
}

// WouldClear reports whether a visit with the given bias would clear the
// current debt. False when not in debt.
func (d *Debt) WouldClear(raw sources.Bias) bool {
	if !d.InDebt {
		return false
	}
	switch SimplifyForDebtClearing(raw) {
	case SimpleCenter, opposite(d.CausingBias):
		return true
	}
	return false
}

// Clear forces the state back to clear, e.g. on an explicit user request.
func (d *Debt) Clear() {
	d.clear()
}

func (d *Debt) clear() {
	d.InDebt = false
	d.CausingBias = ""
	d.IncurredAt = time.Time{}
}

func opposite(b SimpleBias) SimpleBias {
	switch b {
	case SimpleLeft:
		return SimpleRight
	case SimpleRight:
		return SimpleLeft
	}
	return SimpleUnknown
}
