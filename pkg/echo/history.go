// Package echo tracks recent political-bias exposure and drives the
// echo-chamber breaker: a rolling history window, a realtime status
// computation, and a debt state machine that asks the user to balance a
// sustained one-sided streak.
package echo

import (
	"time"

	"github.com/clearfeed/mediascope/internal/utils"
	"github.com/clearfeed/mediascope/pkg/sources"
)

// SimpleBias is the reduced left/right/center vocabulary used by the
// realtime tracker.
type SimpleBias string

const (
	SimpleLeft    SimpleBias = "left"
	SimpleRight   SimpleBias = "right"
	SimpleCenter  SimpleBias = "center"
	SimpleUnknown SimpleBias = "unknown"
)

// HistoryCapacity bounds the rolling window. Old entries are evicted FIFO.
const HistoryCapacity = 10

// minWindowForStatus is how many entries the window needs before the
// tracker will assert an echo chamber.
const minWindowForStatus = 5

// minWindowForRun is how many entries are needed before the consecutive
// run length is meaningful.
const minWindowForRun = 3

// echoRatio is the share of one side that flags the window as an echo
// chamber.
const echoRatio = 0.7

// SimplifyForTracker maps a raw source bias into the tracker vocabulary.
// left-center and right-center count toward their side here; the
// debt-clearing check uses a different mapping (see
// SimplifyForDebtClearing).
func SimplifyForTracker(raw sources.Bias) SimpleBias {
	switch raw {
	case sources.BiasFarLeft, sources.BiasLeft, sources.BiasLeftCenter, "liberal":
		return SimpleLeft
	case sources.BiasFarRight, sources.BiasRight, sources.BiasRightCenter, "conservative":
		return SimpleRight
	case sources.BiasCenter, sources.BiasCentrist:
		return SimpleCenter
	default:
		return SimpleUnknown
	}
}

// HistoryEntry is one decisive bias signal.
type HistoryEntry struct {
	Bias SimpleBias `json:"bias"`
	At   time.Time  `json:"at"`
}

// History is the bounded rolling window of recent bias signals. It is
// process-lifetime state only: it models *recent* browsing, so it is
// deliberately not persisted across restarts.
type History struct {
	entries []HistoryEntry
	clock   func() time.Time
}

// NewHistory returns an empty history. A nil clock means time.Now.
func NewHistory(clock func() time.Time) *History {
	if clock == nil {
		clock = time.Now
	}
	return &History{clock: clock}
}

// Record normalizes raw and appends it to the window, evicting the oldest
// entry when over capacity. Unknown-mapped values are not appended: the
// history only tracks decisive signals. Returns the status after the
// update.
func (h *History) Record(raw sources.Bias) Status {
	if b := SimplifyForTracker(raw); b != SimpleUnknown {
		h.entries = append(h.entries, HistoryEntry{Bias: b, At: h.clock()})
		if len(h.entries) > HistoryCapacity {
			h.entries = h.entries[len(h.entries)-HistoryCapacity:]
		}
	}
	return h.Status()
}

// Entries returns a copy of the current window, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Reset drops the window, e.g. on a clear-all-data request.
func (h *History) Reset() {
	h.entries = nil
}

// Status is the realtime echo-chamber signal over the current window.
type Status struct {
	IsEchoChamber    bool       `json:"isEchoChamber"`
	DominantBias     SimpleBias `json:"dominantBias,omitempty"`
	ConsecutiveCount int        `json:"consecutiveCount"`
	WindowSize       int        `json:"windowSize"`
	LeftPercent      int        `json:"leftPercent"`
	RightPercent     int        `json:"rightPercent"`
	CenterPercent    int        `json:"centerPercent"`
}

// Status computes the realtime signal. An echo chamber is only asserted
// with at least five entries and one side holding >= 70% of the window;
// the consecutive run length needs at least three entries.
func (h *History) Status() Status {
	n := len(h.entries)
	st := Status{WindowSize: n}
	if n == 0 {
		return st
	}

	var left, right, center int
	for _, e := range h.entries {
		switch e.Bias {
		case SimpleLeft:
			left++
		case SimpleRight:
			right++
		case SimpleCenter:
			center++
		}
	}
	st.LeftPercent = utils.Percent(left, n)
	st.RightPercent = utils.Percent(right, n)
	st.CenterPercent = utils.Percent(center, n)

	if n >= minWindowForRun {
		st.ConsecutiveCount = h.runLength()
	}

	if n >= minWindowForStatus {
		lr := float64(left) / float64(n)
		rr := float64(right) / float64(n)
		if lr >= echoRatio {
			st.IsEchoChamber = true
			st.DominantBias = SimpleLeft
		} else if rr >= echoRatio {
			st.IsEchoChamber = true
			st.DominantBias = SimpleRight
		}
	}
	return st
}

// runLength is the length of the run of identical bias values ending at
// the most recent entry.
func (h *History) runLength() int {
	n := len(h.entries)
	last := h.entries[n-1].Bias
	run := 1
	for i := n - 2; i >= 0; i-- {
		if h.entries[i].Bias != last {
			break
		}
		run++
	}
	return run
}
