package echo

import "time"

// DefaultAlertCooldown spaces out echo-chamber notifications.
const DefaultAlertCooldown = 30 * time.Minute

// Alerter decides when to surface an echo-chamber notification. This is a
// legacy path independent of the debt state machine: both can be active
// for the same streak.
type Alerter struct {
	cooldown time.Duration
	lastAt   time.Time
	clock    func() time.Time
}

// NewAlerter returns an alerter with the given cooldown (zero means the
// default). A nil clock means time.Now.
func NewAlerter(cooldown time.Duration, clock func() time.Time) *Alerter {
	if cooldown <= 0 {
		cooldown = DefaultAlertCooldown
	}
	if clock == nil {
		clock = time.Now
	}
	return &Alerter{cooldown: cooldown, clock: clock}
}

// ShouldAlert reports whether a notification should fire for the given
// status, honoring the cooldown. Firing consumes the cooldown.
func (a *Alerter) ShouldAlert(st Status) bool {
	if !st.IsEchoChamber && st.ConsecutiveCount < DefaultDebtThreshold {
		return false
	}
	now := a.clock()
	if !a.lastAt.IsZero() && now.Sub(a.lastAt) < a.cooldown {
		return false
	}
	a.lastAt = now
	return true
}

// SetCooldown changes the cooldown for future alerts (zero or negative
// restores the default).
func (a *Alerter) SetCooldown(d time.Duration) {
	if d <= 0 {
		d = DefaultAlertCooldown
	}
	a.cooldown = d
}

// Reset forgets the last alert time.
func (a *Alerter) Reset() {
	a.lastAt = time.Time{}
}
