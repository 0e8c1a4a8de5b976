package tracker

import (
	"context"
	"time"

	"github.com/clearfeed/mediascope/pkg/diet"
	"github.com/clearfeed/mediascope/pkg/load"
)

// SettingsPatch is a partial settings update. Nil fields are left alone;
// unknown JSON keys are dropped by the decoder. Values outside their
// allowed range are clamped rather than rejected, so a slightly-off
// front end never bricks the configuration.
type SettingsPatch struct {
	EchoBreakerEnabled   *bool    `json:"echoChamberBreakerEnabled"`
	EchoThreshold        *int     `json:"echoChamberThreshold"`
	DecayPerHour         *float64 `json:"loadDecayPerHour"`
	CredibilityThreshold *float64 `json:"credibilityThreshold"`
	GuidanceMode         *string  `json:"guidanceMode"`
	AlertCooldownMinutes *int     `json:"alertCooldownMinutes"`
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// UpdateSettings merges a patch into the stored settings and returns the
// result. Clamps: echo threshold 2-10, decay 1-50 points/hour,
// credibility threshold 3-8, alert cooldown 1-1440 minutes. An
// unrecognized guidance mode is ignored.
func (t *Tracker) UpdateSettings(ctx context.Context, p SettingsPatch) diet.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.state.UserData.Settings
	if p.EchoBreakerEnabled != nil {
		s.EchoBreakerEnabled = *p.EchoBreakerEnabled
	}
	if p.EchoThreshold != nil {
		s.EchoThreshold = clampInt(*p.EchoThreshold, 2, 10)
	}
	if p.DecayPerHour != nil {
		s.DecayPerHour = clampFloat(*p.DecayPerHour, 1, 50)
	}
	if p.CredibilityThreshold != nil {
		s.CredibilityThreshold = clampFloat(*p.CredibilityThreshold, 3, 8)
	}
	if p.GuidanceMode != nil {
		switch m := load.Mode(*p.GuidanceMode); m {
		case load.ModeOff, load.ModeGentle, load.ModeStandard, load.ModeStrong:
			s.GuidanceMode = m
		default:
			t.log.Warnf("ignoring unknown guidance mode %q", *p.GuidanceMode)
		}
	}
	if p.AlertCooldownMinutes != nil {
		s.AlertCooldownMinutes = clampInt(*p.AlertCooldownMinutes, 1, 1440)
		t.alerter.SetCooldown(time.Duration(s.AlertCooldownMinutes) * time.Minute)
	}

	t.persistLocked(ctx)
	return *s
}

// Settings returns the current settings.
func (t *Tracker) Settings() diet.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.UserData.Settings
}

// GoalsPatch is a partial goals update with the same clamp-not-reject
// policy as SettingsPatch.
type GoalsPatch struct {
	DailyMinCenterSources       *int     `json:"dailyMinCenterSources"`
	DailyMinEducationalPercent  *float64 `json:"dailyMinEducationalPercent"`
	DailyMaxNewsPercent         *float64 `json:"dailyMaxNewsPercent"`
	DailyMinUniqueDomains       *int     `json:"dailyMinUniqueDomains"`
	WeeklyMinDomains            *int     `json:"weeklyMinDomains"`
	WeeklyMinEducationalPercent *float64 `json:"weeklyMinEducationalPercent"`
	WeeklyMinPoliticalBalance   *float64 `json:"weeklyMinPoliticalBalance"`
}

// UpdateGoals merges a patch into the stored goals and returns the
// result. Counts clamp to 0-50, percentages to 0-100, the balance score
// to 0-10.
func (t *Tracker) UpdateGoals(ctx context.Context, p GoalsPatch) diet.Goals {
	t.mu.Lock()
	defer t.mu.Unlock()

	g := &t.state.UserData.Goals
	if p.DailyMinCenterSources != nil {
		g.DailyMinCenterSources = clampInt(*p.DailyMinCenterSources, 0, 50)
	}
	if p.DailyMinEducationalPercent != nil {
		g.DailyMinEducationalPercent = clampFloat(*p.DailyMinEducationalPercent, 0, 100)
	}
	if p.DailyMaxNewsPercent != nil {
		g.DailyMaxNewsPercent = clampFloat(*p.DailyMaxNewsPercent, 0, 100)
	}
	if p.DailyMinUniqueDomains != nil {
		g.DailyMinUniqueDomains = clampInt(*p.DailyMinUniqueDomains, 0, 50)
	}
	if p.WeeklyMinDomains != nil {
		g.WeeklyMinDomains = clampInt(*p.WeeklyMinDomains, 0, 50)
	}
	if p.WeeklyMinEducationalPercent != nil {
		g.WeeklyMinEducationalPercent = clampFloat(*p.WeeklyMinEducationalPercent, 0, 100)
	}
	if p.WeeklyMinPoliticalBalance != nil {
		g.WeeklyMinPoliticalBalance = clampFloat(*p.WeeklyMinPoliticalBalance, 0, 10)
	}

	t.persistLocked(ctx)
	return *g
}

// Goals returns the current goal targets.
func (t *Tracker) Goals() diet.Goals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.UserData.Goals
}
