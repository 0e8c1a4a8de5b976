package diet

import (
	"time"

	"github.com/clearfeed/mediascope/pkg/echo"
	"github.com/clearfeed/mediascope/pkg/load"
	"github.com/clearfeed/mediascope/pkg/sources"
)

// Settings is the user configuration carried in the persisted state.
type Settings struct {
	EchoBreakerEnabled   bool      `json:"echoChamberBreakerEnabled"`
	EchoThreshold        int       `json:"echoChamberThreshold"`
	DecayPerHour         float64   `json:"loadDecayPerHour"`
	CredibilityThreshold float64   `json:"credibilityThreshold"`
	GuidanceMode         load.Mode `json:"guidanceMode"`
	AlertCooldownMinutes int       `json:"alertCooldownMinutes"`
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		EchoBreakerEnabled:   true,
		EchoThreshold:        echo.DefaultDebtThreshold,
		DecayPerHour:         load.DefaultDecayPerHour,
		CredibilityThreshold: load.DefaultCredibilityThreshold,
		GuidanceMode:         load.ModeStandard,
		AlertCooldownMinutes: 30,
	}
}

// Goals is the user's daily and weekly targets.
type Goals struct {
	DailyMinCenterSources       int     `json:"dailyMinCenterSources"`
	DailyMinEducationalPercent  float64 `json:"dailyMinEducationalPercent"`
	DailyMaxNewsPercent         float64 `json:"dailyMaxNewsPercent"`
	DailyMinUniqueDomains       int     `json:"dailyMinUniqueDomains"`
	WeeklyMinDomains            int     `json:"weeklyMinDomains"`
	WeeklyMinEducationalPercent float64 `json:"weeklyMinEducationalPercent"`
	WeeklyMinPoliticalBalance   float64 `json:"weeklyMinPoliticalBalance"`
}

// DefaultGoals returns the default targets.
func DefaultGoals() Goals {
	return Goals{
		DailyMinCenterSources:       1,
		DailyMinEducationalPercent:  20,
		DailyMaxNewsPercent:         50,
		DailyMinUniqueDomains:       3,
		WeeklyMinDomains:            8,
		WeeklyMinEducationalPercent: 20,
		WeeklyMinPoliticalBalance:   6,
	}
}

// GoalCheck is one goal's outcome plus the measured value behind it.
type GoalCheck struct {
	Met    bool    `json:"met"`
	Actual float64 `json:"actual"`
	Target float64 `json:"target"`
}

// DailyGoalResult is the outcome of CheckDailyGoals.
type DailyGoalResult struct {
	AllMet     bool                 `json:"allMet"`
	VisitCount int                  `json:"visitCount"`
	Results    map[string]GoalCheck `json:"results"`
}

// WeeklyGoalResult is the outcome of CheckWeeklyGoals.
type WeeklyGoalResult struct {
	AllMet  bool                 `json:"allMet"`
	Results map[string]GoalCheck `json:"results"`
}

// CheckDailyGoals evaluates today's goals over the current week bucket,
// filtered to the local midnight-to-midnight window around now.
func CheckDailyGoals(b *WeekBucket, now time.Time, goals Goals) DailyGoalResult {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var today []*Visit
	if b != nil {
		for _, v := range b.Visits {
			ts := time.UnixMilli(v.Timestamp).In(now.Location())
			if !ts.Before(dayStart) && ts.Before(dayEnd) {
				today = append(today, v)
			}
		}
	}

	total := len(today)
	var center, educational, news int
	domains := NewStringSet()
	for _, v := range today {
		if echo.SimplifyForDebtClearing(v.PoliticalBias) == echo.SimpleCenter {
			center++
		}
		switch v.Category {
		case sources.CategoryEducational:
			educational++
		case sources.CategoryNews:
			news++
		}
		domains.Add(v.Domain)
	}

	eduPct := 0.0
	newsPct := 0.0
	if total > 0 {
		eduPct = float64(educational) / float64(total) * 100
		newsPct = float64(news) / float64(total) * 100
	}

	res := DailyGoalResult{
		VisitCount: total,
		Results: map[string]GoalCheck{
			"centerSourcesRead":  {Met: center >= goals.DailyMinCenterSources, Actual: float64(center), Target: float64(goals.DailyMinCenterSources)},
			"educationalPercent": {Met: eduPct >= goals.DailyMinEducationalPercent, Actual: eduPct, Target: goals.DailyMinEducationalPercent},
			"newsPercent":        {Met: newsPct <= goals.DailyMaxNewsPercent, Actual: newsPct, Target: goals.DailyMaxNewsPercent},
			"uniqueDomains":      {Met: domains.Len() >= goals.DailyMinUniqueDomains, Actual: float64(domains.Len()), Target: float64(goals.DailyMinUniqueDomains)},
		},
	}
	res.AllMet = true
	for _, r := range res.Results {
		if !r.Met {
			res.AllMet = false
			break
		}
	}
	return res
}

// CheckWeeklyGoals evaluates the whole current week bucket.
func CheckWeeklyGoals(b *WeekBucket, goals Goals) WeeklyGoalResult {
	var domainCount, total, educational int
	var balance float64
	if b != nil {
		domainCount = b.Domains.Len()
		total = len(b.Visits)
		educational = b.Categories[sources.CategoryEducational]
		balance = b.Scores.PoliticalBalance
	}
	eduPct := 0.0
	if total > 0 {
		eduPct = float64(educational) / float64(total) * 100
	}

	res := WeeklyGoalResult{
		Results: map[string]GoalCheck{
			"domainCount":        {Met: domainCount >= goals.WeeklyMinDomains, Actual: float64(domainCount), Target: float64(goals.WeeklyMinDomains)},
			"educationalPercent": {Met: eduPct >= goals.WeeklyMinEducationalPercent, Actual: eduPct, Target: goals.WeeklyMinEducationalPercent},
			"politicalBalance":   {Met: balance >= goals.WeeklyMinPoliticalBalance, Actual: balance, Target: goals.WeeklyMinPoliticalBalance},
		},
	}
	res.AllMet = true
	for _, r := range res.Results {
		if !r.Met {
			res.AllMet = false
			break
		}
	}
	return res
}
