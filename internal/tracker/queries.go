package tracker

import (
	"context"

	"github.com/clearfeed/mediascope/internal/utils"
	"github.com/clearfeed/mediascope/pkg/diet"
	"github.com/clearfeed/mediascope/pkg/echo"
	"github.com/clearfeed/mediascope/pkg/load"
	"github.com/clearfeed/mediascope/pkg/sources"
)

// WeekData is a week bucket plus its key.
type WeekData struct {
	WeekKey string           `json:"weekKey"`
	Bucket  *diet.WeekBucket `json:"weekData"`
}

// CurrentScores returns the cached scores for the current week.
func (t *Tracker) CurrentScores() diet.Scores {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.UserData.Scores
}

// CurrentWeek returns a deep copy of the current week bucket (empty bucket
// when no visits were recorded yet).
func (t *Tracker) CurrentWeek() WeekData {
	t.mu.Lock()
	defer t.mu.Unlock()
	key, _ := t.currentBucketLocked(t.clock(), false)
	snap := t.snapshotLocked()
	b := snap.UserData.WeeklyData[key]
	if b == nil {
		b = diet.NewWeekBucket()
	}
	return WeekData{WeekKey: key, Bucket: b}
}

// CurrentLoad returns the decayed load and its intervention level.
func (t *Tracker) CurrentLoad() (float64, load.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()
	settings := t.state.UserData.Settings
	l := t.meter.Current(settings.DecayPerHour)
	return l, load.LevelFor(l, settings.GuidanceMode)
}

// WeeklyBiasAnalysis summarizes one week's political lean.
type WeeklyBiasAnalysis struct {
	WeekKey       string          `json:"weekKey"`
	TotalVisits   int             `json:"totalVisits"`
	Decisive      int             `json:"decisiveVisits"`
	LeftPercent   int             `json:"leftPercent"`
	RightPercent  int             `json:"rightPercent"`
	CenterPercent int             `json:"centerPercent"`
	IsEchoChamber bool            `json:"isEchoChamber"`
	DominantBias  echo.SimpleBias `json:"dominantBias,omitempty"`
}

// EchoAnalysis is the combined weekly + realtime echo-chamber picture.
type EchoAnalysis struct {
	Weekly        WeeklyBiasAnalysis  `json:"weekly"`
	Realtime      echo.Status         `json:"realtime"`
	RecentHistory []echo.HistoryEntry `json:"recentHistory"`
}

// AnalyzeEchoChamber computes the weekly analysis for weekKey (current
// week when empty) alongside the realtime window.
func (t *Tracker) AnalyzeEchoChamber(weekKey string) EchoAnalysis {
	t.mu.Lock()
	defer t.mu.Unlock()

	if weekKey == "" {
		weekKey = diet.WeekKeyOf(t.clock())
	}
	analysis := WeeklyBiasAnalysis{WeekKey: weekKey}
	if b := t.state.UserData.WeeklyData[weekKey]; b != nil {
		analysis.TotalVisits = len(b.Visits)
		var left, right, center int
		for _, v := range b.Visits {
			switch echo.SimplifyForTracker(v.PoliticalBias) {
			case echo.SimpleLeft:
				left++
			case echo.SimpleRight:
				right++
			case echo.SimpleCenter:
				center++
			}
		}
		decisive := left + right + center
		analysis.Decisive = decisive
		analysis.LeftPercent = utils.Percent(left, decisive)
		analysis.RightPercent = utils.Percent(right, decisive)
		analysis.CenterPercent = utils.Percent(center, decisive)
		if decisive >= 5 {
			if float64(left)/float64(decisive) >= 0.7 {
				analysis.IsEchoChamber = true
				analysis.DominantBias = echo.SimpleLeft
			} else if float64(right)/float64(decisive) >= 0.7 {
				analysis.IsEchoChamber = true
				analysis.DominantBias = echo.SimpleRight
			}
		}
	}

	return EchoAnalysis{
		Weekly:        analysis,
		Realtime:      t.history.Status(),
		RecentHistory: t.history.Entries(),
	}
}

// BreakerStatus is the echo-chamber breaker view for the UI.
type BreakerStatus struct {
	Enabled          bool            `json:"enabled"`
	InDebt           bool            `json:"inDebt"`
	DebtBias         echo.SimpleBias `json:"debtBias,omitempty"`
	DebtTimestamp    int64           `json:"debtTimestamp,omitempty"`
	ConsecutiveCount int             `json:"consecutiveCount"`
	Threshold        int             `json:"threshold"`
	DominantBias     echo.SimpleBias `json:"dominantBias,omitempty"`
	Alternatives     []sources.Info  `json:"alternatives"`
	ClearedByDomain  bool            `json:"clearedByDomain,omitempty"`
}

// BreakerStatusFor reports the breaker state. When domain is given while
// in debt, the visit the user is about to make is evaluated against the
// debt-clearing mapping and clears it proactively, so the interstitial
// disappears before the page even records.
func (t *Tracker) BreakerStatusFor(ctx context.Context, domain string) BreakerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	settings := t.state.UserData.Settings
	st := t.history.Status()

	res := BreakerStatus{
		Enabled:          settings.EchoBreakerEnabled,
		Threshold:        settings.EchoThreshold,
		ConsecutiveCount: st.ConsecutiveCount,
		DominantBias:     st.DominantBias,
	}

	if domain != "" && t.debt.InDebt {
		if info, ok := sources.Lookup(domain); ok && t.debt.WouldClear(info.Bias) {
			t.debt.Clear()
			res.ClearedByDomain = true
			t.persistLocked(ctx)
		}
	}

	res.InDebt = t.debt.InDebt
	res.DebtBias = t.debt.CausingBias
	if t.debt.InDebt {
		res.DebtTimestamp = t.debt.IncurredAt.UnixMilli()
		causing := sources.Bias(t.debt.CausingBias)
		res.Alternatives = sources.Alternatives(causing, "")
	}
	return res
}

// ClearDebt clears the debt on explicit user request.
func (t *Tracker) ClearDebt(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.debt.Clear()
	t.persistLocked(ctx)
}

// Alternatives exposes the reference table's alternative-source picker.
func (t *Tracker) Alternatives(currentBias sources.Bias, category sources.Category) []sources.Info {
	return sources.Alternatives(currentBias, category)
}

// Report builds the weekly report for weekKey (current week when empty).
func (t *Tracker) Report(weekKey string) diet.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if weekKey == "" {
		weekKey = diet.WeekKeyOf(t.clock())
	}
	return diet.BuildReport(weekKey, t.state.UserData.WeeklyData[weekKey])
}

// GoalsProgress is the combined goals/streaks view.
type GoalsProgress struct {
	Daily   diet.DailyGoalResult  `json:"daily"`
	Weekly  diet.WeeklyGoalResult `json:"weekly"`
	Streaks diet.Streaks          `json:"streaks"`
	Goals   diet.Goals            `json:"goals"`
}

// GoalsProgress evaluates the current goals without mutating streaks.
func (t *Tracker) GoalsProgress() GoalsProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock()
	_, bucket := t.currentBucketLocked(now, false)
	goals := t.state.UserData.Goals
	return GoalsProgress{
		Daily:   diet.CheckDailyGoals(bucket, now, goals),
		Weekly:  diet.CheckWeeklyGoals(bucket, goals),
		Streaks: t.state.UserData.Streaks,
		Goals:   goals,
	}
}
