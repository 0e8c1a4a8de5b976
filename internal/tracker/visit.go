package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/clearfeed/mediascope/pkg/classifier"
	"github.com/clearfeed/mediascope/pkg/diet"
	"github.com/clearfeed/mediascope/pkg/echo"
	"github.com/clearfeed/mediascope/pkg/history"
	"github.com/clearfeed/mediascope/pkg/load"
)

// PageInfo is the navigation-event input: what the front end knows about
// the page the user just landed on.
type PageInfo struct {
	Domain  string  `json:"domain"`
	Path    string  `json:"path"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Minutes float64 `json:"minutes"` // initial active time, usually 0
}

// VisitResult is everything the intervention layer needs after one visit.
type VisitResult struct {
	Recorded bool            `json:"recorded"`
	Visit    *diet.Visit     `json:"visit,omitempty"`
	WeekKey  string          `json:"weekKey,omitempty"`
	Scores   diet.Scores     `json:"scores"`
	Echo     echo.Status     `json:"echo"`
	InDebt   bool            `json:"inDebt"`
	DebtBias echo.SimpleBias `json:"debtBias,omitempty"`
	Load     float64         `json:"load"`
	Level    load.Level      `json:"level"`
	Alert    bool            `json:"alert"`
}

// RecordVisit runs the full pipeline for one navigation event: classify,
// aggregate, echo-chamber bookkeeping, credibility load, goals and
// streaks, then persist.
func (t *Tracker) RecordVisit(ctx context.Context, p PageInfo) (VisitResult, error) {
	if p.Domain == "" {
		return VisitResult{}, fmt.Errorf("tracker: visit without a domain")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.IsTracking {
		return VisitResult{Recorded: false}, nil
	}

	now := t.clock()
	res := classifier.Classify(p.Domain, p.Path, p.Title, p.Content)
	visit := &diet.Visit{
		Domain:           p.Domain,
		Path:             p.Path,
		Title:            p.Title,
		Timestamp:        now.UnixMilli(),
		Duration:         p.Minutes,
		Category:         res.Category,
		Credibility:      res.Credibility,
		CredibilityKnown: res.Credibility != nil,
		PoliticalBias:    res.Bias,
		Tone:             res.Tone,
		SourceName:       res.SourceName,
	}

	weekKey, bucket := t.currentBucketLocked(now, true)
	bucket.Append(visit)
	bucket.Scores = diet.ComputeScores(bucket)
	t.state.UserData.Scores = bucket.Scores

	settings := t.state.UserData.Settings
	st := t.history.Record(res.Bias)
	alert := t.alerter.ShouldAlert(st)
	t.debt.Observe(res.Bias, st, settings.EchoBreakerEnabled, settings.EchoThreshold)

	loadNow := t.meter.Observe(res.Credibility, settings.CredibilityThreshold, settings.DecayPerHour)
	level := load.LevelFor(loadNow, settings.GuidanceMode)

	t.updateGoalsLocked(bucket, now)
	t.persistLocked(ctx)

	t.log.WithFields(map[string]interface{}{
		"domain":   p.Domain,
		"category": visit.Category,
		"bias":     visit.PoliticalBias,
		"load":     loadNow,
		"level":    level,
	}).Debug("visit recorded")

	return VisitResult{
		Recorded: true,
		Visit:    visit,
		WeekKey:  weekKey,
		Scores:   bucket.Scores,
		Echo:     st,
		InDebt:   t.debt.InDebt,
		DebtBias: t.debt.CausingBias,
		Load:     loadNow,
		Level:    level,
		Alert:    alert,
	}, nil
}

// AddActiveTime folds extra active-tab minutes into the most recent visit
// for the domain in the current week.
func (t *Tracker) AddActiveTime(ctx context.Context, domain string, minutes float64) bool {
	if minutes <= 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	_, bucket := t.currentBucketLocked(t.clock(), false)
	if bucket == nil {
		return false
	}
	for i := len(bucket.Visits) - 1; i >= 0; i-- {
		if bucket.Visits[i].Domain == domain {
			bucket.AddDuration(bucket.Visits[i], minutes)
			bucket.Scores = diet.ComputeScores(bucket)
			t.state.UserData.Scores = bucket.Scores
			t.persistLocked(ctx)
			return true
		}
	}
	return false
}

// updateGoalsLocked re-evaluates today's and this week's goals and rolls
// the streaks.
func (t *Tracker) updateGoalsLocked(bucket *diet.WeekBucket, now time.Time) {
	goals := t.state.UserData.Goals
	daily := diet.CheckDailyGoals(bucket, now, goals)
	weekly := diet.CheckWeeklyGoals(bucket, goals)

	t.state.UserData.Streaks.UpdateDaily(daily.AllMet, daily.VisitCount, now)
	t.state.UserData.Streaks.UpdateWeekly(weekly.AllMet, now)
	t.state.UserData.DailyProgress = diet.DailyProgress{
		Date:       diet.DayKeyOf(now),
		GoalsMet:   daily.AllMet,
		VisitCount: daily.VisitCount,
	}
}

// ImportResult reports a bulk history import.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Weeks   int `json:"weeks"`
}

// ImportEntries bulk-ingests browser history through the classifier and
// the weekly aggregate engine. Imports deliberately bypass the echo and
// load state machines: historical reading is not "recent browsing".
// Duplicates are skipped on (domain, timestamp).
func (t *Tracker) ImportEntries(ctx context.Context, entries []history.Entry) ImportResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]bool)
	for _, b := range t.state.UserData.WeeklyData {
		for _, v := range b.Visits {
			seen[dedupKey(v.Domain, v.Timestamp)] = true
		}
	}

	var res ImportResult
	touched := make(map[string]*diet.WeekBucket)
	for _, e := range entries {
		ts := e.VisitedAt.In(t.clock().Location())
		key := dedupKey(e.Domain, ts.UnixMilli())
		if seen[key] {
			res.Skipped++
			continue
		}
		seen[key] = true

		c := classifier.Classify(e.Domain, e.Path, e.Title, "")
		visit := &diet.Visit{
			Domain:           e.Domain,
			Path:             e.Path,
			Title:            e.Title,
			Timestamp:        ts.UnixMilli(),
			Category:         c.Category,
			Credibility:      c.Credibility,
			CredibilityKnown: c.Credibility != nil,
			PoliticalBias:    c.Bias,
			Tone:             c.Tone,
			SourceName:       c.SourceName,
		}

		weekKey := diet.WeekKeyOf(ts)
		bucket := t.state.UserData.WeeklyData[weekKey]
		if bucket == nil {
			bucket = diet.NewWeekBucket()
			t.state.UserData.WeeklyData[weekKey] = bucket
		}
		bucket.Append(visit)
		touched[weekKey] = bucket
		res.Added++
	}

	// Rescore affected weeks once, after the whole batch.
	for key, bucket := range touched {
		bucket.Scores = diet.ComputeScores(bucket)
		if key == diet.WeekKeyOf(t.clock()) {
			t.state.UserData.Scores = bucket.Scores
		}
	}
	res.Weeks = len(touched)

	t.persistLocked(ctx)
	t.log.Infof("imported %d visit(s), skipped %d duplicate(s), %d week(s) rescored", res.Added, res.Skipped, res.Weeks)
	return res
}

func dedupKey(domain string, ts int64) string {
	return fmt.Sprintf("%s@%d", domain, ts)
}
