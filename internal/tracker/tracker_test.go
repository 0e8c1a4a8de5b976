package tracker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/clearfeed/mediascope/pkg/diet"
	"github.com/clearfeed/mediascope/pkg/echo"
	"github.com/clearfeed/mediascope/pkg/history"
	"github.com/clearfeed/mediascope/pkg/load"
	"github.com/clearfeed/mediascope/pkg/storage"
)

type testClock struct{ now time.Time }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTracker(t *testing.T, withStore bool) (*Tracker, *testClock) {
	t.Helper()
	clk := newTestClock()
	opts := Options{Clock: clk.Now}
	if withStore {
		s, err := storage.Open(filepath.Join(t.TempDir(), "state.sqlite"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { s.Close() })
		opts.Store = s
	}
	return New(opts), clk
}

func TestRecordVisitPipeline(t *testing.T) {
	tr, _ := newTestTracker(t, false)
	ctx := context.Background()

	res, err := tr.RecordVisit(ctx, PageInfo{Domain: "foxnews.com", Path: "/politics", Title: "Some story"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Recorded {
		t.Fatal("visit not recorded")
	}
	if res.Visit.Category != "news" {
		t.Fatalf("category = %q", res.Visit.Category)
	}
	if res.Visit.PoliticalBias != "right" {
		t.Fatalf("bias = %q", res.Visit.PoliticalBias)
	}
	// Credibility 5.2 is below the default threshold 6.0, so load rises.
	if res.Load <= 0 {
		t.Fatalf("load = %v, want > 0", res.Load)
	}
	if res.Scores.OverallHealth <= 0 {
		t.Fatalf("overall health = %v", res.Scores.OverallHealth)
	}
	if res.WeekKey != "2026-03-01" {
		t.Fatalf("week key = %q", res.WeekKey)
	}

	week := tr.CurrentWeek()
	if len(week.Bucket.Visits) != 1 {
		t.Fatalf("bucket has %d visits", len(week.Bucket.Visits))
	}
}

func TestRecordVisitWhenPaused(t *testing.T) {
	tr, _ := newTestTracker(t, false)
	ctx := context.Background()

	if got := tr.ToggleTracking(ctx); got {
		t.Fatal("toggle did not pause")
	}
	res, err := tr.RecordVisit(ctx, PageInfo{Domain: "reuters.com"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Recorded {
		t.Fatal("visit recorded while paused")
	}
	if len(tr.CurrentWeek().Bucket.Visits) != 0 {
		t.Fatal("bucket not empty")
	}
}

func TestRecordVisitRequiresDomain(t *testing.T) {
	tr, _ := newTestTracker(t, false)
	if _, err := tr.RecordVisit(context.Background(), PageInfo{}); err == nil {
		t.Fatal("empty domain accepted")
	}
}

var rightStreak = []string{"foxnews.com", "dailywire.com", "nypost.com", "theblaze.com", "nationalreview.com"}

func TestDebtLifecycle(t *testing.T) {
	tr, clk := newTestTracker(t, false)
	ctx := context.Background()

	var last VisitResult
	for _, d := range rightStreak {
		clk.Advance(time.Minute)
		var err error
		last, err = tr.RecordVisit(ctx, PageInfo{Domain: d})
		if err != nil {
			t.Fatal(err)
		}
	}
	if !last.InDebt {
		t.Fatal("five same-side visits did not incur debt")
	}
	if last.DebtBias != echo.SimpleRight {
		t.Fatalf("debt bias = %q", last.DebtBias)
	}
	if !last.Alert {
		t.Fatal("no alert on the streak")
	}

	// A same-side page does not clear anything.
	st := tr.BreakerStatusFor(ctx, "breitbart.com")
	if !st.InDebt || st.ClearedByDomain {
		t.Fatalf("same-side page touched the debt: %+v", st)
	}
	if len(st.Alternatives) == 0 {
		t.Fatal("no alternatives suggested while in debt")
	}

	// Visiting a centrist source clears the debt from the breaker check,
	// before the visit is even recorded.
	st = tr.BreakerStatusFor(ctx, "reuters.com")
	if !st.ClearedByDomain {
		t.Fatal("centrist page did not clear the debt")
	}
	if st.InDebt {
		t.Fatal("still in debt after clearing")
	}
}

func TestClearDebtExplicit(t *testing.T) {
	tr, clk := newTestTracker(t, false)
	ctx := context.Background()
	for _, d := range rightStreak {
		clk.Advance(time.Minute)
		tr.RecordVisit(ctx, PageInfo{Domain: d})
	}
	tr.ClearDebt(ctx)
	if st := tr.BreakerStatusFor(ctx, ""); st.InDebt {
		t.Fatal("debt survived explicit clear")
	}
}

func TestDebtRespectsDisabledBreaker(t *testing.T) {
	tr, clk := newTestTracker(t, false)
	ctx := context.Background()
	off := false
	tr.UpdateSettings(ctx, SettingsPatch{EchoBreakerEnabled: &off})

	for _, d := range rightStreak {
		clk.Advance(time.Minute)
		res, _ := tr.RecordVisit(ctx, PageInfo{Domain: d})
		if res.InDebt {
			t.Fatal("debt incurred with breaker disabled")
		}
	}
}

func TestAddActiveTime(t *testing.T) {
	tr, _ := newTestTracker(t, false)
	ctx := context.Background()
	tr.RecordVisit(ctx, PageInfo{Domain: "wikipedia.org", Minutes: 1})

	if !tr.AddActiveTime(ctx, "wikipedia.org", 4) {
		t.Fatal("active time not added")
	}
	if tr.AddActiveTime(ctx, "never-visited.example", 4) {
		t.Fatal("active time added for unvisited domain")
	}
	b := tr.CurrentWeek().Bucket
	if b.TotalTime != 5 {
		t.Fatalf("total time = %v, want 5", b.TotalTime)
	}
}

func TestImportEntriesDedupAndBypass(t *testing.T) {
	tr, clk := newTestTracker(t, false)
	ctx := context.Background()

	base := clk.Now().Add(-24 * time.Hour)
	var entries []history.Entry
	for i, d := range rightStreak {
		entries = append(entries, history.Entry{
			Domain:    d,
			Path:      "/",
			VisitedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	// Exact duplicate of the first entry.
	entries = append(entries, entries[0])

	res := tr.ImportEntries(ctx, entries)
	if res.Added != 5 || res.Skipped != 1 {
		t.Fatalf("added = %d, skipped = %d", res.Added, res.Skipped)
	}

	// Historical reading never drives the echo or load machinery.
	if st := tr.BreakerStatusFor(ctx, ""); st.InDebt {
		t.Fatal("import incurred debt")
	}
	if l, _ := tr.CurrentLoad(); l != 0 {
		t.Fatalf("import moved the load to %v", l)
	}

	// Re-importing the same batch is a full no-op.
	res = tr.ImportEntries(ctx, entries)
	if res.Added != 0 || res.Skipped != 6 {
		t.Fatalf("second import: added = %d, skipped = %d", res.Added, res.Skipped)
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	clk := newTestClock()
	dir := t.TempDir()
	s, err := storage.Open(filepath.Join(dir, "state.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tr := New(Options{Store: s, Clock: clk.Now})
	tr.RecordVisit(ctx, PageInfo{Domain: "nytimes.com"})
	tr.RecordVisit(ctx, PageInfo{Domain: "wikipedia.org"})
	want := tr.CurrentScores()
	s.Close()

	s2, err := storage.Open(filepath.Join(dir, "state.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	tr2 := New(Options{Store: s2, Clock: clk.Now})
	if err := tr2.Hydrate(ctx); err != nil {
		t.Fatal(err)
	}
	if got := tr2.CurrentScores(); got != want {
		t.Fatalf("scores after hydrate = %+v, want %+v", got, want)
	}
	if n := len(tr2.CurrentWeek().Bucket.Visits); n != 2 {
		t.Fatalf("hydrated %d visits, want 2", n)
	}
}

func TestHydrateRestoresAlertCooldown(t *testing.T) {
	clk := newTestClock()
	dir := t.TempDir()
	s, err := storage.Open(filepath.Join(dir, "state.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tr := New(Options{Store: s, Clock: clk.Now})
	cooldown := 120
	tr.UpdateSettings(ctx, SettingsPatch{AlertCooldownMinutes: &cooldown})
	s.Close()

	s2, err := storage.Open(filepath.Join(dir, "state.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	tr2 := New(Options{Store: s2, Clock: clk.Now})
	if err := tr2.Hydrate(ctx); err != nil {
		t.Fatal(err)
	}
	if got := tr2.Settings().AlertCooldownMinutes; got != 120 {
		t.Fatalf("cooldown after hydrate = %d", got)
	}

	var last VisitResult
	for _, d := range rightStreak {
		clk.Advance(time.Minute)
		last, _ = tr2.RecordVisit(ctx, PageInfo{Domain: d})
	}
	if !last.Alert {
		t.Fatal("no alert on the streak")
	}

	// 40 minutes clears the stock 30-minute cooldown but not the restored
	// 120-minute one.
	clk.Advance(40 * time.Minute)
	last, _ = tr2.RecordVisit(ctx, PageInfo{Domain: "breitbart.com"})
	if last.Alert {
		t.Fatal("alert fired inside the restored cooldown")
	}
}

func TestHydrateEncrypted(t *testing.T) {
	clk := newTestClock()
	dir := t.TempDir()
	s, err := storage.Open(filepath.Join(dir, "state.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tr := New(Options{Store: s, Clock: clk.Now})
	if err := tr.EnableEncryption(ctx, "hunter2hunter2"); err != nil {
		t.Fatal(err)
	}
	tr.RecordVisit(ctx, PageInfo{Domain: "reuters.com"})
	s.Close()

	s2, err := storage.Open(filepath.Join(dir, "state.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	// Without the password hydration must fail loudly, not silently reset.
	tr2 := New(Options{Store: s2, Clock: clk.Now})
	if err := tr2.Hydrate(ctx); err == nil {
		t.Fatal("encrypted snapshot hydrated without a password")
	}

	tr3 := New(Options{Store: s2, Clock: clk.Now, Password: "hunter2hunter2"})
	if err := tr3.Hydrate(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(tr3.CurrentWeek().Bucket.Visits); n != 1 {
		t.Fatalf("hydrated %d visits, want 1", n)
	}
}

func TestEnableEncryptionRejectsShortPassword(t *testing.T) {
	tr, _ := newTestTracker(t, true)
	if err := tr.EnableEncryption(context.Background(), "short"); err == nil {
		t.Fatal("short password accepted")
	}
}

func TestUpdateSettingsClamps(t *testing.T) {
	tr, _ := newTestTracker(t, false)
	ctx := context.Background()

	th := 99
	decay := 0.0
	cred := 100.0
	mode := "nonsense"
	got := tr.UpdateSettings(ctx, SettingsPatch{
		EchoThreshold:        &th,
		DecayPerHour:         &decay,
		CredibilityThreshold: &cred,
		GuidanceMode:         &mode,
	})
	if got.EchoThreshold != 10 {
		t.Fatalf("threshold = %d", got.EchoThreshold)
	}
	if got.DecayPerHour != 1 {
		t.Fatalf("decay = %v", got.DecayPerHour)
	}
	if got.CredibilityThreshold != 8 {
		t.Fatalf("credibility threshold = %v", got.CredibilityThreshold)
	}
	if got.GuidanceMode != load.ModeStandard {
		t.Fatalf("unknown mode replaced the default: %q", got.GuidanceMode)
	}

	// Untouched fields keep their values.
	if !got.EchoBreakerEnabled {
		t.Fatal("unrelated field changed")
	}
}

func TestUpdateGoalsClamps(t *testing.T) {
	tr, _ := newTestTracker(t, false)
	domains := 500
	balance := -3.0
	got := tr.UpdateGoals(context.Background(), GoalsPatch{
		WeeklyMinDomains:          &domains,
		WeeklyMinPoliticalBalance: &balance,
	})
	if got.WeeklyMinDomains != 50 {
		t.Fatalf("weekly domains = %d", got.WeeklyMinDomains)
	}
	if got.WeeklyMinPoliticalBalance != 0 {
		t.Fatalf("balance = %v", got.WeeklyMinPoliticalBalance)
	}
	if got.DailyMinCenterSources != diet.DefaultGoals().DailyMinCenterSources {
		t.Fatal("unrelated goal changed")
	}
}

func TestAnalyzeEchoChamberWeekly(t *testing.T) {
	tr, clk := newTestTracker(t, false)
	ctx := context.Background()
	for _, d := range []string{"cnn.com", "msnbc.com", "vox.com", "huffpost.com", "theguardian.com"} {
		clk.Advance(time.Minute)
		tr.RecordVisit(ctx, PageInfo{Domain: d})
	}

	a := tr.AnalyzeEchoChamber("")
	if !a.Weekly.IsEchoChamber || a.Weekly.DominantBias != echo.SimpleLeft {
		t.Fatalf("weekly = %+v", a.Weekly)
	}
	if a.Weekly.LeftPercent != 100 {
		t.Fatalf("left percent = %d", a.Weekly.LeftPercent)
	}
	if !a.Realtime.IsEchoChamber {
		t.Fatalf("realtime = %+v", a.Realtime)
	}
	if len(a.RecentHistory) != 5 {
		t.Fatalf("recent history has %d entries", len(a.RecentHistory))
	}
}

func TestClearAllResetsEverything(t *testing.T) {
	tr, clk := newTestTracker(t, true)
	ctx := context.Background()
	for _, d := range rightStreak {
		clk.Advance(time.Minute)
		tr.RecordVisit(ctx, PageInfo{Domain: d})
	}
	tr.ClearAll(ctx)

	if len(tr.CurrentWeek().Bucket.Visits) != 0 {
		t.Fatal("visits survived clear")
	}
	if st := tr.BreakerStatusFor(ctx, ""); st.InDebt || st.ConsecutiveCount != 0 {
		t.Fatalf("echo state survived clear: %+v", st)
	}
	if l, _ := tr.CurrentLoad(); l != 0 {
		t.Fatalf("load survived clear: %v", l)
	}
}
