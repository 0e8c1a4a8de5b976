package load

import (
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestApplyVisitIncrease(t *testing.T) {
	// deficit 2.0 -> 8 + 16 = 24
	if got := ApplyVisit(10, f(4.0), 6.0); got != 34 {
		t.Fatalf("ApplyVisit(10, 4.0) = %v, want 34", got)
	}
	// very low credibility adds the extra penalty: 8 + 3.5*8 + 8 = 44
	if got := ApplyVisit(0, f(2.5), 6.0); got != 44 {
		t.Fatalf("ApplyVisit(0, 2.5) = %v, want 44", got)
	}
}

func TestApplyVisitCap(t *testing.T) {
	if got := ApplyVisit(95, f(1.0), 6.0); got != MaxLoad {
		t.Fatalf("load exceeded cap: %v", got)
	}
}

func TestApplyVisitRecovery(t *testing.T) {
	if got := ApplyVisit(60, f(8.5), 6.0); got != 38 {
		t.Fatalf("strong recovery: got %v, want 38", got)
	}
	if got := ApplyVisit(60, f(7.5), 6.0); got != 52 {
		t.Fatalf("mild recovery: got %v, want 52", got)
	}
	if got := ApplyVisit(10, f(9.0), 6.0); got != 0 {
		t.Fatalf("recovery must floor at 0, got %v", got)
	}
}

func TestApplyVisitNeutralBand(t *testing.T) {
	if got := ApplyVisit(40, f(6.5), 6.0); got != 40 {
		t.Fatalf("[threshold,7) must not move the load, got %v", got)
	}
}

func TestApplyVisitUnknownSource(t *testing.T) {
	if got := ApplyVisit(40, nil, 6.0); got != 40 {
		t.Fatalf("unknown source moved the load: %v", got)
	}
}

func TestApplyVisitThresholdFirst(t *testing.T) {
	// With a raised threshold, 6.5 is below threshold and must increase.
	got := ApplyVisit(0, f(6.5), 7.0)
	if got <= 0 {
		t.Fatalf("raised threshold should add load, got %v", got)
	}
}

func TestDecay(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := Decay(50, t0, t0.Add(2*time.Hour), 10); got != 30.0 {
		t.Fatalf("Decay = %v, want 30", got)
	}
	if got := Decay(5, t0, t0.Add(2*time.Hour), 10); got != 0 {
		t.Fatalf("decay must floor at 0, got %v", got)
	}
	// Clock going backwards is a no-op, not a refund.
	if got := Decay(50, t0, t0.Add(-time.Hour), 10); got != 50 {
		t.Fatalf("backwards clock changed load: %v", got)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		load float64
		mode Mode
		want Level
	}{
		{20, ModeStandard, LevelNormal},
		{55, ModeStandard, LevelElevated},
		{80, ModeStandard, LevelHigh},
		{55, ModeGentle, LevelNormal},
		{90, ModeGentle, LevelHigh},
		{35, ModeStrong, LevelElevated},
		{99, ModeOff, LevelNormal},
		{99, Mode("bogus"), LevelNormal},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.load, tt.mode); got != tt.want {
			t.Errorf("LevelFor(%v, %s) = %s, want %s", tt.load, tt.mode, got, tt.want)
		}
	}
}

func TestMeterDecayThenApply(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMeter(func() time.Time { return now })
	m.Load = 50

	now = now.Add(2 * time.Hour)
	// 50 decays to 30, then the visit adds 24 -> 54. Apply-then-decay
	// would have given 74 decayed to 54 too, but the ordering matters at
	// the floor/cap edges, so assert the sequence via a capped case below.
	if got := m.Observe(f(4.0), 6.0, 10); got != 54 {
		t.Fatalf("Observe = %v, want 54", got)
	}

	// At the cap: decay first makes room, so the result stays at 100 only
	// if the post-decay load plus delta still exceeds it.
	m.Load = 100
	m.LastUpdated = now
	now = now.Add(1 * time.Hour)
	if got := m.Observe(f(1.0), 6.0, 10); got != 100 {
		t.Fatalf("Observe at cap = %v, want 100", got)
	}
}

func TestMeterCurrentLazyDecay(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMeter(func() time.Time { return now })
	m.Load = 40
	now = now.Add(90 * time.Minute)
	if got := m.Current(10); got != 25 {
		t.Fatalf("Current = %v, want 25", got)
	}
	// Second read with no elapsed time is stable.
	if got := m.Current(10); got != 25 {
		t.Fatalf("repeated Current = %v, want 25", got)
	}
}

func TestMeterRestoreClamps(t *testing.T) {
	m := NewMeter(nil)
	m.Restore(150, time.Time{})
	if m.Load != MaxLoad {
		t.Fatalf("restore did not clamp: %v", m.Load)
	}
	m.Restore(-5, time.Time{})
	if m.Load != 0 {
		t.Fatalf("restore did not floor: %v", m.Load)
	}
}
