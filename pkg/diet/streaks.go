package diet

import "time"

// Streaks tracks consecutive qualifying days and weeks, with longest-ever
// bookkeeping. LastMetDate / LastMetWeek are ISO dates.
type Streaks struct {
	DailyCurrent  int    `json:"dailyCurrent"`
	DailyLongest  int    `json:"dailyLongest"`
	LastMetDate   string `json:"lastMetDate,omitempty"`
	WeeklyCurrent int    `json:"weeklyCurrent"`
	WeeklyLongest int    `json:"weeklyLongest"`
	LastMetWeek   string `json:"lastMetWeek,omitempty"`
}

// UpdateDaily folds today's goal outcome into the daily streak. A day only
// counts with at least one visit; missing a day does not reset the streak
// until the next qualifying day arrives non-consecutively.
func (s *Streaks) UpdateDaily(met bool, visitCount int, now time.Time) {
	if !met || visitCount < 1 {
		return
	}
	today := DayKeyOf(now)
	if s.LastMetDate == today {
		return // already counted
	}
	yesterday := DayKeyOf(now.AddDate(0, 0, -1))
	if s.LastMetDate == yesterday {
		s.DailyCurrent++
	} else {
		s.DailyCurrent = 1
	}
	s.LastMetDate = today
	if s.DailyCurrent > s.DailyLongest {
		s.DailyLongest = s.DailyCurrent
	}
}

// UpdateWeekly folds the current week's goal outcome into the weekly
// streak. Consecutiveness is a 7-day gap between week keys.
func (s *Streaks) UpdateWeekly(met bool, now time.Time) {
	if !met {
		return
	}
	thisWeek := WeekKeyOf(now)
	if s.LastMetWeek == thisWeek {
		return
	}
	prevWeek := WeekKeyOf(now.AddDate(0, 0, -7))
	if s.LastMetWeek == prevWeek {
		s.WeeklyCurrent++
	} else {
		s.WeeklyCurrent = 1
	}
	s.LastMetWeek = thisWeek
	if s.WeeklyCurrent > s.WeeklyLongest {
		s.WeeklyLongest = s.WeeklyCurrent
	}
}

// Reset zeroes all streak state.
func (s *Streaks) Reset() {
	*s = Streaks{}
}

// DailyProgress is the persisted snapshot of today's goal outcome, used by
// the dashboard and by the day-boundary rollover.
type DailyProgress struct {
	Date       string `json:"date"`
	GoalsMet   bool   `json:"goalsMet"`
	VisitCount int    `json:"visitCount"`
}
