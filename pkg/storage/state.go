// Package storage persists the tracker state across a JSON-only boundary:
// a single-record sqlite snapshot store, a serialize/deserialize adapter
// that reconstructs non-native containers on load, and an optional
// password-based encryption transform applied at the boundary.
package storage

import (
	"time"

	"github.com/clearfeed/mediascope/pkg/diet"
)

// State is the full persisted record.
type State struct {
	IsTracking bool     `json:"isTracking"`
	UserData   UserData `json:"userData"`
}

// UserData is everything the tracker accumulates for one user.
type UserData struct {
	TrackingStartDate string                      `json:"trackingStartDate"`
	WeeklyData        map[string]*diet.WeekBucket `json:"weeklyData"`
	Settings          diet.Settings               `json:"settings"`
	Scores            diet.Scores                 `json:"scores"`
	Goals             diet.Goals                  `json:"goals"`
	Streaks           diet.Streaks                `json:"streaks"`
	DailyProgress     diet.DailyProgress          `json:"dailyProgress"`

	// Credibility-load meter snapshot. LoadUpdatedAt is epoch ms so the
	// decay survives process suspension.
	CredibilityLoad float64 `json:"credibilityLoad"`
	LoadUpdatedAt   int64   `json:"loadUpdatedAt"`
}

// DefaultState returns the state a fresh install starts from.
func DefaultState(now time.Time) *State {
	return &State{
		IsTracking: true,
		UserData: UserData{
			TrackingStartDate: now.Format("2006-01-02"),
			WeeklyData:        make(map[string]*diet.WeekBucket),
			Settings:          diet.DefaultSettings(),
			Goals:             diet.DefaultGoals(),
			LoadUpdatedAt:     now.UnixMilli(),
		},
	}
}
