// Package diet holds the weekly aggregation model: visits grouped into
// Sunday-keyed week buckets, the six sub-scores plus overall health, and
// goal/streak tracking.
package diet

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/clearfeed/mediascope/pkg/classifier"
	"github.com/clearfeed/mediascope/pkg/sources"
)

// Visit is one classified page view. Duration is the only field mutated
// after creation: it accumulates while the tab stays active and is
// finalized on navigation away.
type Visit struct {
	Domain           string           `json:"domain"`
	Path             string           `json:"path"`
	Title            string           `json:"title"`
	Timestamp        int64            `json:"timestamp"` // epoch ms
	Duration         float64          `json:"duration"`  // minutes
	Category         sources.Category `json:"category"`
	Credibility      *float64         `json:"credibility"`
	CredibilityKnown bool             `json:"credibilityKnown"`
	PoliticalBias    sources.Bias     `json:"politicalBias"`
	Tone             classifier.Tone  `json:"tone"`
	SourceName       string           `json:"sourceName,omitempty"`
}

// StringSet is a set of strings that serializes as a sorted JSON array,
// since the storage format has no native set representation. Decoding
// tolerates any non-array value by yielding an empty set; the persistence
// adapter then rebuilds it from the visit list.
type StringSet map[string]struct{}

func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s StringSet) Add(v string)      { s[v] = struct{}{} }
func (s StringSet) Has(v string) bool { _, ok := s[v]; return ok }
func (s StringSet) Len() int          { return len(s) }

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		// Not an array (e.g. a stray {} from a failed serialization).
		// Leave the set empty; repair reconstructs it from visits.
		*s = NewStringSet()
		return nil
	}
	*s = NewStringSet(arr...)
	return nil
}

// WeekBucket aggregates one ISO week of visits. Domains and Categories are
// derived from Visits and must stay consistent with it; see Repair.
type WeekBucket struct {
	Visits     []*Visit                 `json:"visits"`
	Domains    StringSet                `json:"domains"`
	Categories map[sources.Category]int `json:"categories"`
	TotalTime  float64                  `json:"totalTime"` // minutes
	Scores     Scores                   `json:"scores"`
}

// NewWeekBucket returns an empty bucket.
func NewWeekBucket() *WeekBucket {
	return &WeekBucket{
		Domains:    NewStringSet(),
		Categories: make(map[sources.Category]int),
	}
}

// Append adds a visit and updates the derived fields. The caller owns
// rescoring.
func (b *WeekBucket) Append(v *Visit) {
	b.Visits = append(b.Visits, v)
	b.Domains.Add(v.Domain)
	b.Categories[v.Category]++
	b.TotalTime += v.Duration
}

// AddDuration folds extra active-tab minutes into an existing visit and
// the bucket total.
func (b *WeekBucket) AddDuration(v *Visit, minutes float64) {
	v.Duration += minutes
	b.TotalTime += minutes
}

// Repair rebuilds derived fields from the visit list when they are missing
// or inconsistent. Deterministic and idempotent: repairing twice equals
// repairing once.
func (b *WeekBucket) Repair() {
	if b.Domains == nil || (b.Domains.Len() == 0 && len(b.Visits) > 0) {
		b.Domains = NewStringSet()
		for _, v := range b.Visits {
			b.Domains.Add(v.Domain)
		}
	}
	if b.Categories == nil || (len(b.Categories) == 0 && len(b.Visits) > 0) {
		b.Categories = make(map[sources.Category]int)
		for _, v := range b.Visits {
			b.Categories[v.Category]++
		}
	}
}

// ConsistencyOK reports whether the derived fields match the visit list.
func (b *WeekBucket) ConsistencyOK() bool {
	if b.Domains == nil || b.Categories == nil {
		return false
	}
	uniq := NewStringSet()
	catTotal := 0
	for _, v := range b.Visits {
		uniq.Add(v.Domain)
	}
	for _, n := range b.Categories {
		catTotal += n
	}
	return b.Domains.Len() == uniq.Len() && catTotal == len(b.Visits)
}

// WeekKeyOf returns the ISO date of the Sunday starting t's week, in t's
// own location. Local time on purpose: a visit late Saturday night belongs
// to the week the user experienced, not the UTC one.
func WeekKeyOf(t time.Time) string {
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return sunday.Format("2006-01-02")
}

// DayKeyOf returns the ISO date of t in t's own location.
func DayKeyOf(t time.Time) string {
	return t.Format("2006-01-02")
}
