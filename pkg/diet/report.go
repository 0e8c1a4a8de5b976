package diet

import (
	"fmt"
	"sort"

	"github.com/clearfeed/mediascope/pkg/sources"
)

// CategoryShare is one category's slice of the week.
type CategoryShare struct {
	Category sources.Category `json:"category"`
	Count    int              `json:"count"`
	Percent  int              `json:"percent"`
}

// Report is the weekly summary shown to the user.
type Report struct {
	WeekKey       string          `json:"weekKey"`
	TotalVisits   int             `json:"totalVisits"`
	TotalMinutes  float64         `json:"totalMinutes"`
	UniqueDomains int             `json:"uniqueDomains"`
	Scores        Scores          `json:"scores"`
	TopCategories []CategoryShare `json:"topCategories"`
	Insights      []string        `json:"insights"`
}

// BuildReport summarizes one week bucket with plain-language insights.
func BuildReport(weekKey string, b *WeekBucket) Report {
	r := Report{WeekKey: weekKey}
	if b == nil || len(b.Visits) == 0 {
		r.Insights = []string{"No browsing recorded this week."}
		return r
	}

	r.TotalVisits = len(b.Visits)
	r.TotalMinutes = b.TotalTime
	r.UniqueDomains = b.Domains.Len()
	r.Scores = b.Scores
	r.TopCategories = topCategories(b)
	r.Insights = insights(b)
	return r
}

func topCategories(b *WeekBucket) []CategoryShare {
	total := len(b.Visits)
	out := make([]CategoryShare, 0, len(b.Categories))
	for cat, n := range b.Categories {
		out = append(out, CategoryShare{Category: cat, Count: n, Percent: n * 100 / total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func insights(b *WeekBucket) []string {
	var out []string
	s := b.Scores

	if s.SourceDiversity < 5 {
		out = append(out, fmt.Sprintf("You read from only %d distinct sites this week. Adding a few more sources improves your diversity score.", b.Domains.Len()))
	} else if s.SourceDiversity >= 9 {
		out = append(out, "Excellent source variety this week.")
	}
	if s.Credibility < 6 {
		out = append(out, "A large share of this week's reading came from low-credibility sources.")
	}
	if s.ContentTone < 4 {
		out = append(out, "Most of what you read this week had a cynical tone. Consider mixing in some constructive coverage.")
	}
	if s.PoliticalBalance < 5 {
		out = append(out, "Your political reading leaned heavily to one side this week.")
	}
	newsShare := b.Categories[sources.CategoryNews]
	if len(b.Visits) > 0 && newsShare*100/len(b.Visits) > 60 {
		out = append(out, "News dominated your week. The target mix is about a quarter news.")
	}
	if len(out) == 0 {
		out = append(out, "A balanced week. Keep it up.")
	}
	return out
}
