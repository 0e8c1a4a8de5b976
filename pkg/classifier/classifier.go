package classifier

import (
	"strings"

	"github.com/clearfeed/mediascope/pkg/sources"
)

// Result is the classification of a single visited page.
type Result struct {
	Category    sources.Category `json:"category"`
	Credibility *float64         `json:"credibility"` // nil when the source is unknown
	Bias        sources.Bias     `json:"politicalBias"`
	Tone        Tone             `json:"tone"`
	SourceName  string           `json:"sourceName"`
}

// Tone is the emotional tone of a page's title and content.
type Tone string

const (
	ToneCynical   Tone = "cynical"
	ToneUplifting Tone = "uplifting"
	ToneNeutral   Tone = "neutral"
)

// categoryRule is a fallback keyword rule. Rules run in order; the first
// match wins.
type categoryRule struct {
	category sources.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{sources.CategoryNews, []string{"news", "herald", "times", "tribune", "gazette", "journal", "daily", "post", "report", "headline"}},
	{sources.CategorySocial, []string{"facebook", "twitter", "reddit", "instagram", "tiktok", "forum", "community", "social"}},
	{sources.CategoryEntertainment, []string{"youtube", "netflix", "game", "gaming", "movie", "music", "sport", "stream", "celebrity"}},
	{sources.CategoryEducational, []string{"wiki", "learn", "course", "academy", "university", "tutorial", "encyclopedia", ".edu"}},
	{sources.CategoryProfessional, []string{"linkedin", "github", "stackoverflow", "docs", "developer", "career", "engineering"}},
}

var cynicalKeywords = []string{
	"outrage", "scandal", "slam", "blast", "disaster", "corrupt", "hoax",
	"fear", "crisis", "chaos", "destroy", "furious", "worst", "fail",
	"collapse", "nightmare", "betray",
}

var upliftingKeywords = []string{
	"hope", "breakthrough", "success", "celebrate", "inspire", "rescue",
	"kindness", "achievement", "progress", "joy", "triumph", "uplifting",
	"heartwarming", "recover", "thrive",
}

// Classify turns page signals into a classification result. The reference
// table is authoritative for category, credibility, bias and name; the
// keyword fallback only fills in a category for unknown domains.
// Credibility and bias are never inferred from content.
func Classify(domain, path, title, content string) Result {
	res := Result{
		Category: sources.CategoryOther,
		Bias:     sources.BiasUnknown,
		Tone:     AnalyzeTone(title, content),
	}

	if info, ok := sources.Lookup(domain); ok {
		res.SourceName = info.Name
		res.Bias = info.Bias
		cred := info.Credibility
		res.Credibility = &cred
		if info.Category != "" {
			res.Category = info.Category
			return res
		}
	}

	res.Category = fallbackCategory(domain, title)
	return res
}

func fallbackCategory(domain, title string) sources.Category {
	haystacks := []string{strings.ToLower(domain), strings.ToLower(title)}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			for _, h := range haystacks {
				if strings.Contains(h, kw) {
					return rule.category
				}
			}
		}
	}
	return sources.CategoryOther
}

// AnalyzeTone counts cynical and uplifting keyword occurrences over the
// title and content. Ties are neutral. Substring matching, not
// word-boundary, mirroring the keyword tables' intent (e.g. "fails"
// counts for "fail").
func AnalyzeTone(title, content string) Tone {
	text := strings.ToLower(title + " " + content)
	cynical := countOccurrences(text, cynicalKeywords)
	uplifting := countOccurrences(text, upliftingKeywords)
	switch {
	case cynical > uplifting:
		return ToneCynical
	case uplifting > cynical:
		return ToneUplifting
	default:
		return ToneNeutral
	}
}

func countOccurrences(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		n += strings.Count(text, kw)
	}
	return n
}
