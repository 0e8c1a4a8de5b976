package classifier

import (
	"testing"

	"github.com/clearfeed/mediascope/pkg/sources"
)

func TestClassifyKnownDomain(t *testing.T) {
	res := Classify("www.reuters.com", "/world/", "Markets update", "")
	if res.Category != sources.CategoryNews {
		t.Fatalf("category = %s", res.Category)
	}
	if res.Credibility == nil || *res.Credibility != 9.0 {
		t.Fatalf("credibility = %v", res.Credibility)
	}
	if res.Bias != sources.BiasCentrist {
		t.Fatalf("bias = %s", res.Bias)
	}
	if res.SourceName != "Reuters" {
		t.Fatalf("sourceName = %s", res.SourceName)
	}
}

func TestClassifyUnknownDomainFallsBackToKeywords(t *testing.T) {
	tests := []struct {
		domain, title string
		want          sources.Category
	}{
		{"smalltownherald.net", "Local council votes", sources.CategoryNews},
		{"randomforum.xyz", "community discussion", sources.CategorySocial},
		{"indiegamehub.io", "best game releases", sources.CategoryEntertainment},
		{"learnstuff.dev", "Intro course", sources.CategoryEducational},
		{"whatever.example", "nothing matches here", sources.CategoryOther},
	}
	for _, tt := range tests {
		res := Classify(tt.domain, "/", tt.title, "")
		if res.Category != tt.want {
			t.Errorf("%s: category = %s, want %s", tt.domain, res.Category, tt.want)
		}
		if res.Credibility != nil {
			t.Errorf("%s: unknown domain must have nil credibility", tt.domain)
		}
		if res.Bias != sources.BiasUnknown {
			t.Errorf("%s: bias = %s, want unknown", tt.domain, res.Bias)
		}
	}
}

func TestCategoryRuleOrder(t *testing.T) {
	// "news" rule runs before "social": a title matching both is news.
	res := Classify("unknown.example", "/", "news from the forum", "")
	if res.Category != sources.CategoryNews {
		t.Fatalf("category = %s, want news (rule order)", res.Category)
	}
}

func TestAnalyzeTone(t *testing.T) {
	tests := []struct {
		title, content string
		want           Tone
	}{
		{"Total disaster as scandal erupts", "corrupt officials", ToneCynical},
		{"Breakthrough brings hope", "a success to celebrate", ToneUplifting},
		{"Plain report about weather", "", ToneNeutral},
		{"scandal and hope", "", ToneNeutral}, // tie
	}
	for _, tt := range tests {
		if got := AnalyzeTone(tt.title, tt.content); got != tt.want {
			t.Errorf("AnalyzeTone(%q) = %s, want %s", tt.title, got, tt.want)
		}
	}
}

func TestToneCountsOccurrencesNotPresence(t *testing.T) {
	// Two occurrences of one cynical keyword beat one uplifting keyword.
	got := AnalyzeTone("crisis after crisis", "hope")
	if got != ToneCynical {
		t.Fatalf("got %s, want cynical", got)
	}
}
