package diet

import (
	"github.com/clearfeed/mediascope/internal/utils"
	"github.com/clearfeed/mediascope/pkg/classifier"
	"github.com/clearfeed/mediascope/pkg/sources"
)

// Scores are the weekly sub-scores plus overall health, all on 0-10.
type Scores struct {
	SourceDiversity  float64 `json:"sourceDiversity"`
	ContentBalance   float64 `json:"contentBalance"`
	TimeManagement   float64 `json:"timeManagement"`
	Credibility      float64 `json:"credibility"`
	ContentTone      float64 `json:"contentTone"`
	PoliticalBalance float64 `json:"politicalBalance"`
	OverallHealth    float64 `json:"overallHealth"`
}

// balanceBuckets is the five-bucket normalization for content balance.
// Raw categories outside the map fall into "other", which only enters the
// score as a penalty.
var balanceBuckets = map[sources.Category]sources.Category{
	sources.CategoryNews:          sources.CategoryNews,
	sources.CategoryFactCheck:     sources.CategoryNews,
	sources.CategoryStateMedia:    sources.CategoryNews,
	sources.CategorySocial:        sources.CategorySocial,
	sources.CategoryEntertainment: sources.CategoryEntertainment,
	"sports":                      sources.CategoryEntertainment,
	sources.CategoryConspiracy:    sources.CategoryEntertainment,
	sources.CategoryEducational:   sources.CategoryEducational,
	sources.CategoryScience:       sources.CategoryEducational,
	"reference":                   sources.CategoryEducational,
	sources.CategoryProfessional:  sources.CategoryProfessional,
	"tech":                        sources.CategoryProfessional,
	"business":                    sources.CategoryProfessional,
}

// idealRatios is the target content mix.
var idealRatios = map[sources.Category]float64{
	sources.CategoryNews:          0.25,
	sources.CategorySocial:        0.15,
	sources.CategoryEntertainment: 0.20,
	sources.CategoryEducational:   0.25,
	sources.CategoryProfessional:  0.15,
}

const (
	diversityTargetDomains    = 10
	otherPenaltyFactor        = 0.3
	deviationWeight           = 8.0
	unknownCredibilityDefault = 6.0
)

// ComputeScores does a full recompute over the bucket's visit list. Never
// incremental: O(visits) per call is fine for UI-triggered recomputes, and
// full recompute keeps the cached snapshot trustworthy after repair.
// OverallHealth averages the six sub-scores after each is rounded, so the
// headline number matches what the user sees.
func ComputeScores(b *WeekBucket) Scores {
	if b == nil || len(b.Visits) == 0 {
		return Scores{}
	}

	s := Scores{
		SourceDiversity:  sourceDiversityScore(b.Domains.Len()),
		ContentBalance:   contentBalanceScore(b.Categories, len(b.Visits)),
		TimeManagement:   timeManagementScore(b.TotalTime),
		Credibility:      credibilityScore(b.Visits),
		ContentTone:      contentToneScore(b.Visits),
		PoliticalBalance: politicalBalanceScore(b.Visits),
	}
	s.OverallHealth = utils.Round1((s.SourceDiversity + s.ContentBalance + s.TimeManagement +
		s.Credibility + s.ContentTone + s.PoliticalBalance) / 6)
	return s
}

func sourceDiversityScore(uniqueDomains int) float64 {
	ratio := float64(uniqueDomains) / diversityTargetDomains
	if ratio > 1 {
		ratio = 1
	}
	return utils.Round1(ratio * 10)
}

func contentBalanceScore(categories map[sources.Category]int, total int) float64 {
	if total == 0 {
		return 0
	}
	counts := make(map[sources.Category]int)
	other := 0
	for cat, n := range categories {
		if bucket, ok := balanceBuckets[cat]; ok {
			counts[bucket] += n
		} else {
			other += n
		}
	}

	deviation := 0.0
	for bucket, ideal := range idealRatios {
		actual := float64(counts[bucket]) / float64(total)
		if actual > ideal {
			deviation += actual - ideal
		} else {
			deviation += ideal - actual
		}
	}
	deviation += otherPenaltyFactor * float64(other) / float64(total)

	score := 10 - deviation*deviationWeight
	if score < 0 {
		score = 0
	}
	return utils.Round1(score)
}

func timeManagementScore(totalMinutes float64) float64 {
	avgDailyHours := totalMinutes / 60 / 7
	switch {
	case avgDailyHours >= 1 && avgDailyHours <= 3:
		return 10
	case avgDailyHours < 1:
		return 8
	case avgDailyHours <= 5:
		return 6
	default:
		return 3
	}
}

func credibilityScore(visits []*Visit) float64 {
	sum := 0.0
	for _, v := range visits {
		if v.Credibility != nil {
			sum += *v.Credibility
		} else {
			sum += unknownCredibilityDefault
		}
	}
	return utils.Round1(sum / float64(len(visits)))
}

func contentToneScore(visits []*Visit) float64 {
	var uplifting, neutral int
	for _, v := range visits {
		switch v.Tone {
		case classifier.ToneUplifting:
			uplifting++
		case classifier.ToneNeutral:
			neutral++
		}
	}
	n := float64(len(visits))
	return utils.Round1(float64(uplifting)/n*10 + float64(neutral)/n*5)
}

// politicalBalanceScore recognizes only the literal liberal, conservative
// and centrist labels. This vocabulary predates the left/right mapping
// used by the echo tracker and is load-bearing: buckets whose visits all
// carry unknown or left/right labels score a flat 8.0 here. Keep the seam.
func politicalBalanceScore(visits []*Visit) float64 {
	var liberal, conservative, centrist int
	for _, v := range visits {
		switch v.PoliticalBias {
		case "liberal":
			liberal++
		case "conservative":
			conservative++
		case "centrist":
			centrist++
		}
	}
	n := float64(len(visits))
	lr := float64(liberal) / n
	cr := float64(conservative) / n
	zr := float64(centrist) / n
	max := lr
	if cr > max {
		max = cr
	}
	return utils.Round1((1-max)*8 + zr*2)
}
