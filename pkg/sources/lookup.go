package sources

import (
	"sort"
	"strings"
	"sync"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// suffixOrder holds the table domains sorted longest-first so that suffix
// matching is deterministic and prefers the most specific entry
// (e.g. "bbc.co.uk" before any shorter accidental suffix).
var (
	suffixOnce  sync.Once
	suffixOrder []string
)

func initSuffixOrder() {
	suffixOrder = make([]string, 0, len(table))
	for d := range table {
		suffixOrder = append(suffixOrder, d)
	}
	sort.Slice(suffixOrder, func(i, j int) bool {
		if len(suffixOrder[i]) != len(suffixOrder[j]) {
			return len(suffixOrder[i]) > len(suffixOrder[j])
		}
		return suffixOrder[i] < suffixOrder[j]
	})
}

// Lookup resolves a domain against the reference table. Precedence: exact
// match, then with a leading "www." stripped, then suffix match, then a
// retry on the registrable domain. The second return is false when the
// domain is not covered by the table.
func Lookup(domain string) (Info, bool) {
	domain = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
	if domain == "" {
		return Info{}, false
	}

	if info, ok := table[domain]; ok {
		return info, true
	}
	if stripped := strings.TrimPrefix(domain, "www."); stripped != domain {
		if info, ok := table[stripped]; ok {
			return info, true
		}
	}

	suffixOnce.Do(initSuffixOrder)
	for _, d := range suffixOrder {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return table[d], true
		}
	}

	// Last resort: collapse to the registrable domain. Catches hosts like
	// edition.cnn.com when the subdomain itself defeated the suffix scan.
	if root, err := publicsuffix.Domain(domain); err == nil && root != domain {
		if info, ok := table[root]; ok {
			return info, true
		}
	}

	return Info{}, false
}

// All returns every table entry. Order is unspecified.
func All() []Info {
	out := make([]Info, 0, len(table))
	for _, info := range table {
		out = append(out, info)
	}
	return out
}

// Alternatives suggests up to three high-credibility sources from the
// opposite-or-center bias bucket relative to currentBias, restricted to
// category when given. Results are deduplicated by display name and sorted
// by credibility, highest first.
func Alternatives(currentBias Bias, category Category) []Info {
	wanted := oppositeOrCenter(currentBias)

	var candidates []Info
	seen := make(map[string]bool)
	for _, info := range All() {
		if info.Credibility < 7 {
			continue
		}
		if category != "" && info.Category != category {
			continue
		}
		if !wanted[info.Bias] {
			continue
		}
		if seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		candidates = append(candidates, info)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Credibility != candidates[j].Credibility {
			return candidates[i].Credibility > candidates[j].Credibility
		}
		return candidates[i].Name < candidates[j].Name
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates
}

func oppositeOrCenter(current Bias) map[Bias]bool {
	center := map[Bias]bool{BiasCenter: true, BiasCentrist: true}
	switch current {
	case BiasFarLeft, BiasLeft, BiasLeftCenter:
		center[BiasRightCenter] = true
		center[BiasRight] = true
	case BiasFarRight, BiasRight, BiasRightCenter:
		center[BiasLeftCenter] = true
		center[BiasLeft] = true
	}
	return center
}
