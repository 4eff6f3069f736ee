package usecase

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/invoiceagent/backend/internal/domain"
)

// Default fuzzy matching policy
const (
	// DefaultThreshold is the minimum score for an auto-accepted match
	DefaultThreshold = 85
	// DefaultSuggestionFloor is the minimum score for a candidate to be
	// surfaced to a human reviewer at all
	DefaultSuggestionFloor = 60
)

// FuzzyConfig holds the scoring policy for one fuzzy matching run
type FuzzyConfig struct {
	Threshold       int
	SuggestionFloor int
}

// MatchFuzzy scores a free-text product name against every catalog entry
// using token-set similarity. The best candidate at or above the threshold
// becomes a confirmed match. Below the threshold, every candidate at or
// above the suggestion floor is returned for human disambiguation; below
// the floor candidates are discarded entirely.
func MatchFuzzy(productName string, entries []domain.CatalogEntry, cfg FuzzyConfig) domain.MatchResult {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	floor := cfg.SuggestionFloor
	if floor <= 0 {
		floor = DefaultSuggestionFloor
	}

	query := Normalize(productName)
	if query == "" {
		return domain.MatchResult{}
	}

	type scoredEntry struct {
		entry domain.CatalogEntry
		score int
	}

	var candidates []scoredEntry
	seenNames := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.ProductName == "" || seenNames[entry.ProductName] {
			continue
		}
		seenNames[entry.ProductName] = true

		score := TokenSetRatio(query, Normalize(entry.ProductName))
		if score >= floor {
			candidates = append(candidates, scoredEntry{entry: entry, score: score})
		}
	}

	if len(candidates) == 0 {
		return domain.MatchResult{}
	}

	// Stable sort keeps catalog order for equal scores
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	best := candidates[0]
	if best.score >= threshold {
		return domain.MatchResult{
			ProductID:   &best.entry.ProductID,
			MatchedName: &best.entry.ProductName,
			Unit:        best.entry.Unit,
			Currency:    best.entry.Currency,
			MatchScore:  best.score,
		}
	}

	possible := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		possible = append(possible, domain.Candidate{
			ProductID:   c.entry.ProductID,
			MatchedName: c.entry.ProductName,
			Unit:        c.entry.Unit,
			Currency:    c.entry.Currency,
			MatchScore:  c.score,
		})
	}

	return domain.MatchResult{
		MatchScore:      best.score,
		PossibleMatches: possible,
	}
}

// TokenSetRatio computes an order-and-duplicate-insensitive similarity in
// [0,100] over the whitespace-delimited tokens of two strings. The token
// sets are split into intersection and differences, and the score is the
// best normalized edit-distance ratio among the sorted joins of those
// groups. A query whose tokens are a subset of the candidate's scores 100.
func TokenSetRatio(a, b string) int {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var intersection, onlyA, onlyB []string
	for t := range tokensA {
		if tokensB[t] {
			intersection = append(intersection, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tokensB {
		if !tokensA[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(intersection)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	common := strings.Join(intersection, " ")
	full1 := joinGroups(common, onlyA)
	full2 := joinGroups(common, onlyB)

	best := similarityRatio(full1, full2)
	if common != "" {
		if r := similarityRatio(common, full1); r > best {
			best = r
		}
		if r := similarityRatio(common, full2); r > best {
			best = r
		}
	}
	return best
}

func joinGroups(common string, rest []string) string {
	joined := strings.Join(rest, " ")
	if common == "" {
		return joined
	}
	if joined == "" {
		return common
	}
	return common + " " + joined
}

// similarityRatio is a normalized Levenshtein similarity scaled to 0-100
func similarityRatio(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	if s1 == "" || s2 == "" {
		return 0
	}

	longer := utf8.RuneCountInString(s1)
	if n := utf8.RuneCountInString(s2); n > longer {
		longer = n
	}

	dist := levenshtein.ComputeDistance(s1, s2)
	return int(math.Round(100 * float64(longer-dist) / float64(longer)))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}
