package usecase

import (
	"strings"

	"github.com/invoiceagent/backend/internal/domain"
)

// MatchExact resolves a free-text product name against the catalog index.
// On a hit the result carries score 100 and the matched product fields; on
// a miss (or an empty name) every matched field stays nil and the score is
// zero. The index already resolved variant ambiguity at build time, so no
// ranking is needed.
func MatchExact(productName string, idx *CatalogIndex) domain.MatchResult {
	trimmed := strings.TrimSpace(productName)
	if trimmed == "" {
		return domain.MatchResult{}
	}

	entry, ok := idx.Lookup(Normalize(trimmed))
	if !ok {
		return domain.MatchResult{}
	}

	return domain.MatchResult{
		ProductID:   &entry.ProductID,
		MatchedName: &entry.ProductName,
		Unit:        entry.Unit,
		Currency:    entry.Currency,
		MatchScore:  100,
	}
}
