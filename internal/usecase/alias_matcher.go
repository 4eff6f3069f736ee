package usecase

import (
	"strings"

	"github.com/invoiceagent/backend/internal/domain"
)

// MatchAlias resolves a raw product name against the learned alias set.
// The lookup is case-insensitive on the trimmed raw name; normalization is
// deliberately not applied, so aliases only fire on variants previously
// confirmed verbatim. A hit is only valid while the recorded product still
// exists in the catalog snapshot; stale aliases fall through to the other
// matchers.
func MatchAlias(productName string, aliases domain.AliasSet, catalog *domain.CatalogSnapshot) (domain.MatchResult, bool) {
	if strings.TrimSpace(productName) == "" {
		return domain.MatchResult{}, false
	}

	productID, ok := aliases.Lookup(productName)
	if !ok {
		return domain.MatchResult{}, false
	}

	entry, ok := catalog.Entry(productID)
	if !ok {
		return domain.MatchResult{}, false
	}

	return domain.MatchResult{
		ProductID:   &entry.ProductID,
		MatchedName: &entry.ProductName,
		Unit:        entry.Unit,
		Currency:    entry.Currency,
		MatchScore:  100,
	}, true
}
