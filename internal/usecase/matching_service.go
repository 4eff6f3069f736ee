package usecase

import (
	"context"
	"log"

	"github.com/invoiceagent/backend/internal/domain"
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	Threshold          int
	SuggestionFloor    int
	PropagateCurrency  bool
	EnableDebugLogging bool
}

// MatchingService processes invoices against a catalog snapshot. For each
// line item the alias store is consulted first; on a miss the item falls
// through to exact or fuzzy matching depending on the requested method.
type MatchingService struct {
	threshold          int
	suggestionFloor    int
	propagateCurrency  bool
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	threshold := config.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	floor := config.SuggestionFloor
	if floor <= 0 {
		floor = DefaultSuggestionFloor
	}

	return &MatchingService{
		threshold:          threshold,
		suggestionFloor:    floor,
		propagateCurrency:  config.PropagateCurrency,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ProcessInvoice matches every line item of the invoice against the given
// catalog and alias snapshots. The input invoice is never mutated. An
// invoice without an items key is a valid degenerate case and passes
// through unchanged with empty statistics.
func (s *MatchingService) ProcessInvoice(
	ctx context.Context,
	invoice *domain.Invoice,
	catalog *domain.CatalogSnapshot,
	aliases domain.AliasSet,
	method domain.MatchMethod,
) (*domain.ProcessedInvoice, domain.ProcessingStats, error) {
	processed := &domain.ProcessedInvoice{
		HasItems: invoice.HasItems,
		Extra:    invoice.Extra,
	}

	if !invoice.HasItems {
		return processed, domain.ProcessingStats{}, nil
	}

	// The index is only needed for exact matching
	var idx *CatalogIndex
	if method != domain.MatchMethodFuzzy {
		idx = BuildIndex(catalog.Entries)
		if s.enableDebugLogging && len(idx.Collisions()) > 0 {
			log.Printf("[MATCH] catalog index has %d shadowed variant keys", len(idx.Collisions()))
		}
	}

	processed.Items = make([]domain.MatchedLineItem, 0, len(invoice.Items))
	stats := domain.ProcessingStats{TotalItems: len(invoice.Items)}

	for i := range invoice.Items {
		select {
		case <-ctx.Done():
			return nil, domain.ProcessingStats{}, ctx.Err()
		default:
		}

		matched := s.matchItem(&invoice.Items[i], idx, catalog, aliases, method)
		if matched.ProductID != nil {
			stats.MatchedItems++
		} else {
			stats.UnmatchedItems++
		}
		processed.Items = append(processed.Items, matched)
	}

	if method == domain.MatchMethodFuzzy {
		addScoreStats(&stats, processed.Items)
	}

	return processed, stats, nil
}

// matchItem produces the enriched output record for one line item
func (s *MatchingService) matchItem(
	item *domain.LineItem,
	idx *CatalogIndex,
	catalog *domain.CatalogSnapshot,
	aliases domain.AliasSet,
	method domain.MatchMethod,
) domain.MatchedLineItem {
	result, aliasHit := MatchAlias(item.ProductName, aliases, catalog)
	if !aliasHit {
		if method == domain.MatchMethodFuzzy {
			result = MatchFuzzy(item.ProductName, catalog.Entries, FuzzyConfig{
				Threshold:       s.threshold,
				SuggestionFloor: s.suggestionFloor,
			})
		} else {
			result = MatchExact(item.ProductName, idx)
		}
	}

	if s.enableDebugLogging {
		source := "exact"
		if aliasHit {
			source = "alias"
		} else if method == domain.MatchMethodFuzzy {
			source = "fuzzy"
		}
		log.Printf("[MATCH] %s: %q | score %d | candidates %d",
			source, item.ProductName, result.MatchScore, len(result.PossibleMatches))
	}

	if !s.propagateCurrency {
		result.Currency = ""
		for i := range result.PossibleMatches {
			result.PossibleMatches[i].Currency = ""
		}
	}

	matched := domain.MatchedLineItem{
		OriginalName:    item.ProductName,
		ProductID:       result.ProductID,
		MatchedName:     result.MatchedName,
		Unit:            result.Unit,
		Currency:        result.Currency,
		MatchScore:      result.MatchScore,
		PossibleMatches: result.PossibleMatches,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		Subtotal:        item.Subtotal,
		Extra:           item.Extra,
	}
	matched.Status = domain.StatusFor(matched.ProductID)

	// The extracted subtotal is unreliable; recompute whenever possible
	if matched.Quantity != nil && matched.UnitPrice != nil {
		subtotal := *matched.Quantity * *matched.UnitPrice
		matched.Subtotal = &subtotal
	}

	return matched
}

// addScoreStats fills the min/max/average score statistics for fuzzy runs
func addScoreStats(stats *domain.ProcessingStats, items []domain.MatchedLineItem) {
	if len(items) == 0 {
		return
	}

	minScore, maxScore, sum := items[0].MatchScore, items[0].MatchScore, 0
	for _, item := range items {
		if item.MatchScore < minScore {
			minScore = item.MatchScore
		}
		if item.MatchScore > maxScore {
			maxScore = item.MatchScore
		}
		sum += item.MatchScore
	}

	avg := float64(sum) / float64(len(items))
	stats.AverageMatchScore = &avg
	stats.MinMatchScore = &minScore
	stats.MaxMatchScore = &maxScore
}
