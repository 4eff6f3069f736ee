package usecase

import (
	"testing"

	"github.com/invoiceagent/backend/internal/domain"
)

func TestMatchAlias(t *testing.T) {
	catalog := &domain.CatalogSnapshot{Entries: testCatalog()}

	t.Run("lookup is case-insensitive on the trimmed raw name", func(t *testing.T) {
		aliases := domain.AliasSet{"black pork 5up": "P1"}
		result, ok := MatchAlias("  Black Pork 5UP ", aliases, catalog)
		if !ok {
			t.Fatal("expected alias hit")
		}
		if result.ProductID == nil || *result.ProductID != "P1" {
			t.Errorf("ProductID = %v, want P1", result.ProductID)
		}
		if result.MatchScore != 100 {
			t.Errorf("MatchScore = %d, want 100", result.MatchScore)
		}
		if result.MatchedName == nil || *result.MatchedName != "Pork Belly (Fresh)" {
			t.Errorf("MatchedName = %v, want catalog name", result.MatchedName)
		}
	})

	t.Run("no normalization applied to the alias key", func(t *testing.T) {
		aliases := domain.AliasSet{"pork belly (fresh)": "P1"}
		// Same name without the parenthetical would exact-match, but the
		// alias itself only fires verbatim
		if _, ok := MatchAlias("pork belly", aliases, catalog); ok {
			t.Error("expected alias miss for non-verbatim variant")
		}
	})

	t.Run("stale alias falls through", func(t *testing.T) {
		aliases := domain.AliasSet{"old pork": "P99"}
		if _, ok := MatchAlias("old pork", aliases, catalog); ok {
			t.Error("expected miss when product no longer in catalog")
		}
	})

	t.Run("empty name never hits", func(t *testing.T) {
		aliases := domain.AliasSet{"": "P1"}
		if _, ok := MatchAlias("   ", aliases, catalog); ok {
			t.Error("expected miss for empty name")
		}
	})

	t.Run("empty alias set", func(t *testing.T) {
		if _, ok := MatchAlias("pork belly", domain.AliasSet{}, catalog); ok {
			t.Error("expected miss on empty alias set")
		}
	})
}
