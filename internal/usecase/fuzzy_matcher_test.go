package usecase

import (
	"testing"

	"github.com/invoiceagent/backend/internal/domain"
)

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"identical strings", "pork belly", "pork belly", 100},
		{"token order ignored", "belly pork fresh", "fresh pork belly", 100},
		{"duplicate tokens ignored", "pork pork belly", "pork belly", 100},
		{"subset scores 100", "fresh pork belly", "pork belly fresh premium", 100},
		{"single token edit distance", "abcd", "abce", 75},
		{"no overlap", "zzzzzz", "abcdef", 0},
		{"empty query", "", "pork belly", 0},
		{"both empty", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSetRatio(tt.a, tt.b); got != tt.expected {
				t.Errorf("TokenSetRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestMatchFuzzy(t *testing.T) {
	t.Run("confirms best candidate at or above threshold", func(t *testing.T) {
		catalog := []domain.CatalogEntry{
			{ProductID: "P1", ProductName: "Pork Belly (Fresh)", Unit: "kg", Currency: "TWD"},
			{ProductID: "P2", ProductName: "Chicken Thigh", Unit: "kg", Currency: "TWD"},
		}
		result := MatchFuzzy("pork belly fresh, premium", catalog, FuzzyConfig{})
		if result.ProductID == nil || *result.ProductID != "P1" {
			t.Fatalf("ProductID = %v, want P1", result.ProductID)
		}
		if result.MatchScore != 100 {
			t.Errorf("MatchScore = %d, want 100", result.MatchScore)
		}
		if result.PossibleMatches != nil {
			t.Errorf("PossibleMatches = %v, want nil for a confirmed match", result.PossibleMatches)
		}
	})

	t.Run("candidate scoring exactly threshold is confirmed", func(t *testing.T) {
		catalog := []domain.CatalogEntry{{ProductID: "P1", ProductName: "abce"}}
		result := MatchFuzzy("abcd", catalog, FuzzyConfig{Threshold: 75, SuggestionFloor: 50})
		if result.ProductID == nil || *result.ProductID != "P1" {
			t.Fatalf("ProductID = %v, want P1 at exact threshold", result.ProductID)
		}
		if result.MatchScore != 75 {
			t.Errorf("MatchScore = %d, want 75", result.MatchScore)
		}
	})

	t.Run("candidate one below threshold is only a suggestion", func(t *testing.T) {
		catalog := []domain.CatalogEntry{{ProductID: "P1", ProductName: "abce"}}
		result := MatchFuzzy("abcd", catalog, FuzzyConfig{Threshold: 76, SuggestionFloor: 50})
		if result.ProductID != nil {
			t.Fatalf("ProductID = %v, want nil below threshold", result.ProductID)
		}
		if len(result.PossibleMatches) != 1 {
			t.Fatalf("got %d suggestions, want 1", len(result.PossibleMatches))
		}
		if result.PossibleMatches[0].MatchScore != 75 {
			t.Errorf("suggestion score = %d, want 75", result.PossibleMatches[0].MatchScore)
		}
	})

	t.Run("candidate scoring exactly the floor is kept", func(t *testing.T) {
		catalog := []domain.CatalogEntry{{ProductID: "P1", ProductName: "abce"}}
		result := MatchFuzzy("abcd", catalog, FuzzyConfig{Threshold: 90, SuggestionFloor: 75})
		if len(result.PossibleMatches) != 1 {
			t.Errorf("got %d suggestions, want 1 at exact floor", len(result.PossibleMatches))
		}
	})

	t.Run("candidate one below the floor is dropped entirely", func(t *testing.T) {
		catalog := []domain.CatalogEntry{{ProductID: "P1", ProductName: "abce"}}
		result := MatchFuzzy("abcd", catalog, FuzzyConfig{Threshold: 90, SuggestionFloor: 76})
		if result.MatchScore != 0 {
			t.Errorf("MatchScore = %d, want 0", result.MatchScore)
		}
		if len(result.PossibleMatches) != 0 {
			t.Errorf("PossibleMatches = %v, want empty", result.PossibleMatches)
		}
	})

	t.Run("all surviving candidates returned sorted by score", func(t *testing.T) {
		catalog := []domain.CatalogEntry{
			{ProductID: "P2", ProductName: "abcdxx", Unit: "kg"},
			{ProductID: "P1", ProductName: "abcdex", Unit: "kg"},
		}
		result := MatchFuzzy("abcdef", catalog, FuzzyConfig{Threshold: 85, SuggestionFloor: 60})
		if result.ProductID != nil {
			t.Fatalf("ProductID = %v, want nil", result.ProductID)
		}
		if len(result.PossibleMatches) != 2 {
			t.Fatalf("got %d suggestions, want 2", len(result.PossibleMatches))
		}
		if result.PossibleMatches[0].ProductID != "P1" || result.PossibleMatches[0].MatchScore != 83 {
			t.Errorf("first suggestion = %+v, want P1 with score 83", result.PossibleMatches[0])
		}
		if result.PossibleMatches[1].ProductID != "P2" || result.PossibleMatches[1].MatchScore != 67 {
			t.Errorf("second suggestion = %+v, want P2 with score 67", result.PossibleMatches[1])
		}
		if result.MatchScore != 83 {
			t.Errorf("MatchScore = %d, want best candidate score 83", result.MatchScore)
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		catalog := []domain.CatalogEntry{
			{ProductID: "P1", ProductName: "Pork Belly"},
			{ProductID: "P2", ProductName: "Pork Belly Slice"},
		}
		result := MatchFuzzy("pork belly", catalog, FuzzyConfig{})
		if result.ProductID == nil || *result.ProductID != "P1" {
			t.Errorf("ProductID = %v, want first-seen P1 on tie", result.ProductID)
		}
	})

	t.Run("duplicate catalog names deduplicated first-seen", func(t *testing.T) {
		catalog := []domain.CatalogEntry{
			{ProductID: "P1", ProductName: "Pork Belly"},
			{ProductID: "P2", ProductName: "Pork Belly"},
		}
		result := MatchFuzzy("pork belly", catalog, FuzzyConfig{})
		if result.ProductID == nil || *result.ProductID != "P1" {
			t.Errorf("ProductID = %v, want P1", result.ProductID)
		}
	})

	t.Run("empty name short-circuits", func(t *testing.T) {
		catalog := []domain.CatalogEntry{{ProductID: "P1", ProductName: "Pork Belly"}}
		result := MatchFuzzy("  ", catalog, FuzzyConfig{})
		if result.MatchScore != 0 || result.ProductID != nil || result.PossibleMatches != nil {
			t.Errorf("expected empty result, got %+v", result)
		}
	})

	t.Run("empty catalog is a definitive non-match", func(t *testing.T) {
		result := MatchFuzzy("pork belly", nil, FuzzyConfig{})
		if result.MatchScore != 0 || len(result.PossibleMatches) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}
