package domain

import "encoding/json"

// MatchMethod selects the matching strategy for an invoice run
type MatchMethod string

const (
	// MatchMethodBasic uses exact lookup against the catalog index
	MatchMethodBasic MatchMethod = "basic"
	// MatchMethodFuzzy uses token-set similarity scoring
	MatchMethodFuzzy MatchMethod = "fuzzy"
)

// Item review statuses consumed by the human-review surface
const (
	StatusMatched        = "matched"
	StatusReviewRequired = "review_required"
)

// Candidate is a single fuzzy-match suggestion surfaced for human review
type Candidate struct {
	ProductID   string `json:"product_id"`
	MatchedName string `json:"matched_name"`
	Unit        string `json:"unit"`
	Currency    string `json:"currency,omitempty"`
	MatchScore  int    `json:"match_score"`
}

// MatchResult is the outcome of matching one product name against the
// catalog. ProductID and MatchedName are nil on a miss. PossibleMatches is
// populated only when no candidate reached the confirmation threshold but
// at least one reached the suggestion floor.
type MatchResult struct {
	ProductID       *string
	MatchedName     *string
	Unit            string
	Currency        string
	MatchScore      int
	PossibleMatches []Candidate
}

// MatchedLineItem is the immutable output record for one processed line
// item. The input LineItem is never mutated; its product_name is carried
// over as OriginalName.
type MatchedLineItem struct {
	OriginalName    string
	ProductID       *string
	MatchedName     *string
	Unit            string
	Currency        string
	MatchScore      int
	Status          string
	PossibleMatches []Candidate
	Quantity        *float64
	UnitPrice       *float64
	Subtotal        *float64
	Extra           map[string]json.RawMessage
}

// MarshalJSON emits the enriched item. ProductID and MatchedName serialize
// as null on a miss, matching the wire contract of the review surface.
func (m MatchedLineItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(m.Extra)+10)
	for k, v := range m.Extra {
		out[k] = v
	}
	out["original_name"] = m.OriginalName
	out["product_id"] = m.ProductID
	out["matched_name"] = m.MatchedName
	if m.Unit != "" {
		out["unit"] = m.Unit
	}
	if m.Currency != "" {
		out["currency"] = m.Currency
	}
	out["match_score"] = m.MatchScore
	if m.Status != "" {
		out["status"] = m.Status
	}
	if m.PossibleMatches != nil {
		out["possible_matches"] = m.PossibleMatches
	}
	if m.Quantity != nil {
		out["quantity"] = *m.Quantity
	}
	if m.UnitPrice != nil {
		out["unit_price"] = *m.UnitPrice
	}
	if m.Subtotal != nil {
		out["subtotal"] = *m.Subtotal
	}
	return json.Marshal(out)
}

// StatusFor derives the review status from the match outcome
func StatusFor(productID *string) string {
	if productID == nil {
		return StatusReviewRequired
	}
	return StatusMatched
}

// ProcessingStats summarizes one invoice run. Score statistics are present
// only for fuzzy runs, where every item carries a similarity score.
type ProcessingStats struct {
	TotalItems        int      `json:"total_items"`
	MatchedItems      int      `json:"matched_items"`
	UnmatchedItems    int      `json:"unmatched_items"`
	AverageMatchScore *float64 `json:"average_match_score,omitempty"`
	MinMatchScore     *int     `json:"min_match_score,omitempty"`
	MaxMatchScore     *int     `json:"max_match_score,omitempty"`
}
