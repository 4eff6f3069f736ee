package domain

import "strings"

// CatalogEntry represents a single product in the canonical catalog
type CatalogEntry struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Unit        string `json:"unit"`
	Currency    string `json:"currency"`
}

// CatalogSnapshot is one consistent view of the catalog. A snapshot is
// immutable once built; every invoice is matched against exactly one snapshot.
type CatalogSnapshot struct {
	Entries []CatalogEntry
}

// Entry returns the catalog entry with the given product ID, if present
func (s *CatalogSnapshot) Entry(productID string) (CatalogEntry, bool) {
	if s == nil {
		return CatalogEntry{}, false
	}
	for _, e := range s.Entries {
		if e.ProductID == productID {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// AliasSet maps previously confirmed free-text name variants to product IDs.
// Keys are stored lowercased and trimmed; lookups are case-insensitive.
type AliasSet map[string]string

// AliasKey canonicalizes a raw name into the alias map key
func AliasKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the product ID recorded for the given raw name, if any
func (a AliasSet) Lookup(name string) (string, bool) {
	id, ok := a[AliasKey(name)]
	return id, ok
}

// Correction is a human-confirmed pairing of an observed free-text name
// with the canonical product it refers to
type Correction struct {
	OriginalName string `json:"original_name"`
	ProductID    string `json:"product_id"`
}
