package usecase

import (
	"strings"

	"github.com/invoiceagent/backend/internal/domain"
)

// KeyCollision records a variant key that a later catalog entry could not
// claim because an earlier entry already owned it. The later product is
// silently shadowed for that key; the diagnostic exists so data-quality
// issues in the catalog can be detected.
type KeyCollision struct {
	Key        string
	OwnerID    string
	ShadowedID string
}

// CatalogIndex is an exact-lookup index over the catalog built from every
// name variant (individual slash-separated parts, the space-joined form and
// the separator-free concatenation).
type CatalogIndex struct {
	keys       map[string]domain.CatalogEntry
	collisions []KeyCollision
}

// BuildIndex deduplicates the catalog by raw product name (first occurrence
// wins) and registers each surviving entry under all of its variant keys.
// The first entry to claim a key wins; later claims by a different product
// are recorded as collisions.
func BuildIndex(entries []domain.CatalogEntry) *CatalogIndex {
	idx := &CatalogIndex{keys: make(map[string]domain.CatalogEntry)}
	seenNames := make(map[string]bool, len(entries))

	for _, entry := range entries {
		if entry.ProductName == "" || seenNames[entry.ProductName] {
			continue
		}
		seenNames[entry.ProductName] = true

		for _, key := range variantKeys(entry.ProductName) {
			owner, exists := idx.keys[key]
			if exists {
				if owner.ProductID != entry.ProductID {
					idx.collisions = append(idx.collisions, KeyCollision{
						Key:        key,
						OwnerID:    owner.ProductID,
						ShadowedID: entry.ProductID,
					})
				}
				continue
			}
			idx.keys[key] = entry
		}
	}

	return idx
}

// variantKeys returns the deduplicated lookup keys for one catalog name:
// every individual part, the parts joined with a space (invoices that write
// the sub-products as one phrase) and the separator-free join.
func variantKeys(name string) []string {
	parts, concatenated := Variants(name)

	keys := make([]string, 0, len(parts)+2)
	seen := make(map[string]bool, len(parts)+2)
	add := func(k string) {
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		keys = append(keys, k)
	}

	for _, part := range parts {
		add(part)
	}
	add(strings.Join(parts, " "))
	add(concatenated)
	return keys
}

// Lookup resolves a normalized query via exact map lookup
func (idx *CatalogIndex) Lookup(normalizedQuery string) (domain.CatalogEntry, bool) {
	entry, ok := idx.keys[normalizedQuery]
	return entry, ok
}

// Collisions returns the shadowed variant keys recorded during the build
func (idx *CatalogIndex) Collisions() []KeyCollision {
	return idx.collisions
}

// Size returns the number of registered lookup keys
func (idx *CatalogIndex) Size() int {
	return len(idx.keys)
}
