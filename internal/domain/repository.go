package domain

import "context"

// CatalogRepository provides consistent catalog snapshots. Implementations
// may cache; Snapshot must always return one internally consistent view and
// Reload forces the next view to be rebuilt from the backing store.
type CatalogRepository interface {
	Snapshot(ctx context.Context) (*CatalogSnapshot, error)
	Reload(ctx context.Context) (*CatalogSnapshot, error)
}

// AliasRepository persists the learned alias set. Update is a
// read-modify-write over shared state and must be serialized by the
// implementation.
type AliasRepository interface {
	Snapshot(ctx context.Context) (AliasSet, error)
	Update(ctx context.Context, corrections []Correction) (int, error)
}
