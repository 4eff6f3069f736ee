// Package csvstore persists the product catalog and the learned alias set
// as plain tabular CSV files, read fully into memory and rewritten in full.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/invoiceagent/backend/internal/domain"
)

var catalogHeader = []string{"product_id", "product_name", "unit", "currency"}

// CatalogStore loads the catalog CSV and caches the parsed snapshot.
// The cache is invalidated when the file's mtime changes or the TTL
// expires; matching always sees one consistent snapshot.
type CatalogStore struct {
	path string
	ttl  time.Duration

	mu       sync.RWMutex
	snapshot *domain.CatalogSnapshot
	loadedAt time.Time
	modTime  time.Time
}

// NewCatalogStore creates a catalog store for the given CSV file.
// A non-positive ttl disables time-based expiry.
func NewCatalogStore(path string, ttl time.Duration) *CatalogStore {
	return &CatalogStore{path: path, ttl: ttl}
}

// Snapshot returns the cached snapshot, reloading it when stale
func (s *CatalogStore) Snapshot(ctx context.Context) (*domain.CatalogSnapshot, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	fresh := s.isFresh()
	s.mu.RUnlock()

	if snapshot != nil && fresh {
		return snapshot, nil
	}
	return s.Reload(ctx)
}

// Reload rebuilds the snapshot from the backing file
func (s *CatalogStore) Reload(ctx context.Context) (*domain.CatalogSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, modTime, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	s.snapshot = &domain.CatalogSnapshot{Entries: entries}
	s.loadedAt = time.Now()
	s.modTime = modTime

	log.Printf("[CATALOG] loaded %d entries from %s", len(entries), s.path)
	return s.snapshot, nil
}

// isFresh must be called with at least a read lock held
func (s *CatalogStore) isFresh() bool {
	if s.snapshot == nil {
		return false
	}
	if s.ttl > 0 && time.Since(s.loadedAt) >= s.ttl {
		return false
	}
	fi, err := os.Stat(s.path)
	if err != nil {
		return false
	}
	return fi.ModTime().Equal(s.modTime)
}

func (s *CatalogStore) load() ([]domain.CatalogEntry, time.Time, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, err
	}

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: missing header row", domain.ErrInvalidCatalogFormat)
	}
	if err := checkHeader(header, catalogHeader); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalogFormat, err)
	}

	var entries []domain.CatalogEntry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalogFormat, err)
		}
		entries = append(entries, domain.CatalogEntry{
			ProductID:   record[0],
			ProductName: record[1],
			Unit:        record[2],
			Currency:    record[3],
		})
	}

	return entries, fi.ModTime(), nil
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected columns %v, got %v", want, got)
	}
	for i, col := range want {
		if strings.ToLower(strings.TrimSpace(got[i])) != col {
			return fmt.Errorf("expected columns %v, got %v", want, got)
		}
	}
	return nil
}
