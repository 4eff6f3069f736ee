package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/invoiceagent/backend/internal/domain"
)

var aliasHeader = []string{"alias_name", "product_id"}

// AliasStore persists the learned alias set as a two-column CSV file.
// Updates are read-modify-write over shared state, serialized by a
// single-writer mutex; the file is rewritten in full via an atomic rename.
type AliasStore struct {
	path string
	mu   sync.Mutex
}

// NewAliasStore creates an alias store for the given CSV file
func NewAliasStore(path string) *AliasStore {
	return &AliasStore{path: path}
}

// Snapshot reads the full alias set. A missing file is not an error and
// yields an empty set.
func (s *AliasStore) Snapshot(ctx context.Context) (domain.AliasSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update applies human corrections to the alias set: new aliases are
// inserted, and an alias recorded with a different product is overwritten
// (last correction wins). Returns the number of inserts and overwrites;
// corrections missing either field are skipped.
func (s *AliasStore) Update(ctx context.Context, corrections []domain.Correction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	aliases, err := s.load()
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, c := range corrections {
		name := strings.TrimSpace(c.OriginalName)
		productID := strings.TrimSpace(c.ProductID)
		if name == "" || productID == "" {
			continue
		}

		key := domain.AliasKey(name)
		if existing, ok := aliases[key]; ok {
			if existing == productID {
				continue
			}
		}
		aliases[key] = productID
		updated++
	}

	if updated == 0 {
		return 0, nil
	}

	if err := s.save(aliases); err != nil {
		return 0, err
	}

	log.Printf("[ALIAS] recorded %d correction(s), %d aliases total", updated, len(aliases))
	return updated, nil
}

func (s *AliasStore) load() (domain.AliasSet, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return domain.AliasSet{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return domain.AliasSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAliasFormat, err)
	}
	if err := checkHeader(header, aliasHeader); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAliasFormat, err)
	}

	aliases := domain.AliasSet{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAliasFormat, err)
		}
		aliases[domain.AliasKey(record[0])] = record[1]
	}

	return aliases, nil
}

func (s *AliasStore) save(aliases domain.AliasSet) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".aliases-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(aliasHeader); err != nil {
		tmp.Close()
		return err
	}

	// Deterministic file order
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.Write([]string{k, aliases[k]}); err != nil {
			tmp.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
