package catalog

import (
	"fmt"
	"portfolioanalyzer/internal/metrics"
	"sync/atomic"
)

// Store holds the catalog in use. Readers grab the current pointer once
// per request; reloads replace the whole table with one atomic swap so
// nobody ever sees a half-updated catalog.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) (*Store, error) {
	s := &Store{}
	if err := s.Swap(c); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Swap validates the new catalog before publishing it. The previous
// catalog is left untouched if validation fails.
func (s *Store) Swap(c *Catalog) error {
	if err := c.Validate(); err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("refusing to swap in catalog: %w", err)
	}
	s.current.Store(c)
	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	return nil
}
