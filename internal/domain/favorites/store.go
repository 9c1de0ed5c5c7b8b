// internal/domain/favorites/store.go
package favorites

import (
	"context"
	"fmt"
	"sync"
)

// Store holds the shopper's favorited product identifiers. It mirrors the
// cart's persistence pattern: a set serialized as JSON under a fixed key.
type Store struct {
	mu          sync.Mutex
	persistence Persistence
}

// NewStore creates a favorites store backed by the given persistence port
func NewStore(persistence Persistence) *Store {
	return &Store{persistence: persistence}
}

// List returns the favorited product IDs in the order they were added
func (s *Store) List(ctx context.Context) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistence.Load(ctx)
}

// Contains reports whether the product is favorited
func (s *Store) Contains(ctx context.Context, productID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.persistence.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

// Add favorites a product; adding an already-favorited product is a no-op
func (s *Store) Add(ctx context.Context, productID uint) error {
	return s.mutate(ctx, func(ids []uint) []uint {
		for _, id := range ids {
			if id == productID {
				return ids
			}
		}
		return append(ids, productID)
	})
}

// Remove unfavorites a product
func (s *Store) Remove(ctx context.Context, productID uint) error {
	return s.mutate(ctx, func(ids []uint) []uint {
		kept := ids[:0]
		for _, id := range ids {
			if id != productID {
				kept = append(kept, id)
			}
		}
		return kept
	})
}

// Clear removes all favorites
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistence.Save(ctx, []uint{})
}

func (s *Store) mutate(ctx context.Context, fn func(ids []uint) []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.persistence.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	if err := s.persistence.Save(ctx, fn(ids)); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
