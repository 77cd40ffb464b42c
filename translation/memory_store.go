package translation

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps entities and translation rows in process. Rows are held
// by reference, so it suits tests and DB-less setups where the caller owns
// the instances.
type MemoryStore[B Entity[T], T Translation] struct {
	mu           sync.RWMutex
	entities     map[uuid.UUID]B
	translations map[uuid.UUID][]T
	owners       map[uuid.UUID]uuid.UUID
	ownerOf      func(T) uuid.UUID
}

// NewMemoryStore builds an empty store. ownerOf reads the owner key of a row.
func NewMemoryStore[B Entity[T], T Translation](ownerOf func(T) uuid.UUID) *MemoryStore[B, T] {
	return &MemoryStore[B, T]{
		entities:     make(map[uuid.UUID]B),
		translations: make(map[uuid.UUID][]T),
		owners:       make(map[uuid.UUID]uuid.UUID),
		ownerOf:      ownerOf,
	}
}

func (s *MemoryStore[B, T]) SaveEntity(_ context.Context, entity B) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entity.GetID() == uuid.Nil {
		entity.SetID(uuid.New())
	}
	s.entities[entity.GetID()] = entity
	return nil
}

func (s *MemoryStore[B, T]) SaveTranslation(_ context.Context, row T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row.GetID() == uuid.Nil {
		row.SetID(uuid.New())
	}
	owner := s.ownerOf(row)
	if previous, ok := s.owners[row.GetID()]; ok && previous != owner {
		s.translations[previous] = slices.DeleteFunc(s.translations[previous], func(existing T) bool {
			return existing.GetID() == row.GetID()
		})
	}
	rows := s.translations[owner]
	idx := slices.IndexFunc(rows, func(existing T) bool {
		return existing.GetID() == row.GetID()
	})
	if idx >= 0 {
		rows[idx] = row
	} else {
		rows = append(rows, row)
	}
	s.translations[owner] = rows
	s.owners[row.GetID()] = owner
	return nil
}

func (s *MemoryStore[B, T]) LoadTranslations(_ context.Context, entity B) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.translations[entity.GetID()]), nil
}

// Entity returns a stored entity by key.
func (s *MemoryStore[B, T]) Entity(id uuid.UUID) (B, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.entities[id]
	return entity, ok
}

// Count returns how many translation rows are stored for owner.
func (s *MemoryStore[B, T]) Count(owner uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.translations[owner])
}
