package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryStore)(nil)

// CategoryStore arena en memoria de categorías indexada por id.
// Devuelve siempre copias: los llamadores nunca comparten punteros con el store.
type CategoryStore struct {
	mu   sync.RWMutex
	byID map[string]*entity.Category
	seq  map[string]uint64 // orden de inserción, desempata created_at
	next uint64
}

// NewCategoryStore construye un store vacío.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		byID: make(map[string]*entity.Category),
		seq:  make(map[string]uint64),
	}
}

// FindByOwnerAndName busca por nombre dentro del owner, ignorando excludeID si no está vacío.
func (s *CategoryStore) FindByOwnerAndName(_ context.Context, ownerID, name, excludeID string) (*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.byID {
		if c.OwnerID == ownerID && c.Name == name && c.ID != excludeID {
			return c.Clone(), nil
		}
	}
	return nil, nil
}

// FindByID obtiene una categoría del owner.
func (s *CategoryStore) FindByID(_ context.Context, ownerID, id string) (*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return c.Clone(), nil
}

// FindChildren devuelve los hijos directos de cualquiera de parentIDs.
func (s *CategoryStore) FindChildren(_ context.Context, parentIDs []string) ([]*entity.Category, error) {
	set := make(map[string]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		set[id] = struct{}{}
	}
	return s.filter(func(c *entity.Category) bool {
		if c.IsRoot() {
			return false
		}
		_, ok := set[*c.ParentID]
		return ok
	}), nil
}

// FindRoots devuelve las categorías sin padre del owner.
func (s *CategoryStore) FindRoots(_ context.Context, ownerID string) ([]*entity.Category, error) {
	return s.filter(func(c *entity.Category) bool {
		return c.OwnerID == ownerID && c.IsRoot()
	}), nil
}

// Create inserta la categoría. El nombre es único por owner.
func (s *CategoryStore) Create(_ context.Context, category *entity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[category.ID]; exists {
		return domain.ErrConflict
	}
	for _, c := range s.byID {
		if c.OwnerID == category.OwnerID && c.Name == category.Name {
			return domain.ErrConflict
		}
	}
	s.byID[category.ID] = category.Clone()
	s.next++
	s.seq[category.ID] = s.next
	return nil
}

// UpdateOne aplica patch a la categoría del owner y devuelve el estado final (nil si no existe).
func (s *CategoryStore) UpdateOne(_ context.Context, ownerID, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	if patch.Name != nil {
		for _, other := range s.byID {
			if other.ID != id && other.OwnerID == ownerID && other.Name == *patch.Name {
				return nil, domain.ErrConflict
			}
		}
	}
	patch.Apply(c)
	return c.Clone(), nil
}

// UpdateMany aplica patch a todos los ids existentes y devuelve cuántos cambió.
func (s *CategoryStore) UpdateMany(_ context.Context, ids []string, patch entity.CategoryPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if c, ok := s.byID[id]; ok {
			patch.Apply(c)
			n++
		}
	}
	return n, nil
}

// DeleteOne elimina la categoría del owner; false si no existía.
func (s *CategoryStore) DeleteOne(_ context.Context, ownerID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok || c.OwnerID != ownerID {
		return false, nil
	}
	delete(s.byID, id)
	delete(s.seq, id)
	return true, nil
}

// RunCategories ejecuta fn sobre el mismo store. No hay aislamiento: cada operación
// de fn toma el lock por separado, igual que fuera de una transacción.
func (s *CategoryStore) RunCategories(ctx context.Context, fn func(repo repository.CategoryRepository) error) error {
	return fn(s)
}

// filter devuelve copias ordenadas por created_at y orden de inserción.
func (s *CategoryStore) filter(keep func(*entity.Category) bool) []*entity.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Category, 0)
	for _, c := range s.byID {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out
}
