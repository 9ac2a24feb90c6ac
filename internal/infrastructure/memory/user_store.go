package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore usuarios en memoria, email único sin distinguir mayúsculas.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]entity.User
	byEmail map[string]string
}

// NewUserStore construye un store vacío.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]entity.User),
		byEmail: make(map[string]string),
	}
}

// Create persiste un nuevo usuario.
func (s *UserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return domain.ErrUserAlreadyExists
	}
	s.byID[user.ID] = *user
	s.byEmail[key] = user.ID
	return nil
}

// FindByID obtiene un usuario por ID.
func (s *UserStore) FindByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// FindByEmail obtiene un usuario por email.
func (s *UserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	u := s.byID[id]
	return &u, nil
}
