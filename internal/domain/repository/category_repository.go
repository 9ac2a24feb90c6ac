package repository

import (
	"context"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las operaciones se limitan al owner salvo FindChildren y UpdateMany,
// cuyos ids el llamador debe obtener a partir de categorías del mismo owner.
// Las búsquedas devuelven (nil, nil) cuando no hay resultado.
type CategoryRepository interface {
	FindByOwnerAndName(ctx context.Context, ownerID, name, excludeID string) (*entity.Category, error)
	FindByID(ctx context.Context, ownerID, id string) (*entity.Category, error)
	FindChildren(ctx context.Context, parentIDs []string) ([]*entity.Category, error)
	FindRoots(ctx context.Context, ownerID string) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	UpdateOne(ctx context.Context, ownerID, id string, patch entity.CategoryPatch) (*entity.Category, error)
	UpdateMany(ctx context.Context, ids []string, patch entity.CategoryPatch) (int64, error)
	DeleteOne(ctx context.Context, ownerID, id string) (bool, error)
}
