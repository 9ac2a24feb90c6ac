package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/hierarchy"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

// UseCase operaciones de jerarquía de categorías, siempre acotadas a un owner.
type UseCase struct {
	repo  repository.CategoryRepository
	tx    TxRunner
	now   func() time.Time
	newID func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CategoryRepository, tx TxRunner) *UseCase {
	return &UseCase{repo: repo, tx: tx, now: time.Now, newID: uuid.NewString}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// WithIDGenerator reemplaza el generador de ids (tests con salida fija).
func (uc *UseCase) WithIDGenerator(newID func() string) *UseCase {
	uc.newID = newID
	return uc
}

// Create crea una categoría raíz o hija.
// ErrConflict si el nombre ya existe para el owner; ErrParentNotFound si parent_id no es del owner.
func (uc *UseCase) Create(ctx context.Context, ownerID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, err := uc.repo.FindByOwnerAndName(ctx, ownerID, in.Name, "")
	if err != nil {
		return nil, fmt.Errorf("buscar nombre: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	var parentID *string
	if in.ParentID != nil {
		parent, err := uc.repo.FindByID(ctx, ownerID, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("buscar padre: %w", err)
		}
		if parent == nil {
			return nil, domain.ErrParentNotFound
		}
		id := parent.ID
		parentID = &id
	}

	now := uc.now()
	c := &entity.Category{
		ID:        uc.newID(),
		OwnerID:   ownerID,
		ParentID:  parentID,
		Name:      in.Name,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear categoría: %w", err)
	}
	return ToCategoryResponse(c), nil
}

// List devuelve cada raíz del owner con la lista plana de todos sus descendientes.
// ErrNotFound si el owner no tiene categorías.
func (uc *UseCase) List(ctx context.Context, ownerID string) ([]dto.CategoryTreeResponse, error) {
	trees, err := hierarchy.BuildTree(ctx, uc.repo, ownerID)
	if err != nil {
		return nil, fmt.Errorf("armar árbol: %w", err)
	}
	if len(trees) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]dto.CategoryTreeResponse, 0, len(trees))
	for _, t := range trees {
		node := dto.CategoryTreeResponse{
			CategoryResponse: *ToCategoryResponse(t.Root),
			SubCategories:    make([]dto.CategoryResponse, 0, len(t.Descendants)),
		}
		for _, d := range t.Descendants {
			node.SubCategories = append(node.SubCategories, *ToCategoryResponse(d))
		}
		out = append(out, node)
	}
	return out, nil
}

// ListNested igual que List pero con el árbol anidado padre -> hijos directos.
func (uc *UseCase) ListNested(ctx context.Context, ownerID string) ([]dto.CategoryNodeResponse, error) {
	nodes, err := hierarchy.BuildNestedTree(ctx, uc.repo, ownerID)
	if err != nil {
		return nil, fmt.Errorf("armar árbol: %w", err)
	}
	if len(nodes) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]dto.CategoryNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toNodeResponse(n))
	}
	return out, nil
}

// Update cambia nombre y/o estado. Un cambio de estado se propaga a todos los descendientes.
// Activar una categoría cuyo padre no está activo devuelve ErrInvalidState.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateCategoryRequest) (*dto.UpdateCategoryResult, error) {
	current, err := uc.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar categoría: %w", err)
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		dup, err := uc.repo.FindByOwnerAndName(ctx, ownerID, *in.Name, id)
		if err != nil {
			return nil, fmt.Errorf("buscar nombre: %w", err)
		}
		if dup != nil {
			return nil, domain.ErrConflict
		}
	}

	if in.Status != nil && *in.Status == entity.StatusActive && !current.IsRoot() {
		parent, err := uc.repo.FindByID(ctx, ownerID, *current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("buscar padre: %w", err)
		}
		// Se compara contra el estado pedido, no contra "active" fijo.
		if parent != nil && parent.Status != *in.Status {
			return nil, domain.ErrInvalidState
		}
	}

	result := &dto.UpdateCategoryResult{}
	err = uc.tx.RunCategories(ctx, func(repo repository.CategoryRepository) error {
		now := uc.now()
		updated, err := repo.UpdateOne(ctx, ownerID, id, entity.CategoryPatch{
			Name:      in.Name,
			Status:    in.Status,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("actualizar categoría: %w", err)
		}
		if updated == nil {
			return domain.ErrNotFound
		}
		result.Category = *ToCategoryResponse(updated)

		descendants, err := hierarchy.ResolveDescendants(ctx, repo, current.ID)
		if err != nil {
			return fmt.Errorf("resolver descendientes: %w", err)
		}
		if in.Status == nil || *in.Status == current.Status || len(descendants) == 0 {
			return nil
		}
		n, err := repo.UpdateMany(ctx, descendants, entity.CategoryPatch{Status: in.Status, UpdatedAt: now})
		if err != nil {
			return fmt.Errorf("cascada de estado: %w", err)
		}
		result.Cascaded = true
		result.Affected = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete elimina la categoría y reasigna sus hijos directos a su propio padre
// (nil los convierte en raíces). Los nietos no se tocan. Devuelve cuántos hijos se movieron.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	current, err := uc.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return 0, fmt.Errorf("buscar categoría: %w", err)
	}
	if current == nil {
		return 0, domain.ErrNotFound
	}

	var moved int64
	err = uc.tx.RunCategories(ctx, func(repo repository.CategoryRepository) error {
		children, err := repo.FindChildren(ctx, []string{current.ID})
		if err != nil {
			return fmt.Errorf("buscar hijos: %w", err)
		}
		ids := make([]string, 0, len(children))
		for _, c := range children {
			if c.OwnerID == ownerID {
				ids = append(ids, c.ID)
			}
		}
		// Los hijos se mueven antes de borrar para no violar la FK parent_id.
		if len(ids) > 0 {
			moved, err = repo.UpdateMany(ctx, ids, entity.CategoryPatch{
				SetParent: true,
				ParentID:  current.ParentID,
				UpdatedAt: uc.now(),
			})
			if err != nil {
				return fmt.Errorf("reasignar hijos: %w", err)
			}
		}
		deleted, err := repo.DeleteOne(ctx, ownerID, current.ID)
		if err != nil {
			return fmt.Errorf("eliminar categoría: %w", err)
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// ToCategoryResponse convierte la entidad a su DTO de salida.
func ToCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	var parentID *string
	if c.ParentID != nil {
		p := *c.ParentID
		parentID = &p
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Status:    c.Status,
		ParentID:  parentID,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toNodeResponse(n *hierarchy.Node) dto.CategoryNodeResponse {
	out := dto.CategoryNodeResponse{
		CategoryResponse: *ToCategoryResponse(n.Category),
		SubCategories:    make([]dto.CategoryNodeResponse, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		out.SubCategories = append(out.SubCategories, toNodeResponse(child))
	}
	return out
}
