package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id::text, owner_id::text, parent_id::text, name, status, created_at, updated_at`

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// FindByOwnerAndName busca por nombre exacto dentro del owner; excludeID vacío no excluye nada.
func (r *CategoryRepo) FindByOwnerAndName(ctx context.Context, ownerID, name, excludeID string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = $1 AND name = $2 AND ($3::text = '' OR id::text <> $3::text)
		LIMIT 1`
	return scanCategoryRow(r.q.QueryRow(ctx, query, ownerID, name, excludeID), "find category by name")
}

// FindByID obtiene una categoría del owner. nil si no existe o es de otro owner.
func (r *CategoryRepo) FindByID(ctx context.Context, ownerID, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + `
		FROM categories WHERE id = $1 AND owner_id = $2`
	return scanCategoryRow(r.q.QueryRow(ctx, query, id, ownerID), "find category by id")
}

// FindChildren devuelve en una sola consulta los hijos directos de todos los parentIDs.
func (r *CategoryRepo) FindChildren(ctx context.Context, parentIDs []string) ([]*entity.Category, error) {
	if len(parentIDs) == 0 {
		return []*entity.Category{}, nil
	}
	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE parent_id = ANY($1::uuid[])
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("find children: %w", err)
	}
	return collectCategories(rows, "find children")
}

// FindRoots devuelve las categorías sin padre del owner, por created_at.
func (r *CategoryRepo) FindRoots(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = $1 AND parent_id IS NULL
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find roots: %w", err)
	}
	return collectCategories(rows, "find roots")
}

// Create inserta la categoría. ErrConflict ante nombre duplicado, ErrParentNotFound si el padre no existe.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, owner_id, parent_id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.OwnerID, c.ParentID, c.Name, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrConflict
		case isForeignKeyViolation(err):
			return domain.ErrParentNotFound
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// UpdateOne aplica el patch a la categoría del owner y devuelve la fila resultante (nil si no existe).
func (r *CategoryRepo) UpdateOne(ctx context.Context, ownerID, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	set, args := patchSet(patch, 3)
	if set == "" {
		return r.FindByID(ctx, ownerID, id)
	}
	query := `UPDATE categories SET ` + set + `
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + categoryColumns
	c, err := scanCategoryRow(r.q.QueryRow(ctx, query, append([]any{id, ownerID}, args...)...), "update category")
	if err != nil && isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	return c, err
}

// UpdateMany aplica el patch a todos los ids y devuelve las filas afectadas.
func (r *CategoryRepo) UpdateMany(ctx context.Context, ids []string, patch entity.CategoryPatch) (int64, error) {
	set, args := patchSet(patch, 2)
	if len(ids) == 0 || set == "" {
		return 0, nil
	}
	query := `UPDATE categories SET ` + set + ` WHERE id = ANY($1::uuid[])`
	tag, err := r.q.Exec(ctx, query, append([]any{ids}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("update categories: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOne elimina la categoría del owner; false si no existía.
func (r *CategoryRepo) DeleteOne(ctx context.Context, ownerID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.OwnerID, &c.ParentID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCategoryRow(row pgx.Row, op string) (*entity.Category, error) {
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func collectCategories(rows pgx.Rows, op string) ([]*entity.Category, error) {
	defer rows.Close()
	out := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
