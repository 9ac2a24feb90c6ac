package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, owner_id, parent_id, name, status, created_at, updated_at`

// CategoryRepo implementación de CategoryRepository sobre SQLite (db o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// FindByOwnerAndName busca por nombre exacto dentro del owner; excludeID vacío no excluye nada.
func (r *CategoryRepo) FindByOwnerAndName(ctx context.Context, ownerID, name, excludeID string) (*entity.Category, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+categoryColumns+`
		FROM categories WHERE owner_id = ? AND name = ? AND id <> ? LIMIT 1`,
		ownerID, name, excludeID)
	return scanCategoryRow(row, "find category by name")
}

// FindByID obtiene una categoría del owner. nil si no existe.
func (r *CategoryRepo) FindByID(ctx context.Context, ownerID, id string) (*entity.Category, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+categoryColumns+`
		FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanCategoryRow(row, "find category by id")
}

// FindChildren devuelve los hijos directos de todos los parentIDs en una consulta.
func (r *CategoryRepo) FindChildren(ctx context.Context, parentIDs []string) ([]*entity.Category, error) {
	if len(parentIDs) == 0 {
		return []*entity.Category{}, nil
	}
	args := make([]any, len(parentIDs))
	for i, id := range parentIDs {
		args[i] = id
	}
	rows, err := r.q.QueryContext(ctx, `SELECT `+categoryColumns+`
		FROM categories WHERE parent_id IN (`+placeholders(len(parentIDs))+`)
		ORDER BY created_at, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("find children: %w", err)
	}
	return collectCategories(rows, "find children")
}

// FindRoots devuelve las raíces del owner por created_at.
func (r *CategoryRepo) FindRoots(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+categoryColumns+`
		FROM categories WHERE owner_id = ? AND parent_id IS NULL
		ORDER BY created_at, rowid`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find roots: %w", err)
	}
	return collectCategories(rows, "find roots")
}

// Create inserta la categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, nullable(c.ParentID), c.Name, c.Status, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
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

// UpdateOne aplica el patch y devuelve la fila resultante (nil si no existe).
func (r *CategoryRepo) UpdateOne(ctx context.Context, ownerID, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	set, args := patchSet(patch)
	if set != "" {
		args = append(args, id, ownerID)
		_, err := r.q.ExecContext(ctx, `UPDATE categories SET `+set+` WHERE id = ? AND owner_id = ?`, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrConflict
			}
			return nil, fmt.Errorf("update category: %w", err)
		}
	}
	return r.FindByID(ctx, ownerID, id)
}

// UpdateMany aplica el patch a todos los ids y devuelve las filas afectadas.
func (r *CategoryRepo) UpdateMany(ctx context.Context, ids []string, patch entity.CategoryPatch) (int64, error) {
	set, args := patchSet(patch)
	if len(ids) == 0 || set == "" {
		return 0, nil
	}
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE categories SET `+set+` WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("update categories: %w", err)
	}
	return res.RowsAffected()
}

// DeleteOne elimina la categoría del owner; false si no existía.
func (r *CategoryRepo) DeleteOne(ctx context.Context, ownerID, id string) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func patchSet(p entity.CategoryPatch) (string, []any) {
	var (
		cols []string
		args []any
	)
	if p.Name != nil {
		cols, args = append(cols, "name = ?"), append(args, *p.Name)
	}
	if p.Status != nil {
		cols, args = append(cols, "status = ?"), append(args, *p.Status)
	}
	if p.SetParent {
		cols, args = append(cols, "parent_id = ?"), append(args, nullable(p.ParentID))
	}
	if !p.UpdatedAt.IsZero() {
		cols, args = append(cols, "updated_at = ?"), append(args, formatTime(p.UpdatedAt))
	}
	return strings.Join(cols, ", "), args
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*entity.Category, error) {
	var (
		c                    entity.Category
		parentID             sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &parentID, &c.Name, &c.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		p := parentID.String
		c.ParentID = &p
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCategoryRow(row *sql.Row, op string) (*entity.Category, error) {
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func collectCategories(rows *sql.Rows, op string) ([]*entity.Category, error) {
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
