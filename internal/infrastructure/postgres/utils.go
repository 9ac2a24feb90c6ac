package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// patchSet arma la cláusula SET para un CategoryPatch. Los placeholders empiezan en $first.
// Devuelve "" si el patch no modifica nada.
func patchSet(p entity.CategoryPatch, first int) (string, []any) {
	var (
		cols []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		cols = append(cols, fmt.Sprintf("%s = $%d", col, first+len(args)-1))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.SetParent {
		add("parent_id", p.ParentID)
	}
	if !p.UpdatedAt.IsZero() {
		add("updated_at", p.UpdatedAt)
	}
	return strings.Join(cols, ", "), args
}
