package category

import (
	"context"

	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del store, pasando un repositorio atado a ella.
// Update (actualización + cascada) y Delete (reasignación + borrado) la usan para ser atómicos
// en los stores que lo soportan.
type TxRunner interface {
	RunCategories(ctx context.Context, fn func(repo repository.CategoryRepository) error) error
}
