package hierarchy

import (
	"context"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

// ResolveDescendants devuelve los ids de todos los descendientes de rootID,
// en orden por niveles y sin repetidos. Vacío si no tiene hijos.
func ResolveDescendants(ctx context.Context, finder ChildFinder, rootID string) ([]string, error) {
	f, err := expand(ctx, finder, []*entity.Category{{ID: rootID}})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(f.order))
	for _, c := range f.order {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
