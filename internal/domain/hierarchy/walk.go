package hierarchy

import (
	"context"
	"fmt"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

// ChildFinder es la parte del store que necesita el recorrido por niveles.
type ChildFinder interface {
	FindChildren(ctx context.Context, parentIDs []string) ([]*entity.Category, error)
}

// TreeSource añade la búsqueda de raíces de un owner.
type TreeSource interface {
	ChildFinder
	FindRoots(ctx context.Context, ownerID string) ([]*entity.Category, error)
}

// forest es el resultado de expandir un conjunto de raíces.
type forest struct {
	roots    []*entity.Category
	order    []*entity.Category            // descendientes en orden por niveles
	children map[string][]*entity.Category // hijos directos por id de padre
	rootOf   map[string]string             // id -> id de la raíz que lo alcanzó
}

// expand recorre por niveles todos los descendientes de roots.
func expand(ctx context.Context, finder ChildFinder, roots []*entity.Category) (*forest, error) {
	f := &forest{
		roots:    roots,
		order:    make([]*entity.Category, 0),
		children: make(map[string][]*entity.Category),
		rootOf:   make(map[string]string, len(roots)),
	}
	visited := make(map[string]struct{}, len(roots))
	frontier := make([]string, 0, len(roots))
	for _, r := range roots {
		if _, seen := visited[r.ID]; seen {
			continue
		}
		visited[r.ID] = struct{}{}
		f.rootOf[r.ID] = r.ID
		frontier = append(frontier, r.ID)
	}

	for depth := 0; len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := finder.FindChildren(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("hijos del nivel %d: %w", depth, err)
		}
		next := make([]string, 0, len(found))
		for _, c := range found {
			if c.IsRoot() {
				continue
			}
			if _, seen := visited[c.ID]; seen {
				continue
			}
			parentID := *c.ParentID
			visited[c.ID] = struct{}{}
			f.children[parentID] = append(f.children[parentID], c)
			f.rootOf[c.ID] = f.rootOf[parentID]
			f.order = append(f.order, c)
			next = append(next, c.ID)
		}
		frontier = next
	}
	return f, nil
}
