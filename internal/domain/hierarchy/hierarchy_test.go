package hierarchy_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/hierarchy"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store falso: registros planos en orden de inserción + contador de consultas
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	cats          []*entity.Category
	childrenCalls int
	err           error
}

func (s *fakeStore) add(owner, id, parent string) {
	c := &entity.Category{ID: id, OwnerID: owner, Name: id, Status: entity.StatusActive}
	if parent != "" {
		p := parent
		c.ParentID = &p
	}
	s.cats = append(s.cats, c)
}

func (s *fakeStore) FindChildren(_ context.Context, parentIDs []string) ([]*entity.Category, error) {
	s.childrenCalls++
	if s.err != nil {
		return nil, s.err
	}
	set := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		set[id] = true
	}
	var out []*entity.Category
	for _, c := range s.cats {
		if c.ParentID != nil && set[*c.ParentID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) FindRoots(_ context.Context, ownerID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range s.cats {
		if c.ParentID == nil && c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func names(cats []*entity.Category) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveDescendants
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveDescendants_SinHijos_RetornaVacio(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "solo", "")

	ids, err := hierarchy.ResolveDescendants(context.Background(), s, "solo")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 1, s.childrenCalls, "una sola consulta para comprobar que no hay hijos")
}

func TestResolveDescendants_Cadena(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "a", "")
	s.add("u1", "b", "a")
	s.add("u1", "c", "b")
	s.add("u1", "d", "c")

	ids, err := hierarchy.ResolveDescendants(context.Background(), s, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, ids)
	assert.Equal(t, 4, s.childrenCalls, "una consulta por nivel más la que devuelve vacío")
}

func TestResolveDescendants_Balanceado_OrdenPorNiveles(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "r", "")
	s.add("u1", "r.1", "r")
	s.add("u1", "r.2", "r")
	s.add("u1", "r.1.1", "r.1")
	s.add("u1", "r.1.2", "r.1")
	s.add("u1", "r.2.1", "r.2")
	s.add("u1", "r.2.2", "r.2")

	ids, err := hierarchy.ResolveDescendants(context.Background(), s, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"r.1", "r.2", "r.1.1", "r.1.2", "r.2.1", "r.2.2"}, ids)
	assert.Equal(t, 3, s.childrenCalls)
}

func TestResolveDescendants_Ancho_UnaConsultaPorNivel(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "r", "")
	for i := 0; i < 500; i++ {
		s.add("u1", fmt.Sprintf("hijo-%03d", i), "r")
	}

	ids, err := hierarchy.ResolveDescendants(context.Background(), s, "r")
	require.NoError(t, err)
	assert.Len(t, ids, 500)
	assert.Equal(t, 2, s.childrenCalls, "500 hermanos se resuelven en una sola consulta")
}

func TestResolveDescendants_SubarbolNoIncluyeHermanos(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "top", "")
	s.add("u1", "izq", "top")
	s.add("u1", "der", "top")
	s.add("u1", "izq.hoja", "izq")
	s.add("u1", "der.hoja", "der")

	ids, err := hierarchy.ResolveDescendants(context.Background(), s, "izq")
	require.NoError(t, err)
	assert.Equal(t, []string{"izq.hoja"}, ids)
}

func TestResolveDescendants_CicloTermina(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "a", "c") // a -> b -> c -> a
	s.add("u1", "b", "a")
	s.add("u1", "c", "b")

	ids, err := hierarchy.ResolveDescendants(context.Background(), s, "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, ids, "el ciclo no debe repetir nodos ni incluir la raíz")
}

func TestResolveDescendants_ErrorDelStore(t *testing.T) {
	boom := errors.New("store caído")
	s := &fakeStore{err: boom}

	_, err := hierarchy.ResolveDescendants(context.Background(), s, "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestResolveDescendants_ContextoCancelado(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "a", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hierarchy.ResolveDescendants(ctx, s, "a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.childrenCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildTree / BuildNestedTree
// ──────────────────────────────────────────────────────────────────────────────

func newForest() *fakeStore {
	s := &fakeStore{}
	s.add("u1", "Tech", "")
	s.add("u1", "Books", "")
	s.add("u1", "AI", "Tech")
	s.add("u1", "Web", "Tech")
	s.add("u1", "LLM", "AI")
	s.add("u1", "Novels", "Books")
	s.add("u2", "Ajena", "")
	s.add("u2", "AjenaHija", "Ajena")
	return s
}

func TestBuildTree_DescendientesPlanosPorRaiz(t *testing.T) {
	s := newForest()

	trees, err := hierarchy.BuildTree(context.Background(), s, "u1")
	require.NoError(t, err)
	require.Len(t, trees, 2)

	assert.Equal(t, "Tech", trees[0].Root.Name)
	assert.Equal(t, []string{"AI", "Web", "LLM"}, names(trees[0].Descendants),
		"todos los descendientes transitivos cuelgan planos de la raíz")

	assert.Equal(t, "Books", trees[1].Root.Name)
	assert.Equal(t, []string{"Novels"}, names(trees[1].Descendants))

	assert.Equal(t, 3, s.childrenCalls, "el bosque completo se expande con una consulta por nivel")
}

func TestBuildTree_RaizSinHijos_ListaVaciaNoNil(t *testing.T) {
	s := &fakeStore{}
	s.add("u1", "Sola", "")

	trees, err := hierarchy.BuildTree(context.Background(), s, "u1")
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.NotNil(t, trees[0].Descendants)
	assert.Empty(t, trees[0].Descendants)
}

func TestBuildTree_OwnerSinCategorias(t *testing.T) {
	s := newForest()

	trees, err := hierarchy.BuildTree(context.Background(), s, "nadie")
	require.NoError(t, err)
	assert.Empty(t, trees)
}

func TestBuildTree_AislamientoPorOwner(t *testing.T) {
	s := newForest()

	trees, err := hierarchy.BuildTree(context.Background(), s, "u2")
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, "Ajena", trees[0].Root.Name)
	assert.Equal(t, []string{"AjenaHija"}, names(trees[0].Descendants))
}

func TestBuildNestedTree_Anidado(t *testing.T) {
	s := newForest()

	nodes, err := hierarchy.BuildNestedTree(context.Background(), s, "u1")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	tech := nodes[0]
	assert.Equal(t, "Tech", tech.Category.Name)
	require.Len(t, tech.Children, 2)
	assert.Equal(t, "AI", tech.Children[0].Category.Name)
	assert.Equal(t, "Web", tech.Children[1].Category.Name)
	require.Len(t, tech.Children[0].Children, 1)
	assert.Equal(t, "LLM", tech.Children[0].Children[0].Category.Name)
	assert.Empty(t, tech.Children[1].Children)
	assert.Empty(t, tech.Children[0].Children[0].Children)

	books := nodes[1]
	require.Len(t, books.Children, 1)
	assert.Equal(t, "Novels", books.Children[0].Category.Name)
}
