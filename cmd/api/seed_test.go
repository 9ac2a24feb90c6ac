package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorias-api/internal/application/category"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/infrastructure/memory"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

const seedYAML = `
categories:
  - name: Tech
    children:
      - name: AI
        children:
          - name: LLM
      - name: Web
  - name: Archivo
    status: inactive
    children:
      - name: "2023"
`

func TestParseSeed(t *testing.T) {
	tree, err := parseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, tree.Categories, 2)
	assert.Equal(t, "Tech", tree.Categories[0].Name)
	require.Len(t, tree.Categories[0].Children, 2)
	assert.Equal(t, "LLM", tree.Categories[0].Children[0].Children[0].Name)
	assert.Equal(t, "inactive", tree.Categories[1].Status)
	assert.Equal(t, "2023", tree.Categories[1].Children[0].Name)
}

func TestParseSeed_Errores(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"clave desconocida", "categories:\n  - name: X\n    color: red\n"},
		{"sin nombre", "categories:\n  - status: active\n"},
		{"estado inválido", "categories:\n  - name: X\n    status: archived\n"},
		{"yaml roto", "categories: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSeed(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseSeed_Vacio(t *testing.T) {
	tree, err := parseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tree.Categories)
}

func TestApplySeed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCategoryStore()
	uc := category.NewUseCase(store, store)
	owner := "00000000-0000-0000-0000-000000000001"

	tree, err := parseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	n, err := applySeed(ctx, uc, owner, tree, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	trees, err := uc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, trees, 2)
	assert.Equal(t, "Tech", trees[0].Name)
	assert.Len(t, trees[0].SubCategories, 3)

	assert.Equal(t, "Archivo", trees[1].Name)
	assert.Equal(t, entity.StatusInactive, trees[1].Status)
	require.Len(t, trees[1].SubCategories, 1)
	assert.Equal(t, entity.StatusInactive, trees[1].SubCategories[0].Status, "la cascada alcanza a los hijos del seed")
}

func TestApplySeed_NombreRepetido(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCategoryStore()
	uc := category.NewUseCase(store, store)

	tree, err := parseSeed(strings.NewReader("categories:\n  - name: A\n    children:\n      - name: A\n"))
	require.NoError(t, err)

	n, err := applySeed(ctx, uc, "00000000-0000-0000-0000-000000000001", tree, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, n)
}
