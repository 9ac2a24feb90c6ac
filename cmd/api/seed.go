package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/categorias-api/internal/application/category"
	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/application/validation"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/pkg/config"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// seedFile árbol de categorías a cargar:
//
//	categories:
//	  - name: Tech
//	    children:
//	      - name: AI
//	  - name: Archivo
//	    status: inactive
type seedFile struct {
	Categories []seedNode `yaml:"categories"`
}

type seedNode struct {
	Name     string     `yaml:"name"`
	Status   string     `yaml:"status"`
	Children []seedNode `yaml:"children"`
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var file, email string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga un árbol de categorías YAML para un usuario existente",
		Long: `Carga un árbol de categorías desde YAML usando las mismas reglas que la API
(nombre único por usuario, cascada de estado).

Ejemplo:
  categorias-api seed --file tree.yaml --email ana@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(opts)
			if err != nil {
				return err
			}
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("abrir seed: %w", err)
			}
			defer f.Close()
			tree, err := parseSeed(f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := openStores(ctx, cfg, log, cfg.Store.Driver != config.DriverPostgres)
			if err != nil {
				return err
			}
			defer st.close()

			user, err := st.users.FindByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("buscar usuario: %w", err)
			}
			if user == nil {
				return fmt.Errorf("no existe un usuario con email %s", email)
			}
			n, err := applySeed(ctx, category.NewUseCase(st.categories, st.tx), user.ID, tree, log)
			if err != nil {
				return err
			}
			log.Info().Str("email", email).Int("categories", n).Msg("seed aplicado")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "archivo YAML con el árbol (requerido)")
	cmd.Flags().StringVar(&email, "email", "", "email del usuario dueño (requerido)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// parseSeed decodifica el YAML rechazando claves desconocidas y valida nombres y estados.
func parseSeed(r io.Reader) (*seedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var tree seedFile
	if err := dec.Decode(&tree); err != nil && err != io.EOF {
		return nil, fmt.Errorf("leer seed: %w", err)
	}
	var check func(nodes []seedNode, path string) error
	check = func(nodes []seedNode, path string) error {
		for _, n := range nodes {
			if dto.NormalizeName(n.Name) == "" {
				return fmt.Errorf("seed: categoría sin nombre en %q", path)
			}
			if n.Status != "" && !entity.IsValidStatus(n.Status) {
				return fmt.Errorf("seed: estado %q inválido en %q", n.Status, n.Name)
			}
			if err := check(n.Children, path+"/"+n.Name); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(tree.Categories, ""); err != nil {
		return nil, err
	}
	return &tree, nil
}

// applySeed crea el árbol en preorden y después aplica los estados inactive de arriba hacia abajo,
// así la cascada alcanza también a los hijos creados después del padre. Devuelve cuántas categorías creó.
func applySeed(ctx context.Context, uc *category.UseCase, ownerID string, tree *seedFile, log *logger.Logger) (int, error) {
	val := validation.New()
	type pending struct {
		id     string
		status string
	}
	var (
		created  int
		statuses []pending
	)
	var walk func(nodes []seedNode, parentID *string) error
	walk = func(nodes []seedNode, parentID *string) error {
		for _, n := range nodes {
			in := dto.CreateCategoryRequest{Name: n.Name, ParentID: parentID}
			in.Normalize()
			if err := val.Validate(&in); err != nil {
				return fmt.Errorf("seed %q: %w", n.Name, err)
			}
			out, err := uc.Create(ctx, ownerID, in)
			if err != nil {
				return fmt.Errorf("seed %q: %w", n.Name, err)
			}
			created++
			log.Debug().Str("id", out.ID).Str("name", out.Name).Msg("categoría creada")
			if n.Status == entity.StatusInactive {
				statuses = append(statuses, pending{id: out.ID, status: n.Status})
			}
			id := out.ID
			if err := walk(n.Children, &id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tree.Categories, nil); err != nil {
		return created, err
	}
	for _, p := range statuses {
		status := p.status
		if _, err := uc.Update(ctx, ownerID, p.id, dto.UpdateCategoryRequest{Status: &status}); err != nil {
			return created, fmt.Errorf("seed estado %s: %w", p.id, err)
		}
	}
	return created, nil
}
