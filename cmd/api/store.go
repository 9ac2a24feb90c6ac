package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/categorias-api/internal/application/category"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/internal/infrastructure/memory"
	"github.com/jhoicas/categorias-api/internal/infrastructure/postgres"
	"github.com/jhoicas/categorias-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/categorias-api/pkg/config"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// stores adaptadores de persistencia elegidos por STORE_DRIVER.
type stores struct {
	categories repository.CategoryRepository
	tx         category.TxRunner
	users      repository.UserRepository
	close      func()
}

// openStores abre el store configurado. Con migrate=true crea el esquema antes de devolverlo.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.Info().Str("driver", cfg.Store.Driver).Msg("store abierto")
		return &stores{
			categories: postgres.NewCategoryRepository(pool),
			tx:         postgres.NewTxRunner(pool),
			users:      postgres.NewUserRepository(pool),
			close:      pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("path", cfg.SQLite.Path).Msg("store abierto")
		return &stores{
			categories: sqlite.NewCategoryRepository(db),
			tx:         sqlite.NewTxRunner(db),
			users:      sqlite.NewUserRepository(db),
			close:      func() { _ = db.Close() },
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		cats := memory.NewCategoryStore()
		return &stores{
			categories: cats,
			tx:         cats,
			users:      memory.NewUserStore(),
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER %q no soportado", cfg.Store.Driver)
}
