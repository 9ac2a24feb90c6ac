package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/categorias-api/pkg/config"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// rootOptions flags compartidos por todos los subcomandos.
type rootOptions struct {
	driver string // sobreescribe STORE_DRIVER
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCommand(opts)

	cmd := &cobra.Command{
		Use:           "categorias-api",
		Short:         "API de categorías jerárquicas por usuario",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Sin subcomando se comporta como serve.
		RunE: serve.RunE,
	}
	cmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "store a usar: postgres, sqlite o memory (default: STORE_DRIVER)")

	cmd.AddCommand(serve, newMigrateCommand(opts), newSeedCommand(opts))
	return cmd
}

// loadConfig carga la configuración y aplica los flags globales.
func loadConfig(opts *rootOptions) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.driver != "" {
		cfg.Store.Driver = opts.driver
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	return cfg, log, nil
}
