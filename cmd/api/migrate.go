package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/categorias-api/pkg/config"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea tablas e índices del store configurado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.Store.Driver == config.DriverMemory {
				log.Info().Msg("store en memoria: no hay esquema que migrar")
				return nil
			}
			st, err := openStores(cmd.Context(), cfg, log, true)
			if err != nil {
				return err
			}
			defer st.close()
			log.Info().Str("driver", cfg.Store.Driver).Msg("esquema migrado")
			return nil
		},
	}
}
