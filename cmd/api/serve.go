package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/category"
	"github.com/jhoicas/categorias-api/internal/application/validation"
	httpRouter "github.com/jhoicas/categorias-api/internal/interfaces/http"
	"github.com/jhoicas/categorias-api/pkg/config"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var swaggerFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Long: `Levanta la API HTTP con el store configurado (STORE_DRIVER).

Con sqlite y memory el esquema se crea al arrancar; con postgres usar "migrate" antes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts, swaggerFile)
		},
	}
	cmd.Flags().StringVar(&swaggerFile, "swagger", "./docs/swagger.json", "swagger.json para la UI en /docs")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, swaggerFile string) error {
	cfg, log, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: no se podrán emitir tokens")
	}

	st, err := openStores(ctx, cfg, log, cfg.Store.Driver != config.DriverPostgres)
	if err != nil {
		return err
	}
	defer st.close()

	categoryUC := category.NewUseCase(st.categories, st.tx)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.BcryptCost)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CategoryUC:       categoryUC,
		Users:            st.users,
		Validator:        validation.New(),
		Log:              log,
		JWTSecret:        cfg.JWT.Secret,
		AppName:          cfg.App.Name,
		SwaggerFile:      swaggerFile,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
