package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/jhoicas/categorias-api/docs"
	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/category"
	"github.com/jhoicas/categorias-api/internal/application/validation"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *category.UseCase
	Users      repository.UserRepository
	Validator  *validation.Validator
	Log        *logger.Logger
	JWTSecret  string
	AppName    string

	// SwaggerFile ruta al swagger.json para la UI en /docs; vacío o inexistente la desactiva.
	SwaggerFile      string
	// CORSAllowOrigins lista separada por comas; vacío equivale a "*".
	CORSAllowOrigins string
}

// Router registra las rutas de la API. Debe llamarse después de los middlewares globales:
// registra al final el handler 404.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	val := deps.Validator
	if val == nil {
		val = validation.New()
	}

	origins := deps.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// OpenAPI generado por swag; va antes de la UI para que no lo capture.
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Categorías API",
			}))
		} else {
			log.Warn().Str("file", deps.SwaggerFile).Msg("swagger UI desactivada: archivo no encontrado")
		}
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, val, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Categorías (requieren Bearer Token)
	categories := api.Group("/category", AuthMiddleware(deps.JWTSecret, deps.Users, log))
	categoryHandler := NewCategoryHandler(deps.CategoryUC, val, log)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	app.Use(NotFound)
}
