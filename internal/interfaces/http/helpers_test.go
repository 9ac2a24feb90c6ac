package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/category"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/categorias-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/categorias-api/pkg/jwt"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "ana@example.com"
	testIssuer    = "categorias-api-test"
	testExpMin    = 60
)

// envelope cuerpo decodificado de una respuesta.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app        *fiber.App
	users      *memory.UserStore
	categories *memory.CategoryStore
	token      string
}

// newTestServer arma la app completa sobre los stores en memoria, con reloj e ids fijos
// y un usuario testUserID ya registrado.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := memory.NewUserStore()
	categories := memory.NewCategoryStore()

	now := time.Date(2025, 4, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: testUserID, Email: testEmail, PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
	}))

	tick, seq := 0, 0
	categoryUC := category.NewUseCase(categories, categories).
		WithClock(func() time.Time {
			tick++
			return now.Add(time.Duration(tick) * time.Second)
		}).
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("00000000-0000-0000-0000-%012d", 100+seq)
		})
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}, bcrypt.MinCost)

	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		Users:      users,
		Log:        log,
		JWTSecret:  testJWTSecret,
		AppName:    "categorias-api-test",
	})

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err)
	return &testServer{app: app, users: users, categories: categories, token: "Bearer " + tok}
}

// do lanza la petición con el token del usuario de prueba (authHeader vacío = sin header).
func (s *testServer) do(t *testing.T, method, path, body, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// call igual que do con el token válido; decodifica el envelope y exige HTTP 200.
func (s *testServer) call(t *testing.T, method, path, body string) envelope {
	t.Helper()
	resp := s.do(t, method, path, body, s.token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

type categoryJSON struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        string         `json:"status"`
	ParentID      *string        `json:"parent_id"`
	OwnerID       string         `json:"owner_id"`
	SubCategories []categoryJSON `json:"subCategories"`
}

// createCategory crea por HTTP y devuelve la categoría creada.
func (s *testServer) createCategory(t *testing.T, name, parentID string) categoryJSON {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q}`, name)
	if parentID != "" {
		body = fmt.Sprintf(`{"name":%q,"parent_id":%q}`, name, parentID)
	}
	env := s.call(t, http.MethodPost, "/api/category", body)
	require.Equal(t, 1, env.Status, env.Message)
	var data struct {
		Category categoryJSON `json:"category"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Category
}

func (s *testServer) listCategories(t *testing.T, query string) []categoryJSON {
	t.Helper()
	env := s.call(t, http.MethodGet, "/api/category"+query, "")
	require.Equal(t, 1, env.Status, env.Message)
	var data struct {
		Categories []categoryJSON `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Categories
}
