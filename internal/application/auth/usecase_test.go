package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/infrastructure/memory"
	"github.com/jhoicas/categorias-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserStore) {
	t.Helper()
	users := memory.NewUserStore()
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, bcrypt.MinCost)
	return uc, users
}

func register(t *testing.T, uc *auth.AuthUseCase, email, password string) *dto.UserResponse {
	t.Helper()
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: email, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)
	return out
}

func TestRegisterUser_HasheaPassword(t *testing.T) {
	uc, users := newAuth(t)

	out := register(t, uc, "ana@example.com", "secreta123")
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ana@example.com", out.Email)

	stored, err := users.FindByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestRegisterUser_EmailSeGuardaEnMinusculas(t *testing.T) {
	uc, _ := newAuth(t)

	out := register(t, uc, "  Ana@Example.COM ", "secreta123")
	assert.Equal(t, "ana@example.com", out.Email)
}

func TestRegisterUser_Duplicado_RetornaUserAlreadyExists(t *testing.T) {
	uc, _ := newAuth(t)
	register(t, uc, "ana@example.com", "secreta123")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ANA@example.com", Password: "otra12345", ConfirmPassword: "otra12345",
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLogin_OK_TokenConIdDelUsuario(t *testing.T) {
	uc, _ := newAuth(t)
	user := register(t, uc, "ana@example.com", "secreta123")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)

	userID, email, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "ana@example.com", email)
}

func TestLogin_PasswordIncorrecto_RetornaInvalidCredentials(t *testing.T) {
	uc, _ := newAuth(t)
	register(t, uc, "ana@example.com", "secreta123")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_EmailDesconocido_RetornaInvalidCredentials(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestNewAuthUseCase_CostoInvalido_UsaDefault(t *testing.T) {
	users := memory.NewUserStore()
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60}, 0)

	out := register(t, uc, "ana@example.com", "secreta123")
	stored, err := users.FindByID(context.Background(), out.ID)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
