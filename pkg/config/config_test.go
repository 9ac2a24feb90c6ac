package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorias-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, "*", cfg.HTTP.CORSAllowOrigins)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/cat.db")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver, "el driver se normaliza a minúsculas")
	assert.Equal(t, "/tmp/cat.db", cfg.SQLite.Path)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "https://app.example.com", cfg.HTTP.CORSAllowOrigins)
}

func TestLoad_DriverDesconocido_RetornaError(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "categorias", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/categorias?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro@host/db"
	assert.Equal(t, "postgres://otro@host/db", c.ConnectionString(), "DATABASE_URL tiene prioridad")
}
