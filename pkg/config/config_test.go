package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reservas-canchas/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Store.RetryMax)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 24*60, cfg.JWT.Expiration)
	assert.Equal(t, "registrador", cfg.Auth.DefaultRole)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("STORE_RETRY_MAX", "5")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, 5, cfg.Store.RetryMax)
	assert.True(t, cfg.Store.AutoMigrate)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"driver desconocido", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"sesiones desconocidas", map[string]string{"SESSION_STORE": "memcached"}},
		{"sin secreto en production", map[string]string{"APP_ENV": "production", "JWT_SECRET": ""}},
		{"expiración no positiva", map[string]string{"JWT_EXPIRATION_MINUTES": "0"}},
		{"reintentos negativos", map[string]string{"STORE_RETRY_MAX": "-1"}},
		{"rol por defecto admin", map[string]string{"DEFAULT_ROLE": "admin"}},
		{"rol por defecto inexistente", map[string]string{"DEFAULT_ROLE": "cliente"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DefaultRoleNormalizado(t *testing.T) {
	t.Setenv("DEFAULT_ROLE", "  Consultor ")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "consultor", cfg.Auth.DefaultRole)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "reservas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/reservas?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgresql://u:p@h:6543/x"
	assert.Equal(t, "postgresql://u:p@h:6543/x", db.ConnectionString())
}
