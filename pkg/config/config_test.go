package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "biztime", cfg.DB.Name)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "biztime", cfg.Metrics.Prefix)
	assert.False(t, cfg.Server.IsProduction())
}

func TestLoadTestEnvironmentSelectsTestDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "biztime_test", cfg.DB.Name)
}

func TestLoadExplicitDatabaseNameWins(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_NAME", "other")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.DB.Name)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")
	t.Setenv("DB_AUTO_MIGRATE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "biztime", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=biztime sslmode=require", c.GetDSN())
}

func TestFieldsOmitPassword(t *testing.T) {
	cfg := &Config{DB: DBConfig{Driver: "postgres", Password: "hunter2"}}
	for _, f := range cfg.Fields() {
		assert.NotEqual(t, "hunter2", f.String)
	}
}
