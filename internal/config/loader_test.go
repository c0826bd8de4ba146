package config

import (
	"testing"
	"time"

	"todo-list/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	expected := NewConfig()
	assert.Equal(t, expected.Server, cfg.Server)
	assert.Equal(t, expected.Validation, cfg.Validation)
}

func TestLoader_Load_Environment(t *testing.T) {
	t.Setenv("TODO_SERVER_PORT", "5050")
	t.Setenv("TODO_SERVER_READ_TIMEOUT", "3s")
	t.Setenv("TODO_STORAGE_DRIVER", "redis")
	t.Setenv("TODO_STORAGE_REDIS_ADDR", "cache:6380")
	t.Setenv("TODO_VALIDATION_TASK_NAME_MAX_LENGTH", "40")
	t.Setenv("TODO_LOG_JSON", "true")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, repository.DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6380", cfg.Storage.RedisAddr)
	assert.Equal(t, 40, cfg.Validation.TaskNameMaxLength)
	assert.True(t, cfg.Log.JSON)
}

func TestLoader_Load_InvalidEnvironment(t *testing.T) {
	t.Setenv("TODO_STORAGE_DRIVER", "mongo")

	_, err := NewLoader().Load()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "storage.driver", cfgErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("TODO_SERVER_PORT", "5050")

	port := 9090
	driver := repository.DriverSQLite
	path := t.TempDir() + "/tasks.db"
	overrides := &ConfigOverrides{Port: &port, Driver: &driver, Path: &path}

	cfg, err := NewLoader().LoadWithOverrides(overrides)
	require.NoError(t, err)

	// Flags win over the environment
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, repository.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, path, cfg.Storage.Path)
}

func TestLoader_LoadWithOverrides_Revalidates(t *testing.T) {
	seed := "sometimes"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Seed: &seed})
	assert.Error(t, err)
}

func TestTransformEnvKey(t *testing.T) {
	tests := map[string]string{
		"SERVER_PORT":                     "server.port",
		"STORAGE_REDIS_ADDR":              "storage.redis_addr",
		"VALIDATION_TASK_NAME_MAX_LENGTH": "validation.task_name_max_length",
		"DEBUG":                           "debug",
	}
	for in, want := range tests {
		assert.Equal(t, want, transformEnvKey(in), in)
	}
}
