package config

import (
	"testing"

	"todo-list/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, repository.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "todo-list-tasks", cfg.Storage.Key)
	assert.Equal(t, 0, cfg.Validation.TaskNameMaxLength, "names are unlimited by default")
	assert.False(t, cfg.IsRemote())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"unknown mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "storage.driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = repository.DriverPostgres }, "storage.dsn"},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, "storage.key"},
		{"unknown seed mode", func(c *Config) { c.Storage.Seed = "sometimes" }, "storage.seed"},
		{"unknown id strategy", func(c *Config) { c.Store.IDStrategy = "random" }, "store.id_strategy"},
		{"max below min", func(c *Config) {
			c.Validation.TaskNameMinLength = 3
			c.Validation.TaskNameMaxLength = 2
		}, "validation.task_name_max_length"},
		{"negative max", func(c *Config) { c.Validation.TaskNameMaxLength = -1 }, "validation.task_name_max_length"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative retries", func(c *Config) { c.Client.RetryCount = -1 }, "client.retry_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			var cfgErr *ConfigError
			if assert.ErrorAs(t, err, &cfgErr) {
				assert.Equal(t, tt.field, cfgErr.Field)
			}
		})
	}
}

func TestConfig_ShouldSeed(t *testing.T) {
	tests := []struct {
		driver   string
		seed     string
		expected bool
	}{
		{repository.DriverMemory, SeedAuto, true},
		{repository.DriverSQLite, SeedAuto, false},
		{repository.DriverSQLite, SeedAlways, true},
		{repository.DriverMemory, SeedNever, false},
	}

	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.seed, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Storage.Driver = tt.driver
			cfg.Storage.Seed = tt.seed
			assert.Equal(t, tt.expected, cfg.ShouldSeed())
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	cfg := NewConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8080
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestConfig_LoggingConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Log.JSON = true
	cfg.Application.Verbose = true

	logCfg := cfg.LoggingConfig()
	assert.True(t, logCfg.JSON)
	assert.Equal(t, "debug", logCfg.Level)
}
