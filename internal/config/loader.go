package config

import (
	"fmt"
	"strings"
	"time"

	"todo-list/internal/logging"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable the loader reads.
// TODO_SERVER_PORT maps to server.port, TODO_STORAGE_REDIS_ADDR to storage.redis_addr.
const EnvPrefix = "TODO_"

// Loader handles loading configuration from multiple sources
type Loader struct {
	k       *koanf.Koanf
	environ func() []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{k: koanf.New(".")}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(structs.Provider(NewConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}

	opt := env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
		},
		EnvironFunc: l.environ,
	}
	if err := l.k.Load(env.Provider(".", opt), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := l.k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	logging.Debugf("config: driver=%s seed=%s id_strategy=%s server=%q\n",
		cfg.Storage.Driver, cfg.Storage.Seed, cfg.Store.IDStrategy, cfg.Client.ServerURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(cfg)
	}

	// Re-validate after applying overrides
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// transformEnvKey turns SERVER_READ_TIMEOUT into server.read_timeout.
// The first segment names the section; the rest is the field.
func transformEnvKey(key string) string {
	parts := strings.Split(strings.ToLower(key), "_")
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Server overrides
	Host *string
	Port *int

	// Storage overrides
	Driver    *string
	Path      *string
	Dir       *string
	DSN       *string
	RedisAddr *string
	Key       *string
	Seed      *string

	// Store overrides
	IDStrategy *string

	// Log overrides
	LogLevel *string
	LogJSON  *bool

	// Client overrides
	ServerURL *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

func (o *ConfigOverrides) apply(cfg *Config) {
	setIf(&cfg.Server.Host, o.Host)
	setIf(&cfg.Server.Port, o.Port)

	setIf(&cfg.Storage.Driver, o.Driver)
	setIf(&cfg.Storage.Path, o.Path)
	setIf(&cfg.Storage.Dir, o.Dir)
	setIf(&cfg.Storage.DSN, o.DSN)
	setIf(&cfg.Storage.RedisAddr, o.RedisAddr)
	setIf(&cfg.Storage.Key, o.Key)
	setIf(&cfg.Storage.Seed, o.Seed)

	setIf(&cfg.Store.IDStrategy, o.IDStrategy)

	setIf(&cfg.Log.Level, o.LogLevel)
	setIf(&cfg.Log.JSON, o.LogJSON)

	setIf(&cfg.Client.ServerURL, o.ServerURL)

	setIf(&cfg.Application.Timeout, o.Timeout)
	setIf(&cfg.Application.Verbose, o.Verbose)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
