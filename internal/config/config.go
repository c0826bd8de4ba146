package config

import (
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"todo-list/internal/logging"
	"todo-list/internal/repository"
	"todo-list/internal/store"
)

// Seed modes for Storage.Seed.
const (
	SeedAuto   = "auto"
	SeedAlways = "always"
	SeedNever  = "never"
)

// Config holds all configuration options for the todo application
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Storage     StorageConfig     `koanf:"storage"`
	Store       StoreConfig       `koanf:"store"`
	Validation  ValidationConfig  `koanf:"validation"`
	Log         LogConfig         `koanf:"log"`
	Client      ClientConfig      `koanf:"client"`
	Application ApplicationConfig `koanf:"application"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Mode            string        `koanf:"mode"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORS            bool          `koanf:"cors"`
	Metrics         bool          `koanf:"metrics"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Driver         string        `koanf:"driver"`
	Path           string        `koanf:"path"`
	Dir            string        `koanf:"dir"`
	DSN            string        `koanf:"dsn"`
	RedisAddr      string        `koanf:"redis_addr"`
	RedisPassword  string        `koanf:"redis_password"`
	RedisDB        int           `koanf:"redis_db"`
	Key            string        `koanf:"key"`
	Seed           string        `koanf:"seed"`
	QueryTimeout   time.Duration `koanf:"query_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	DirPermissions uint32        `koanf:"dir_permissions"`
}

// StoreConfig holds task store configuration
type StoreConfig struct {
	IDStrategy string `koanf:"id_strategy"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMinLength    int `koanf:"task_name_min_length"`
	TaskNameMaxLength    int `koanf:"task_name_max_length"` // 0 means unlimited
	DescriptionMaxLength int `koanf:"description_max_length"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `koanf:"level"`
	JSON       bool   `koanf:"json"`
	TimeFormat string `koanf:"time_format"`
}

// ClientConfig configures the remote service client used by the CLI
type ClientConfig struct {
	ServerURL  string        `koanf:"server_url"`
	Timeout    time.Duration `koanf:"timeout"`
	RetryCount int           `koanf:"retry_count"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `koanf:"timeout"`
	Verbose bool          `koanf:"verbose"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".todo")

	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			Mode:            "release",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORS:            true,
			Metrics:         true,
		},
		Storage: StorageConfig{
			Driver:         repository.DriverMemory,
			Path:           filepath.Join(dataDir, "todo.db"),
			Dir:            dataDir,
			RedisAddr:      "localhost:6379",
			Key:            "todo-list-tasks",
			Seed:           SeedAuto,
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Store: StoreConfig{
			IDStrategy: store.StrategyUUID,
		},
		Validation: ValidationConfig{
			TaskNameMinLength:    1,
			TaskNameMaxLength:    0,
			DescriptionMaxLength: 0,
		},
		Log: LogConfig{
			Level:      logging.LevelInfo,
			JSON:       false,
			TimeFormat: "15:04:05",
		},
		Client: ClientConfig{
			Timeout:    10 * time.Second,
			RetryCount: 2,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ShouldSeed reports whether sample tasks are loaded into an empty store.
// In auto mode only the memory driver is seeded.
func (c *Config) ShouldSeed() bool {
	switch c.Storage.Seed {
	case SeedAlways:
		return true
	case SeedNever:
		return false
	default:
		return c.Storage.Driver == repository.DriverMemory
	}
}

// IsRemote reports whether the CLI talks to a server instead of a local store
func (c *Config) IsRemote() bool {
	return c.Client.ServerURL != ""
}

// LoggingConfig converts the log section into logging.Config
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.JSON = c.Log.JSON
	if c.Log.TimeFormat != "" {
		cfg.TimeFormat = c.Log.TimeFormat
	}
	if c.Application.Verbose {
		cfg.Level = logging.LevelDebug
	}
	return cfg
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Server configuration
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 0 and 65535"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}
	if !slices.Contains([]string{"debug", "release", "test"}, c.Server.Mode) {
		return &ConfigError{Field: "server.mode", Message: "mode must be debug, release or test"}
	}

	// Storage configuration
	if !slices.Contains(repository.Drivers, c.Storage.Driver) {
		return &ConfigError{Field: "storage.driver", Message: "unknown storage driver " + c.Storage.Driver}
	}
	switch c.Storage.Driver {
	case repository.DriverSQLite:
		if c.Storage.Path == "" {
			return &ConfigError{Field: "storage.path", Message: "database path cannot be empty"}
		}
	case repository.DriverPostgres:
		if c.Storage.DSN == "" {
			return &ConfigError{Field: "storage.dsn", Message: "postgres dsn cannot be empty"}
		}
	case repository.DriverRedis:
		if c.Storage.RedisAddr == "" {
			return &ConfigError{Field: "storage.redis_addr", Message: "redis address cannot be empty"}
		}
	case repository.DriverFile:
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
		}
	}
	if c.Storage.Key == "" {
		return &ConfigError{Field: "storage.key", Message: "collection key cannot be empty"}
	}
	if !slices.Contains([]string{SeedAuto, SeedAlways, SeedNever}, c.Storage.Seed) {
		return &ConfigError{Field: "storage.seed", Message: "seed must be auto, always or never"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Store configuration
	if c.Store.IDStrategy != store.StrategyUUID && c.Store.IDStrategy != store.StrategySequence {
		return &ConfigError{Field: "store.id_strategy", Message: "id strategy must be uuid or sequence"}
	}

	// Validation configuration
	if c.Validation.TaskNameMinLength < 1 {
		return &ConfigError{Field: "validation.task_name_min_length", Message: "task name minimum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < 0 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length cannot be negative"}
	}
	if c.Validation.TaskNameMaxLength > 0 && c.Validation.TaskNameMaxLength < c.Validation.TaskNameMinLength {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be greater than minimum length"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}

	// Log configuration
	if !logging.IsValidLevel(c.Log.Level) {
		return &ConfigError{Field: "log.level", Message: "level must be debug, info, warn or error"}
	}

	// Client configuration
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}
	if c.Client.RetryCount < 0 {
		return &ConfigError{Field: "client.retry_count", Message: "retry count cannot be negative"}
	}

	// Application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
