package config

import (
	"fmt"
	"time"
)

// Store backend selectors.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"          env:"SERVER_HOST"          env-default:"0.0.0.0"`
	Port         int           `yaml:"port"          env:"SERVER_PORT"          env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
}

// Address returns the host:port the server binds to.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selects and parameterizes the record store backend.
type StoreConfig struct {
	Backend string `yaml:"backend"  env:"STORE_BACKEND"  env-default:"file"`
	DataDir string `yaml:"data_dir" env:"STORE_DATA_DIR" env-default:"./data"`
}

// MongoConfig holds connection settings for the mongo store backend. Ignored
// unless store.backend is "mongo".
type MongoConfig struct {
	URI        string `yaml:"uri"        env:"MONGO_URI"        env-default:"mongodb://localhost:27017"`
	Database   string `yaml:"database"   env:"MONGO_DATABASE"   env-default:"grievance_hub"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"blobs"`
}

// AuthConfig holds authentication settings. HashPasswords switches newly
// registered accounts to bcrypt; existing plaintext records (including the
// seed accounts) keep working either way.
type AuthConfig struct {
	HashPasswords bool `yaml:"hash_passwords" env:"AUTH_HASH_PASSWORDS" env-default:"false"`
}

// LogConfig holds logging settings. Format is "console" or "json".
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == BackendFile && c.Store.DataDir == "" {
		return fmt.Errorf("store.data_dir is required for the file backend")
	}
	return nil
}
