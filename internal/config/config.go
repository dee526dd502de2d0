package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pathlight/pkg/keygen"
	"gopkg.in/yaml.v3"
)

const (
	ModeDebug   = "debug"
	ModeRelease = "release"
	ModeTest    = "test"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	ErrMissingJWTSecret = errors.New("jwt secret is required in release mode")
	ErrUnknownDriver    = errors.New("unknown database driver")
	ErrUnknownMode      = errors.New("unknown server mode")
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`

	// GeneratedSecret is set when Load had to generate a JWT secret
	GeneratedSecret bool `yaml:"-"`
}

type ServerConfig struct {
	Host        string   `yaml:"host" env:"SERVER_HOST"`
	Port        int      `yaml:"port" env:"SERVER_PORT"`
	Mode        string   `yaml:"mode" env:"SERVER_MODE"`
	APIPrefix   string   `yaml:"api_prefix" env:"API_PREFIX"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver" env:"DB_DRIVER"`
	Host         string `yaml:"host" env:"DB_HOST"`
	Port         int    `yaml:"port" env:"DB_PORT"`
	User         string `yaml:"user" env:"DB_USER"`
	Password     string `yaml:"password" env:"DB_PASSWORD"`
	DBName       string `yaml:"dbname" env:"DB_NAME"`
	SSLMode      string `yaml:"sslmode" env:"DB_SSLMODE"`
	Path         string `yaml:"path" env:"DB_PATH"`
	MaxIdleConns int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret" env:"JWT_SECRET"`
	ExpireMinutes int    `yaml:"expire_minutes" env:"JWT_EXPIRE_MINUTES"`
	Issuer        string `yaml:"issuer" env:"JWT_ISSUER"`
}

type LogConfig struct {
	Dir string `yaml:"dir" env:"LOG_DIR"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8000,
			Mode:      ModeDebug,
			APIPrefix: "/api/v1",
			CORSOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
			},
		},
		Database: DatabaseConfig{
			Driver:       DriverPostgres,
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			DBName:       "pathlight",
			SSLMode:      "disable",
			Path:         "pathlight.db",
			MaxIdleConns: 10,
			MaxOpenConns: 100,
		},
		JWT: JWTConfig{
			ExpireMinutes: 30,
			Issuer:        "pathlight",
		},
		Log: LogConfig{
			Dir: "logs",
		},
	}
}

// LoadOption changes how Load finalizes the configuration
type LoadOption func(*loadOptions)

type loadOptions struct {
	skipJWTSecret bool
}

// WithoutJWTSecret skips the JWT secret policy, for tools that never issue
// or validate tokens. JWT.Secret is left as configured, possibly empty.
func WithoutJWTSecret() LoadOption {
	return func(o *loadOptions) {
		o.skipJWTSecret = true
	}
}

// Load loads configuration from file and environment variables.
// A missing file is not an error; defaults and environment are used instead.
func Load(path string, opts ...LoadOption) (*Config, error) {
	var options loadOptions
	for _, opt := range opts {
		opt(&options)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	// Override with environment variables if present
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.finalize(options); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) finalize(opts loadOptions) error {
	switch c.Server.Mode {
	case "":
		c.Server.Mode = ModeDebug
	case ModeDebug, ModeRelease, ModeTest:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Server.Mode)
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverSQLite {
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}

	if c.JWT.ExpireMinutes <= 0 {
		c.JWT.ExpireMinutes = 30
	}

	c.Server.APIPrefix = "/" + strings.Trim(c.Server.APIPrefix, "/")
	if c.Server.APIPrefix == "/" {
		c.Server.APIPrefix = ""
	}

	if c.JWT.Secret == "" && !opts.skipJWTSecret {
		if c.Server.Mode == ModeRelease {
			return ErrMissingJWTSecret
		}
		secret, err := keygen.GenerateSecret(keygen.MinSecretBytes)
		if err != nil {
			return err
		}
		c.JWT.Secret = secret
		c.GeneratedSecret = true
	}

	return nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
