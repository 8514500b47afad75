package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env         string     `yaml:"env" env:"APP_ENV" env-default:"development"`
	DatabaseURL string     `yaml:"database_url" env:"DATABASE_URL"`
	LogLevel    string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTPServer  HTTPServer `yaml:"http_server"`
	Auth        Auth       `yaml:"auth"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Auth struct {
	AccessSecret        string        `yaml:"access_secret" env:"JWT_SECRET"`
	RefreshSecret       string        `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET"`
	AccessTTL           time.Duration `yaml:"access_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTTL          time.Duration `yaml:"refresh_ttl" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	BcryptCost          int           `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST" env-default:"10"`
	MaxConcurrentHashes int           `yaml:"max_concurrent_hashes" env:"AUTH_MAX_CONCURRENT_HASHES" env-default:"4"`
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Load reads an optional .env file, then the YAML file at path (when path is
// not empty) and the environment, and validates the result. Environment
// variables win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates cfg and, outside production, fills missing signing
// secrets with random ones. Tokens then do not survive a restart.
func (c *Config) finalize() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}

	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return errors.New("token ttls must be positive")
	}
	if c.Auth.MaxConcurrentHashes <= 0 {
		return errors.New("AUTH_MAX_CONCURRENT_HASHES must be positive")
	}

	if c.IsProduction() {
		if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
			return errors.New("JWT_SECRET and JWT_REFRESH_SECRET are required in production")
		}
		if c.Auth.AccessSecret == c.Auth.RefreshSecret {
			return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
		}
		return nil
	}

	var err error
	if c.Auth.AccessSecret == "" {
		if c.Auth.AccessSecret, err = randomSecret(); err != nil {
			return err
		}
	}
	if c.Auth.RefreshSecret == "" {
		if c.Auth.RefreshSecret, err = randomSecret(); err != nil {
			return err
		}
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
