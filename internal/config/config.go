// Package config loads runtime settings from a YAML file, a .env file and
// ESCROWRAIL_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/escrowrail/internal/scoring"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is read when no config file is named explicitly.
	DefaultPath = "escrowrail.yaml"
	// DefaultCurrency is the deal currency when none is configured.
	DefaultCurrency = "USD"
	// DefaultEntitiesDir holds the entity YAML files.
	DefaultEntitiesDir = "data/entities"
	// DefaultEvidenceDir is the evidence data room.
	DefaultEvidenceDir = "data/evidence"
	// DefaultAddr is the HTTP listen address of the serve command.
	DefaultAddr = ":8080"
	// EnvPrefix namespaces environment overrides.
	EnvPrefix = "ESCROWRAIL_"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// StoreConfig selects and configures the plan store.
type StoreConfig struct {
	Driver        string        `yaml:"driver"`
	Path          string        `yaml:"path"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
	Prefix        string        `yaml:"prefix"`
	MaskAccounts  bool          `yaml:"mask_accounts"`
}

// Config is the complete runtime configuration.
type Config struct {
	Currency     string          `yaml:"currency"`
	EntitiesDir  string          `yaml:"entities_dir"`
	EvidenceDir  string          `yaml:"evidence_dir"`
	RegistryFile string          `yaml:"registry_file"`
	LogLevel     string          `yaml:"log_level"`
	LogJSON      bool            `yaml:"log_json"`
	Addr         string          `yaml:"addr"`
	Store        StoreConfig     `yaml:"store"`
	Weights      scoring.Weights `yaml:"weights"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Currency:    DefaultCurrency,
		EntitiesDir: DefaultEntitiesDir,
		EvidenceDir: DefaultEvidenceDir,
		LogLevel:    "info",
		Addr:        DefaultAddr,
		Store: StoreConfig{
			Driver: DriverFile,
		},
		Weights: scoring.DefaultWeights(),
	}
}

// Load reads the config file at path over the defaults and applies environment overrides.
// An empty path falls back to DefaultPath; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set are kept. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from ESCROWRAIL_* variables.
func (c *Config) ApplyEnv() error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(EnvPrefix + name)); v != "" {
			*dst = v
		}
	}
	str("CURRENCY", &c.Currency)
	str("ENTITIES_DIR", &c.EntitiesDir)
	str("EVIDENCE_DIR", &c.EvidenceDir)
	str("REGISTRY_FILE", &c.RegistryFile)
	str("LOG_LEVEL", &c.LogLevel)
	str("ADDR", &c.Addr)
	str("STORE_DRIVER", &c.Store.Driver)
	str("STORE_PATH", &c.Store.Path)
	str("STORE_PREFIX", &c.Store.Prefix)
	str("REDIS_ADDR", &c.Store.RedisAddr)
	str("REDIS_PASSWORD", &c.Store.RedisPassword)

	for name, dst := range map[string]*bool{
		"LOG_JSON":            &c.LogJSON,
		"STORE_MASK_ACCOUNTS": &c.Store.MaskAccounts,
	} {
		if v := strings.TrimSpace(os.Getenv(EnvPrefix + name)); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, name, v, err)
			}
			*dst = b
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sREDIS_DB %q: %w", EnvPrefix, v, err)
		}
		c.Store.RedisDB = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "STORE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sSTORE_TTL %q: %w", EnvPrefix, v, err)
		}
		c.Store.TTL = d
	}
	return nil
}

// Validate normalizes the config and rejects unusable values.
func (c *Config) Validate() error {
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))

	switch c.Store.Driver {
	case DriverMemory, DriverFile:
	case DriverRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store driver %q requires redis_addr", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.TTL < 0 {
		return fmt.Errorf("store ttl cannot be negative")
	}
	return nil
}
