// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers understood by main.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// I/O policies for the registry.
//
// Lenient keeps the original behaviour: a failed read is an empty
// registry and a failed write is only logged. Strict returns both to the
// caller, which the HTTP layer turns into a 500.
const (
	IOPolicyLenient = "lenient"
	IOPolicyStrict  = "strict"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StorageDriver selects the record store: "json", "sqlite" or "memory".
	StorageDriver string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"json"`

	// StoragePath is the JSON file (json driver) or database file (sqlite).
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"data/students.json"`

	// IOPolicy is "lenient" or "strict".
	IOPolicy string `yaml:"io_policy" env:"IO_POLICY" env-default:"lenient"`

	// StaticDir, when set, is served at / (the browser frontend).
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:3000".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`

	// CORSOrigin is sent as Access-Control-Allow-Origin.
	CORSOrigin string `yaml:"cors_origin" env:"HTTP_CORS_ORIGIN" env-default:"*"`
}

// Validate checks the enumerated settings cleanenv cannot express.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverJSON, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown storage_driver %q", c.StorageDriver)
	}

	switch c.IOPolicy {
	case IOPolicyLenient, IOPolicyStrict:
	default:
		return fmt.Errorf("unknown io_policy %q", c.IOPolicy)
	}

	if c.StorageDriver != DriverMemory && c.StoragePath == "" {
		return fmt.Errorf("storage_path is required for driver %q", c.StorageDriver)
	}

	return nil
}

// Strict reports whether I/O errors should reach the caller.
func (c *Config) Strict() bool {
	return c.IOPolicy == IOPolicyStrict
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file, applies env:"..." overrides
	// and env-default values, and enforces env-required:"true".
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	// Source 1: environment variable (Docker / Kubernetes).
	configPath := os.Getenv("CONFIG_PATH")

	// Source 2: command-line flag.
	//   go run ./cmd/student-registry --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
