package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/nishad/drugrake/internal/enrichment"
	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/paths"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. DRUGRAKE_SERVER_PORT.
const EnvPrefix = "DRUGRAKE"

// Config represents the drugrake configuration
type Config struct {
	Source        string           `yaml:"source"` // DrugBank XML document
	DataDirectory string           `yaml:"data_directory" split_words:"true"`
	Database      DatabaseConfig   `yaml:"database"`
	Search        SearchConfig     `yaml:"search"`
	Server        ServerConfig     `yaml:"server"`
	Enrichment    EnrichmentConfig `yaml:"enrichment"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// DatabaseConfig contains SQLite export settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig contains search-related settings
type SearchConfig struct {
	IndexPath    string `yaml:"index_path" split_words:"true"`
	DefaultLimit int    `yaml:"default_limit" split_words:"true"`
}

// ServerConfig contains lookup server settings
type ServerConfig struct {
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	EnableCORS bool          `yaml:"cors" split_words:"true"`
	Watch      bool          `yaml:"watch"`    // reload the snapshot when the source changes
	Debounce   time.Duration `yaml:"debounce"` // quiet period before a reload
}

// EnrichmentConfig contains UniProt lookup settings
type EnrichmentConfig struct {
	BaseURL    string        `yaml:"base_url" split_words:"true"`
	OrganismID int           `yaml:"organism_id" split_words:"true"`
	MinDelay   time.Duration `yaml:"min_delay" split_words:"true"`
	Timeout    time.Duration `yaml:"timeout"`
	CacheSize  int           `yaml:"cache_size" split_words:"true"`
}

// LoggingConfig selects the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	p := paths.GetPaths()

	return &Config{
		Source:        paths.GetSourcePath(),
		DataDirectory: p.DataDir,
		Database: DatabaseConfig{
			Path: paths.GetDatabasePath(),
		},
		Search: SearchConfig{
			IndexPath:    paths.GetIndexPath(),
			DefaultLimit: 20,
		},
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			Watch:    false,
			Debounce: 500 * time.Millisecond,
		},
		Enrichment: EnrichmentConfig{
			BaseURL:    enrichment.DefaultBaseURL,
			OrganismID: enrichment.DefaultOrganismID,
			MinDelay:   enrichment.DefaultMinDelay,
			Timeout:    enrichment.DefaultTimeout,
			CacheSize:  enrichment.DefaultCacheSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a file, then applies a .env file found next
// to it or in the working directory, then DRUGRAKE_* environment overrides.
func Load(path string) (*Config, error) {
	const op errors.Op = "config.Load"

	// Start with defaults
	config := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.E(op, errors.KindConfig, "failed to read config file", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.E(op, errors.KindConfig, "failed to parse config file", err)
		}
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		return nil, errors.E(op, errors.KindConfig, "failed to read .env", err)
	}
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, errors.E(op, errors.KindConfig, "invalid environment override", err)
	}

	config.Source = expandPath(config.Source)
	config.DataDirectory = expandPath(config.DataDirectory)
	config.Database.Path = expandPath(config.Database.Path)
	config.Search.IndexPath = expandPath(config.Search.IndexPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadDotEnv loads each existing file once. Variables already set in the
// environment win.
func loadDotEnv(files ...string) error {
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	const op errors.Op = "config.Validate"

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.E(op, errors.KindConfig, fmt.Sprintf("server port %d out of range", c.Server.Port))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return errors.E(op, errors.KindConfig, fmt.Sprintf("unknown logging format %q", c.Logging.Format))
	}
	if c.Enrichment.MinDelay < 0 || c.Enrichment.Timeout < 0 || c.Server.Debounce < 0 {
		return errors.E(op, errors.KindConfig, "durations must not be negative")
	}
	if c.Search.DefaultLimit <= 0 {
		return errors.E(op, errors.KindConfig, "search default_limit must be positive")
	}
	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("DRUGRAKE_CONFIG"); path != "" {
		return path
	}

	// Check current directory
	if _, err := os.Stat("drugrake.yaml"); err == nil {
		return "drugrake.yaml"
	}

	// Use default location
	p := paths.GetPaths()
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// EnsureDirectories creates necessary directories
func (c *Config) EnsureDirectories() error {
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	dirs := []string{
		c.DataDirectory,
		filepath.Dir(c.Database.Path),
		filepath.Dir(c.Search.IndexPath),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// EnrichmentOptions maps the enrichment section onto client options.
func (c *Config) EnrichmentOptions() enrichment.Options {
	return enrichment.Options{
		BaseURL:    c.Enrichment.BaseURL,
		OrganismID: c.Enrichment.OrganismID,
		MinDelay:   c.Enrichment.MinDelay,
		Timeout:    c.Enrichment.Timeout,
		CacheSize:  c.Enrichment.CacheSize,
	}
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}

	return path
}
