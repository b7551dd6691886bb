package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the djinnsearch configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Engine    EngineConfig    `yaml:"engine"`
	Directory DirectoryConfig `yaml:"directory"`
	Auth      AuthConfig      `yaml:"auth"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
	// UserHeader carries the authenticated username set by the fronting proxy.
	UserHeader string `yaml:"user_header"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// EngineConfig holds search index and query settings.
type EngineConfig struct {
	IndexPath         string `yaml:"index_path"` // empty = in-memory index
	CreateIfMissing   bool   `yaml:"create_if_missing"`
	DefaultOperator   string `yaml:"default_operator"` // AND, OR (default: AND)
	IncludeSpelling   bool   `yaml:"include_spelling"`
	MaxEdits          int    `yaml:"max_edits"`
	FacetLimit        int    `yaml:"facet_limit"`
	ResultsPerPage    int    `yaml:"results_per_page"`
	MaxResultsPerPage int    `yaml:"max_results_per_page"`
	IndexBatchSize    int    `yaml:"index_batch_size"`
}

// DirectoryConfig holds principal directory settings.
type DirectoryConfig struct {
	Driver           string                `yaml:"driver"` // redis, static (default: redis)
	Addrs            []string              `yaml:"addrs"`
	Password         string                `yaml:"password"`
	KeyPrefix        string                `yaml:"key_prefix"`
	CacheTTLSec      int                   `yaml:"cache_ttl_sec"` // 0 disables client-side caching
	ReadinessTimeout int                   `yaml:"readiness_timeout_sec"`
	Users            map[string]StaticUser `yaml:"users"` // static driver only
}

// StaticUser is a directory entry for the static driver.
type StaticUser struct {
	Groups    []int64 `yaml:"groups"`
	Superuser bool    `yaml:"superuser"`
}

// SearchConfig holds query validation settings.
type SearchConfig struct {
	// ContentTypes is the allowed content_type filter set. Empty allows any.
	ContentTypes    []string `yaml:"content_types"`
	MaxQueryLength  int      `yaml:"max_query_length"`
	MaxFilterValues int      `yaml:"max_filter_values"`
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from the YAML file at configPath.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Engine.DefaultOperator == "" {
		c.Engine.DefaultOperator = "AND"
	}
	if c.Engine.MaxEdits <= 0 {
		c.Engine.MaxEdits = 2
	}
	if c.Engine.FacetLimit <= 0 {
		c.Engine.FacetLimit = 20
	}
	if c.Engine.ResultsPerPage <= 0 {
		c.Engine.ResultsPerPage = 20
	}
	if c.Engine.MaxResultsPerPage <= 0 {
		c.Engine.MaxResultsPerPage = 100
	}
	if c.Engine.IndexBatchSize <= 0 {
		c.Engine.IndexBatchSize = 500
	}
	if c.Directory.Driver == "" {
		c.Directory.Driver = "redis"
	}
	if c.Directory.ReadinessTimeout <= 0 {
		c.Directory.ReadinessTimeout = 10
	}
	if c.Directory.KeyPrefix == "" {
		c.Directory.KeyPrefix = "djinn:"
	}
	if c.Auth.UserHeader == "" {
		c.Auth.UserHeader = "X-Remote-User"
	}
	if c.Search.MaxQueryLength <= 0 {
		c.Search.MaxQueryLength = 4096
	}
	if c.Search.MaxFilterValues <= 0 {
		c.Search.MaxFilterValues = 32
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch strings.ToUpper(c.Engine.DefaultOperator) {
	case "AND", "OR":
		// ok
	default:
		return fmt.Errorf("engine.default_operator must be \"AND\" or \"OR\", got %q", c.Engine.DefaultOperator)
	}
	if c.Engine.ResultsPerPage > c.Engine.MaxResultsPerPage {
		return fmt.Errorf(
			"engine.results_per_page (%d) exceeds engine.max_results_per_page (%d)",
			c.Engine.ResultsPerPage, c.Engine.MaxResultsPerPage,
		)
	}
	switch c.Directory.Driver {
	case "redis":
		if len(c.Directory.Addrs) == 0 {
			return fmt.Errorf("directory.addrs is required for the redis driver")
		}
	case "static":
		// ok
	default:
		return fmt.Errorf("directory.driver must be \"redis\" or \"static\", got %q", c.Directory.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
