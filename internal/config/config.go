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

// Config holds the adrecon run configuration.
type Config struct {
	Directory DirectoryConfig `yaml:"directory"`
	Query     QueryConfig     `yaml:"query"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// DirectoryConfig holds LDAP connection settings.
type DirectoryConfig struct {
	URL        string `yaml:"url"`      // ldap://host:389 or ldaps://host:636
	BindDN     string `yaml:"bind_dn"`  // empty for anonymous bind
	Password   string `yaml:"password"` // use ${VAR} expansion, never a literal
	StartTLS   bool   `yaml:"start_tls"`
	TimeoutSec int    `yaml:"timeout_sec"`
	PageSize   uint32 `yaml:"page_size"`
}

// QueryConfig holds directory query settings.
type QueryConfig struct {
	SearchBase   string   `yaml:"search_base"`
	AllowPrefix  string   `yaml:"allow_prefix"`
	DenyPrefixes []string `yaml:"deny_prefixes"`
	OutputFile   string   `yaml:"output_file"`
}

// ReconcileConfig holds reconciliation settings.
type ReconcileConfig struct {
	GSNFile    string `yaml:"gsn_file"`
	OutputFile string `yaml:"output_file"`
}

// MetricsConfig holds run-metrics settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node_exporter textfile path; empty disables
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

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
	if c.Directory.TimeoutSec <= 0 {
		c.Directory.TimeoutSec = 60
	}
	if c.Directory.PageSize == 0 {
		c.Directory.PageSize = 1000
	}
	if c.Query.AllowPrefix == "" {
		c.Query.AllowPrefix = "SG"
		if len(c.Query.DenyPrefixes) == 0 {
			c.Query.DenyPrefixes = []string{"SGD", "SGG", "SGSAH", "SGSI", "SGSR", "SGT"}
		}
	}
	if c.Query.OutputFile == "" {
		c.Query.OutputFile = filepath.Join("data", "ad_results.json")
	}
	if c.Reconcile.GSNFile == "" {
		c.Reconcile.GSNFile = filepath.Join("data", "gsn_data.json")
	}
	if c.Reconcile.OutputFile == "" {
		c.Reconcile.OutputFile = filepath.Join("data", "ad_comparison_results.json")
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Directory.URL == "" {
		return fmt.Errorf("directory.url is required")
	}
	if !strings.HasPrefix(c.Directory.URL, "ldap://") && !strings.HasPrefix(c.Directory.URL, "ldaps://") {
		return fmt.Errorf("directory.url must start with ldap:// or ldaps://, got %q", c.Directory.URL)
	}
	if c.Query.SearchBase == "" {
		return fmt.Errorf("query.search_base is required")
	}
	for _, d := range c.Query.DenyPrefixes {
		if !strings.HasPrefix(d, c.Query.AllowPrefix) || d == c.Query.AllowPrefix {
			return fmt.Errorf(
				"query.deny_prefixes entry %q must extend allow_prefix %q",
				d, c.Query.AllowPrefix,
			)
		}
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
