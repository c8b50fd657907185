package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file searched for in the root directory (without extension).
	ConfigFileName = ".generate-test-data"

	// EnvPrefix prefixes every environment variable except DATABASE_URL.
	EnvPrefix = "TESTDATA"

	// DatabaseURLEnv holds the full PostgreSQL connection string.
	DatabaseURLEnv = "DATABASE_URL"
)

// flagKeys maps CLI flag names to config keys. Flags missing from the
// FlagSet are skipped.
var flagKeys = map[string]string{
	"database":             "database.name",
	"database-url":         "database.url",
	"db-host":              "database.host",
	"db-port":              "database.port",
	"db-user":              "database.user",
	"repositories":         "generation.repositories",
	"files-per-repo":       "generation.files_per_repo",
	"chunks-per-repo":      "generation.chunks_per_file",
	"embedding-dimensions": "generation.embedding_dimensions",
	"path-prefix":          "generation.path_prefix",
	"language":             "generation.language",
	"batch-size":           "load.batch_size",
	"method":               "load.method",
}

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from flags, environment, config file and defaults.
	// Priority: defaults → config file → environment variables → flags (flags win)
	Load() (*Config, error)
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	RootDir    string         // directory searched for the config file and .env
	ConfigFile string         // explicit config file; a missing file is an error
	Flags      *pflag.FlagSet // CLI flags (highest priority), may be nil
}

type loader struct {
	opts LoaderOptions
}

// NewLoader creates a new configuration loader.
func NewLoader(opts LoaderOptions) Loader {
	return &loader{opts: opts}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. CLI flags that were explicitly set
// 2. Environment variables (DATABASE_URL, TESTDATA_*), after loading .env
// 3. Config file (.generate-test-data.yaml or LoaderOptions.ConfigFile)
// 4. Default values
//
// Load does not validate; call Validate on the result.
func (l *loader) Load() (*Config, error) {
	if err := loadDotEnv(filepath.Join(l.opts.RootDir, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()

	if l.opts.ConfigFile != "" {
		v.SetConfigFile(l.opts.ConfigFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir())
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., TESTDATA_LOAD_BATCH_SIZE)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// DATABASE_URL is the conventional name; the prefixed form also works
	_ = v.BindEnv("database.url", DatabaseURLEnv, EnvPrefix+"_DATABASE_URL")
	_ = v.BindEnv("database.name")
	_ = v.BindEnv("database.host")
	_ = v.BindEnv("database.port")
	_ = v.BindEnv("database.user")

	_ = v.BindEnv("generation.repositories")
	_ = v.BindEnv("generation.files_per_repo")
	_ = v.BindEnv("generation.chunks_per_file")
	_ = v.BindEnv("generation.embedding_dimensions")
	_ = v.BindEnv("generation.path_prefix")
	_ = v.BindEnv("generation.language")

	_ = v.BindEnv("load.batch_size")
	_ = v.BindEnv("load.method")

	// Bind CLI flags if provided (highest priority)
	if l.opts.Flags != nil {
		for name, key := range flagKeys {
			if flag := l.opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	// Set defaults in viper
	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable unless it was asked for explicitly
		var notFound viper.ConfigFileNotFoundError
		if l.opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.URL = strings.TrimSpace(cfg.Database.URL)
	cfg.Database.Name = strings.TrimSpace(cfg.Database.Name)
	cfg.Load.Method = strings.ToLower(strings.TrimSpace(cfg.Load.Method))

	return cfg, nil
}

func (l *loader) rootDir() string {
	if l.opts.RootDir == "" {
		return "."
	}
	return l.opts.RootDir
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Database defaults (no name/url: the target must be supplied)
	v.SetDefault("database.url", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.user", defaults.Database.User)

	// Generation defaults
	v.SetDefault("generation.repositories", defaults.Generation.Repositories)
	v.SetDefault("generation.files_per_repo", defaults.Generation.FilesPerRepo)
	v.SetDefault("generation.chunks_per_file", defaults.Generation.ChunksPerFile)
	v.SetDefault("generation.embedding_dimensions", defaults.Generation.EmbeddingDimensions)
	v.SetDefault("generation.path_prefix", defaults.Generation.PathPrefix)
	v.SetDefault("generation.language", defaults.Generation.Language)

	// Load defaults
	v.SetDefault("load.batch_size", defaults.Load.BatchSize)
	v.SetDefault("load.method", defaults.Load.Method)
}

// loadDotEnv loads variables from a .env file without overriding variables
// already present in the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadFromFlags loads config from the current working directory with the
// given flags. configFile, when set, replaces the config file search.
func LoadFromFlags(flags *pflag.FlagSet, configFile string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(LoaderOptions{RootDir: wd, ConfigFile: configFile, Flags: flags}).Load()
}
