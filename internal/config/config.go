// Package config provides configuration loading for generate-test-data.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. CLI flags (--database, --repositories, ...)
//  2. Environment variables (DATABASE_URL, TESTDATA_*), including a .env file
//  3. Config file (.generate-test-data.yaml or --config)
//  4. Built-in defaults
//
// Environment Variable Convention:
//   - DATABASE_URL is read as-is for the connection string
//   - Everything else uses the TESTDATA_ prefix with underscores for nesting
//     (TESTDATA_GENERATION_REPOSITORIES, TESTDATA_LOAD_BATCH_SIZE)
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/mvp-joe/codebase-testdata/internal/generator"
	"github.com/mvp-joe/codebase-testdata/internal/storage"
)

// ErrMissingDatabase indicates that neither a connection string nor a
// database name was supplied. No connection is attempted.
var ErrMissingDatabase = errors.New("no database target: set DATABASE_URL or pass --database")

// Config represents the complete generate-test-data configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Load       LoadConfig       `yaml:"load" mapstructure:"load"`
}

// DatabaseConfig identifies the target PostgreSQL database.
// URL wins when set; otherwise a URL is built from Name, Host, Port and User.
// Passwords are left to PGPASSWORD or ~/.pgpass, which pgx reads itself.
type DatabaseConfig struct {
	URL  string `yaml:"url" mapstructure:"url"`   // full connection string (DATABASE_URL)
	Name string `yaml:"name" mapstructure:"name"` // database name (--database)
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	User string `yaml:"user" mapstructure:"user"`
}

// GenerationConfig controls the size and shape of the synthetic dataset.
type GenerationConfig struct {
	Repositories        int    `yaml:"repositories" mapstructure:"repositories"`
	FilesPerRepo        int    `yaml:"files_per_repo" mapstructure:"files_per_repo"`
	ChunksPerFile       int    `yaml:"chunks_per_file" mapstructure:"chunks_per_file"`
	EmbeddingDimensions int    `yaml:"embedding_dimensions" mapstructure:"embedding_dimensions"`
	PathPrefix          string `yaml:"path_prefix" mapstructure:"path_prefix"`
	Language            string `yaml:"language" mapstructure:"language"`
}

// LoadConfig controls how rows are written.
type LoadConfig struct {
	BatchSize int    `yaml:"batch_size" mapstructure:"batch_size"`
	Method    string `yaml:"method" mapstructure:"method"` // "insert" or "copy"
}

// Default returns a configuration with sensible defaults.
// The database target has no default and must be supplied.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			User: "postgres",
		},
		Generation: GenerationConfig{
			Repositories:        10,
			FilesPerRepo:        1,
			ChunksPerFile:       5,
			EmbeddingDimensions: generator.DefaultEmbeddingDimensions,
			PathPrefix:          generator.DefaultPathPrefix,
			Language:            generator.DefaultLanguage,
		},
		Load: LoadConfig{
			BatchSize: storage.DefaultBatchSize,
			Method:    storage.MethodInsert,
		},
	}
}

// ConnectionString resolves the PostgreSQL connection string.
// Returns ErrMissingDatabase when neither URL nor Name is set.
func (c *Config) ConnectionString() (string, error) {
	if c.Database.URL != "" {
		return c.Database.URL, nil
	}
	if c.Database.Name == "" {
		return "", ErrMissingDatabase
	}

	host := c.Database.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Database.Port
	if port == 0 {
		port = 5432
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + c.Database.Name,
	}
	if c.Database.User != "" {
		u.User = url.User(c.Database.User)
	}
	return u.String(), nil
}

// GeneratorOptions converts the generation section to generator options.
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Repositories:        c.Generation.Repositories,
		FilesPerRepo:        c.Generation.FilesPerRepo,
		ChunksPerFile:       c.Generation.ChunksPerFile,
		EmbeddingDimensions: c.Generation.EmbeddingDimensions,
		PathPrefix:          c.Generation.PathPrefix,
		Language:            c.Generation.Language,
	}
}

// String summarizes the dataset size, e.g. "10 repositories x 1 files x 5 chunks".
func (g GenerationConfig) String() string {
	return fmt.Sprintf("%d repositories x %d files x %d chunks", g.Repositories, g.FilesPerRepo, g.ChunksPerFile)
}
