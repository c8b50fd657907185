package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvp-joe/codebase-testdata/internal/storage"
)

var (
	// ErrInvalidRepositories indicates a non-positive repository count
	ErrInvalidRepositories = errors.New("invalid repository count")

	// ErrInvalidFilesPerRepo indicates a non-positive files-per-repository count
	ErrInvalidFilesPerRepo = errors.New("invalid files per repository")

	// ErrInvalidChunks indicates a non-positive chunks-per-file count
	ErrInvalidChunks = errors.New("invalid chunks per file")

	// ErrInvalidDimensions indicates invalid embedding dimensions
	ErrInvalidDimensions = errors.New("invalid embedding dimensions")

	// ErrEmptyPathPrefix indicates a missing repository path prefix
	ErrEmptyPathPrefix = errors.New("empty path prefix")

	// ErrEmptyLanguage indicates a missing code file language
	ErrEmptyLanguage = errors.New("empty language")

	// ErrInvalidBatchSize indicates a batch size outside [1, storage.MaxBatchSize]
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrInvalidMethod indicates an unsupported load method
	ErrInvalidMethod = errors.New("invalid load method")
)

// Validate checks that the configuration is valid and complete.
// The database target is checked separately by ConnectionString so that
// dry runs need no database.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateGeneration(&cfg.Generation); err != nil {
		errs = append(errs, err)
	}

	if err := validateLoad(&cfg.Load); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateGeneration(cfg *GenerationConfig) error {
	var errs []error

	if cfg.Repositories <= 0 {
		errs = append(errs, fmt.Errorf("%w: repositories must be positive, got %d", ErrInvalidRepositories, cfg.Repositories))
	}

	if cfg.FilesPerRepo <= 0 {
		errs = append(errs, fmt.Errorf("%w: files_per_repo must be positive, got %d", ErrInvalidFilesPerRepo, cfg.FilesPerRepo))
	}

	if cfg.ChunksPerFile <= 0 {
		errs = append(errs, fmt.Errorf("%w: chunks_per_file must be positive, got %d", ErrInvalidChunks, cfg.ChunksPerFile))
	}

	if cfg.EmbeddingDimensions <= 0 {
		errs = append(errs, fmt.Errorf("%w: dimensions must be positive, got %d", ErrInvalidDimensions, cfg.EmbeddingDimensions))
	}

	if strings.TrimSpace(cfg.PathPrefix) == "" {
		errs = append(errs, fmt.Errorf("%w: path_prefix is required", ErrEmptyPathPrefix))
	}

	if strings.TrimSpace(cfg.Language) == "" {
		errs = append(errs, fmt.Errorf("%w: language is required", ErrEmptyLanguage))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLoad(cfg *LoadConfig) error {
	var errs []error

	if cfg.BatchSize <= 0 || cfg.BatchSize > storage.MaxBatchSize {
		errs = append(errs, fmt.Errorf("%w: batch_size must be between 1 and %d, got %d", ErrInvalidBatchSize, storage.MaxBatchSize, cfg.BatchSize))
	}

	method := strings.ToLower(cfg.Method)
	if method != storage.MethodInsert && method != storage.MethodCopy {
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidMethod, storage.MethodInsert, storage.MethodCopy, cfg.Method))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// validationErrors keeps every underlying error reachable through errors.Is.
type validationErrors struct {
	errs []error
}

func (e *validationErrors) Error() string {
	var msgs []string
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *validationErrors) Unwrap() []error {
	return e.errs
}

// joinErrors combines multiple errors into a single error with clear formatting.
// Nested validation errors are flattened into one list.
func joinErrors(errs []error) error {
	var flat []error
	for _, err := range errs {
		var nested *validationErrors
		if errors.As(err, &nested) {
			flat = append(flat, nested.errs...)
			continue
		}
		flat = append(flat, err)
	}

	if len(flat) == 0 {
		return nil
	}

	if len(flat) == 1 {
		return flat[0]
	}

	return &validationErrors{errs: flat}
}
