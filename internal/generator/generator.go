// Package generator synthesizes repositories, code files and code chunks in
// memory. It never touches the database; see package storage for loading.
package generator

import (
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/mvp-joe/codebase-testdata/internal/storage"
)

// Defaults used when Options fields are left empty.
const (
	DefaultPathPrefix = "/tmp/codebase-mcp-test-data"
	DefaultLanguage   = "python"
)

// ErrInvalidOptions indicates a non-positive count or dimension.
var ErrInvalidOptions = errors.New("invalid generator options")

// Options controls the shape of the generated dataset.
type Options struct {
	Repositories        int    // number of repositories (N)
	FilesPerRepo        int    // code files per repository
	ChunksPerFile       int    // code chunks per code file (K)
	EmbeddingDimensions int    // vector size of each chunk embedding
	PathPrefix          string // parent directory of every repository path
	Language            string // language column of every code file
}

// Dataset is the generated output: three ordered slices where every foreign
// key points at a record earlier in the run.
type Dataset struct {
	Repositories []storage.Repository
	CodeFiles    []storage.CodeFile
	CodeChunks   []storage.CodeChunk
}

// Generator produces Datasets. Construct with New.
type Generator struct {
	opts  Options
	now   func() time.Time
	newID func() uuid.UUID
	stamp time.Time // creation time of every record, set on first use
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock overrides the time source used for timestamp columns.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDFunc overrides the UUID source used for primary keys.
func WithIDFunc(newID func() uuid.UUID) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// New validates opts and returns a Generator.
func New(opts Options, options ...Option) (*Generator, error) {
	if opts.PathPrefix == "" {
		opts.PathPrefix = DefaultPathPrefix
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.EmbeddingDimensions == 0 {
		opts.EmbeddingDimensions = DefaultEmbeddingDimensions
	}

	switch {
	case opts.Repositories <= 0:
		return nil, fmt.Errorf("%w: repositories must be positive, got %d", ErrInvalidOptions, opts.Repositories)
	case opts.FilesPerRepo <= 0:
		return nil, fmt.Errorf("%w: files per repository must be positive, got %d", ErrInvalidOptions, opts.FilesPerRepo)
	case opts.ChunksPerFile <= 0:
		return nil, fmt.Errorf("%w: chunks per file must be positive, got %d", ErrInvalidOptions, opts.ChunksPerFile)
	case opts.EmbeddingDimensions < 0:
		return nil, fmt.Errorf("%w: embedding dimensions must be positive, got %d", ErrInvalidOptions, opts.EmbeddingDimensions)
	}

	g := &Generator{
		opts:  opts,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, o := range options {
		o(g)
	}
	return g, nil
}

// Options returns the effective options, with defaults applied.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate builds the full dataset.
func (g *Generator) Generate() *Dataset {
	return g.GenerateRange(0, g.opts.Repositories)
}

// GenerateRange builds repositories [lo, hi) with their code files and
// chunks. hi is clamped to the configured repository count. Every record of a
// Generator shares one creation timestamp, taken on the first call, so
// consecutive ranges add up to the same rows as a single Generate apart from ids.
func (g *Generator) GenerateRange(lo, hi int) *Dataset {
	lo = max(lo, 0)
	hi = min(hi, g.opts.Repositories)
	n := max(hi-lo, 0)

	if g.stamp.IsZero() {
		g.stamp = g.now().UTC()
	}
	now := g.stamp

	ds := &Dataset{
		Repositories: make([]storage.Repository, 0, n),
		CodeFiles:    make([]storage.CodeFile, 0, n*g.opts.FilesPerRepo),
		CodeChunks:   make([]storage.CodeChunk, 0, n*g.opts.FilesPerRepo*g.opts.ChunksPerFile),
	}

	for i := lo; i < hi; i++ {
		repo := g.repository(i, now)
		ds.Repositories = append(ds.Repositories, repo)

		for j := 0; j < g.opts.FilesPerRepo; j++ {
			file, chunks := g.codeFile(repo, i, j, now)
			ds.CodeFiles = append(ds.CodeFiles, file)
			ds.CodeChunks = append(ds.CodeChunks, chunks...)
		}
	}

	return ds
}

// RepositoryPath returns the unique path of repository i under prefix.
func RepositoryPath(prefix string, repoIdx int) string {
	return path.Join(prefix, fmt.Sprintf("repo_%06d", repoIdx))
}

// repository synthesizes repository i. Even indexes are marked as indexed,
// odd indexes have never been indexed.
func (g *Generator) repository(i int, now time.Time) storage.Repository {
	repo := storage.Repository{
		ID:        g.newID(),
		Path:      RepositoryPath(g.opts.PathPrefix, i),
		Name:      fmt.Sprintf("test-repo-%d", i),
		IsActive:  true,
		CreatedAt: now,
	}
	if i%2 == 0 {
		indexed := now
		repo.LastIndexedAt = &indexed
	}
	return repo
}

func (g *Generator) codeFile(repo storage.Repository, i, j int, now time.Time) (storage.CodeFile, []storage.CodeChunk) {
	content, snippets := synthesizeFile(i, j, g.opts.ChunksPerFile)
	relPath := RelativePath(i, j)

	file := storage.CodeFile{
		ID:           g.newID(),
		RepositoryID: repo.ID,
		Path:         path.Join(repo.Path, relPath),
		RelativePath: relPath,
		ContentHash:  ContentHash(content),
		SizeBytes:    int64(len(content)),
		Language:     g.opts.Language,
		ModifiedAt:   now,
		IndexedAt:    now,
		IsDeleted:    false,
		CreatedAt:    now,
	}

	chunks := make([]storage.CodeChunk, len(snippets))
	for k, s := range snippets {
		chunks[k] = storage.CodeChunk{
			ID:         g.newID(),
			CodeFileID: file.ID,
			Content:    s.Text,
			StartLine:  s.StartLine,
			EndLine:    s.EndLine,
			ChunkType:  s.ChunkType,
			Embedding:  PlaceholderEmbedding(s.Text, g.opts.EmbeddingDimensions),
			CreatedAt:  now,
		}
	}

	return file, chunks
}
