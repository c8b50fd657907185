package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mvp-joe/codebase-testdata/internal/config"
	"github.com/mvp-joe/codebase-testdata/internal/generator"
	"github.com/mvp-joe/codebase-testdata/internal/seeder"
	"github.com/mvp-joe/codebase-testdata/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ProgramName is the name of the binary.
const ProgramName = "generate-test-data"

// runOptions holds the flags that steer a run but are not part of Config.
type runOptions struct {
	configFile string
	dryRun     bool
	quiet      bool
	verbose    bool
}

// NewRootCommand builds the generate-test-data command.
func NewRootCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   ProgramName,
		Short: "Seed PostgreSQL with synthetic repositories, code files and code chunks",
		Long: `generate-test-data fills the repositories, code_files and code_chunks tables
of an already-migrated database with synthetic rows for migration and
performance testing.

The target database comes from DATABASE_URL (or --database-url); otherwise
--database names a database on --db-host. Rows are written in batches, each
in its own transaction, so a failed run leaves earlier batches committed.`,
		Example: `  # 10 repositories, 1 file each, 5 chunks per file
  generate-test-data --database codebase_mcp_test

  # larger dataset via COPY
  DATABASE_URL=postgres://postgres@localhost/codebase_mcp_test \
    generate-test-data --repositories 1000 --files-per-repo 10 --method copy`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}

	flags := cmd.Flags()
	RegisterFlags(flags)
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./"+config.ConfigFileName+".yaml)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "generate and summarize without connecting to the database")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	cmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	return cmd
}

// RegisterFlags registers the flags that map onto Config keys.
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := config.Default()

	flags.String("database", "", "database name used to build the connection URL (ignored when DATABASE_URL is set)")
	flags.String("database-url", "", "PostgreSQL connection string (default $DATABASE_URL)")
	flags.String("db-host", defaults.Database.Host, "database host used with --database")
	flags.Int("db-port", defaults.Database.Port, "database port used with --database")
	flags.String("db-user", defaults.Database.User, "database user used with --database")

	flags.Int("repositories", defaults.Generation.Repositories, "number of repositories to generate")
	flags.Int("files-per-repo", defaults.Generation.FilesPerRepo, "code files per repository")
	flags.Int("chunks-per-repo", defaults.Generation.ChunksPerFile, "code chunks per code file")
	flags.Int("embedding-dimensions", defaults.Generation.EmbeddingDimensions, "dimensions of each chunk embedding")
	flags.String("path-prefix", defaults.Generation.PathPrefix, "parent directory of the synthetic repository paths")
	flags.String("language", defaults.Generation.Language, "language recorded for every code file")

	flags.Int("batch-size", defaults.Load.BatchSize, fmt.Sprintf("rows per batch (1-%d)", storage.MaxBatchSize))
	flags.String("method", defaults.Load.Method, "load method: insert or copy")
}

// Execute runs the root command with args and returns the first error.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func run(ctx context.Context, cmd *cobra.Command, opts *runOptions) error {
	cfg, err := config.LoadFromFlags(cmd.Flags(), opts.configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts)
	config.LogWithLogger(cfg, logger)

	gen, err := generator.New(cfg.GeneratorOptions())
	if err != nil {
		return err
	}
	plan := seeder.NewPlan(gen.Options(), cfg.Load.BatchSize)
	logger.Debug("Planned load",
		"dataset", cfg.Generation.String(),
		"slices", plan.Slices(),
		"repositories_per_slice", plan.SliceSize)

	out := cmd.OutOrStdout()
	if opts.dryRun {
		stats, err := seeder.DryRun(ctx, gen, plan)
		if err != nil {
			return err
		}
		printSummary(out, stats, true)
		return nil
	}

	connString, err := cfg.ConnectionString()
	if err != nil {
		return err
	}
	if cfg.Database.URL != "" && cfg.Database.Name != "" {
		logger.Warn("Both a connection string and --database are set; using the connection string",
			"database", cfg.Database.Name)
	}

	pool, err := storage.Open(ctx, connString)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Debug("Connected to database", "url", config.RedactConnectionString(connString))

	progress := seeder.NewProgress(NewProgressReporter(cmd.ErrOrStderr(), logger, opts.quiet, opts.verbose), plan)
	writer, err := storage.NewWriter(cfg.Load.Method, pool, cfg.Load.BatchSize, progress)
	if err != nil {
		return err
	}

	stats, err := seeder.Run(ctx, writer, gen, plan)
	if err != nil {
		if stats != nil {
			logger.Info("Rows committed before the failure",
				"repositories", stats.Repositories,
				"code_files", stats.CodeFiles,
				"code_chunks", stats.CodeChunks)
		}
		return fmt.Errorf("failed to load test data: %w", err)
	}

	if opts.verbose {
		counts, err := storage.CountRows(ctx, pool)
		if err != nil {
			return err
		}
		logger.Debug("Table row counts",
			"repositories", counts.Repositories,
			"code_files", counts.CodeFiles,
			"code_chunks", counts.CodeChunks)
	}

	printSummary(out, stats, false)
	return nil
}

// newLogger returns a text logger on w: debug with --verbose, warnings only with --quiet.
func newLogger(w io.Writer, opts *runOptions) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
