package config

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
)

// keywordPassword matches password=... in key/value connection strings.
var keywordPassword = regexp.MustCompile(`(password\s*=\s*)('[^']*'|\S+)`)

// RedactConnectionString masks the password in a URL or key/value connection string.
func RedactConnectionString(conn string) string {
	if u, err := url.Parse(conn); err == nil && u.Scheme != "" {
		return u.Redacted()
	}
	return keywordPassword.ReplaceAllString(conn, "${1}xxxxx")
}

// LogWithLogger logs the resolved settings at debug level, skipping irrelevant ones
func LogWithLogger(cfg *Config, logger *slog.Logger) {
	ctx := context.Background()
	if cfg.Database.URL != "" {
		logger.DebugContext(ctx, "Config: database.url", "value", RedactConnectionString(cfg.Database.URL))
	} else {
		logger.DebugContext(ctx, "Config: database.name", "value", cfg.Database.Name)
		logger.DebugContext(ctx, "Config: database.host", "value", cfg.Database.Host)
		logger.DebugContext(ctx, "Config: database.port", "value", cfg.Database.Port)
		logger.DebugContext(ctx, "Config: database.user", "value", cfg.Database.User)
	}
	logger.DebugContext(ctx, "Config: generation", "value", GenerationLogValue(cfg.Generation))
	logger.DebugContext(ctx, "Config: load", "value", LoadLogValue(cfg.Load))
}

// GenerationLogValue returns a slog.Value for GenerationConfig
func GenerationLogValue(g GenerationConfig) slog.Value {
	return slog.GroupValue(
		slog.Int("repositories", g.Repositories),
		slog.Int("files_per_repo", g.FilesPerRepo),
		slog.Int("chunks_per_file", g.ChunksPerFile),
		slog.Int("embedding_dimensions", g.EmbeddingDimensions),
		slog.String("path_prefix", g.PathPrefix),
		slog.String("language", g.Language),
	)
}

// LoadLogValue returns a slog.Value for LoadConfig
func LoadLogValue(l LoadConfig) slog.Value {
	return slog.GroupValue(
		slog.Int("batch_size", l.BatchSize),
		slog.String("method", l.Method),
	)
}
