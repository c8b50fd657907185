package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactConnectionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"url with password", "postgres://admin:s3cret@db:5432/app", "postgres://admin:xxxxx@db:5432/app"},
		{"url without password", "postgres://admin@db:5432/app", "postgres://admin@db:5432/app"},
		{"keyword form", "host=db user=admin password=s3cret dbname=app", "host=db user=admin password=xxxxx dbname=app"},
		{"quoted keyword form", "host=db password='my secret' dbname=app", "host=db password=xxxxx dbname=app"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RedactConnectionString(tt.in))
		})
	}
}

func TestLogWithLogger_MasksPassword(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := Default()
	cfg.Database.URL = "postgres://admin:s3cret@db:5432/app"

	LogWithLogger(cfg, logger)

	out := buf.String()
	assert.NotContains(t, out, "s3cret")
	assert.Contains(t, out, "xxxxx")
	assert.Contains(t, out, "repositories=10")
	assert.Contains(t, out, "method=insert")
}
