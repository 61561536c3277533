package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"showsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The inbox and library directories exist; unwatched is unset.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Inbox = filepath.Join(base, "inbox")
	cfgVal.Library = filepath.Join(base, "library")
	cfgVal.StateDir = filepath.Join(base, "state")
	cfgVal.Logging.File = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	builder.ensureDir(cfgVal.Inbox)
	builder.ensureDir(cfgVal.Library)
	if cfgVal.HasUnwatched() {
		builder.ensureDir(cfgVal.Unwatched)
	}

	return builder.cfg
}

// WithUnwatched enables the unwatched mirror under the test base directory.
func WithUnwatched() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Unwatched = filepath.Join(b.baseDir, "unwatched")
	}
}

// WithExtensions overrides the video extension allow-list.
func WithExtensions(exts ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.VideoExtensions = exts
	}
}

// BaseDir returns the root temp directory backing the config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Inbox)
}

func (b *configBuilder) ensureDir(path string) {
	b.t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		b.t.Fatalf("mkdir %s: %v", path, err)
	}
}
