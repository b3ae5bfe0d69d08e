package testsupport

import (
	"path/filepath"
	"testing"

	"popcorn/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The catalog path points at a copy of SampleCatalogCSV.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Catalog.Path = WriteCatalog(t, base, SampleCatalogCSV)

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCatalog replaces the catalog with the provided CSV content.
func WithCatalog(csv string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Path = WriteCatalog(b.t, b.baseDir, csv)
	}
}

// WithRecommendCounts overrides the seed and per-seed counts.
func WithRecommendCounts(seeds, perSeed int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recommend.SeedCount = seeds
		b.cfg.Recommend.PerSeedCount = perSeed
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
