package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"popcorn/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("POPCORN_CATALOG", "")
	t.Setenv("POPCORN_DATA_DIR", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "popcorn")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Catalog.Path != filepath.Join(wantData, "imdb_top_1000.csv") {
		t.Fatalf("unexpected catalog path: %q", cfg.Catalog.Path)
	}
	if cfg.Paths.APIBind != "127.0.0.1:8501" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Recommend.SeedCount != 3 || cfg.Recommend.PerSeedCount != 3 {
		t.Fatalf("unexpected seeding defaults: %+v", cfg.Recommend)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "users.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.LogDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("POPCORN_CATALOG", "")
	t.Setenv("POPCORN_DATA_DIR", "")
	configPath := filepath.Join(tempDir, "popcorn.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Catalog struct {
			Path string `toml:"path"`
		} `toml:"catalog"`
		Recommend struct {
			DefaultCount int `toml:"default_count"`
			SeedCount    int `toml:"seed_count"`
		} `toml:"recommend"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Catalog.Path = filepath.Join(tempDir, "movies.csv")
	custom.Recommend.DefaultCount = 8
	custom.Recommend.SeedCount = 2
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Catalog.Path != custom.Catalog.Path {
		t.Fatalf("expected catalog path from file, got %q", cfg.Catalog.Path)
	}
	if cfg.Recommend.DefaultCount != 8 || cfg.Recommend.SeedCount != 2 {
		t.Fatalf("expected recommend overrides, got %+v", cfg.Recommend)
	}
	if cfg.Recommend.PerSeedCount != 3 {
		t.Fatalf("expected per-seed default to survive, got %d", cfg.Recommend.PerSeedCount)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
}

func TestEnvironmentOverridesCatalogPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	catalogPath := filepath.Join(t.TempDir(), "catalog.csv")
	t.Setenv("POPCORN_CATALOG", catalogPath)
	t.Setenv("POPCORN_DATA_DIR", "")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Catalog.Path != catalogPath {
		t.Fatalf("expected env catalog path, got %q", cfg.Catalog.Path)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative seed count", func(c *config.Config) { c.Recommend.SeedCount = -1 }, "recommend.seed_count"},
		{"huge count", func(c *config.Config) { c.Recommend.DefaultCount = 1000 }, "recommend.default_count"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"empty data dir", func(c *config.Config) { c.Paths.DataDir = "" }, "paths.data_dir"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("POPCORN_CATALOG", "")
	t.Setenv("POPCORN_DATA_DIR", "")
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Recommend.SimilarCount != 10 {
		t.Fatalf("unexpected similar count: %d", cfg.Recommend.SimilarCount)
	}
}
