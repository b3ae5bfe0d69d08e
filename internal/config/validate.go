package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set (or export POPCORN_CATALOG)")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if err := ensureRange(map[string]int{
		"recommend.default_count":  c.Recommend.DefaultCount,
		"recommend.similar_count":  c.Recommend.SimilarCount,
		"recommend.seed_count":     c.Recommend.SeedCount,
		"recommend.per_seed_count": c.Recommend.PerSeedCount,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensureRange(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
		if value > MaxRecommendationCount {
			return fmt.Errorf("%s must be at most %d", key, MaxRecommendationCount)
		}
	}
	return nil
}
