package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"popcorn/internal/api"
	"popcorn/internal/config"
	"popcorn/internal/logging"
	"popcorn/internal/userstore"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	store   *userstore.Store
	service *api.Service
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// serviceFor opens the user store and builds the recommendation service.
// Catalog warnings go to the command's stderr so they do not pollute tables
// or JSON on stdout.
func (c *commandContext) serviceFor(cmd *cobra.Command) (*api.Service, error) {
	if c.service != nil {
		return c.service, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  "warn",
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	return c.openService(cfg, logger)
}

func (c *commandContext) openService(cfg *config.Config, logger *slog.Logger) (*api.Service, error) {
	store, err := userstore.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open user store: %w", err)
	}
	svc, err := api.NewService(cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	c.store = store
	c.service = svc
	return svc, nil
}

func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	c.service = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
