package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"apollo/internal/catalog"
	"apollo/internal/config"
	"apollo/internal/logging"
	"apollo/internal/prompt"
)

type commandContext struct {
	configFlag *string
	yesFlag    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	store *catalog.Store
}

func newCommandContext(configFlag *string, yesFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		yesFlag:    yesFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, _ = logging.WithRun(logger)
	})
	return c.logger, c.loggerErr
}

// openStore opens the catalog once per invocation; close releases it.
func (c *commandContext) openStore(ctx context.Context) (*catalog.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(ctx, cfg.Files.DatabaseName, logger)
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// chooser prompts on the terminal unless --yes was given.
func (c *commandContext) chooser(cmd *cobra.Command) prompt.Chooser {
	if c.yesFlag != nil && *c.yesFlag {
		return prompt.Default{}
	}
	return prompt.NewTerminal(os.Stdin, cmd.ErrOrStderr())
}

// session bundles what a catalog command needs.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *catalog.Store
}

// withSession opens the catalog for fn and closes it afterwards.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(*session) error) (err error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	store, err := c.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := c.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(&session{cfg: cfg, logger: logger, store: store})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
