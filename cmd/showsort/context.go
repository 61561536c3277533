package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"showsort/internal/config"
	"showsort/internal/logging"
	"showsort/internal/organizer"
	"showsort/internal/preflight"
	"showsort/internal/relocate"
	"showsort/internal/runlock"
)

type commandContext struct {
	flags *globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		c.configPath, c.configExists = path, exists
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

// newLogger builds the run logger. Pretend mode counts as one extra -v so a
// dry run shows every planned action.
func (c *commandContext) newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	verbosity := c.flags.verbose
	if c.flags.pretend {
		verbosity++
	}
	format := cfg.Logging.Format
	if strings.TrimSpace(c.flags.logFormat) != "" {
		format = c.flags.logFormat
	}
	outputs := []string{"stderr"}
	if path := cfg.LogPath(); path != "" {
		outputs = append(outputs, path)
	}
	return logging.New(logging.Options{
		Level:         cfg.Logging.Level,
		Verbosity:     verbosity,
		Format:        format,
		OutputPaths:   outputs,
		MaxSizeMB:     cfg.Logging.MaxSizeMB,
		RetentionDays: cfg.Logging.RetentionDays,
		Stderr:        cmd.ErrOrStderr(),
	})
}

// passEnv is everything an organizer pass needs.
type passEnv struct {
	cfg       *config.Config
	logger    *slog.Logger
	relocator *relocate.Relocator
	settings  organizer.Settings
}

// withPass checks the directories, takes the run lock, and invokes fn with a
// context carrying a fresh run id.
func (c *commandContext) withPass(cmd *cobra.Command, fn func(context.Context, passEnv) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.newLogger(cmd, cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, r := range failed {
			details = append(details, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
		return fmt.Errorf("preflight failed:\n  %s", strings.Join(details, "\n  "))
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())

	var policy organizer.FailurePolicy = organizer.AbortOnFailure
	if c.flags.keepGoing {
		policy = organizer.ContinueOnFailure(logger)
	}

	return fn(ctx, passEnv{
		cfg:       cfg,
		logger:    logger,
		relocator: relocate.New(logger),
		settings: organizer.Settings{
			Extensions: organizer.NewExtensionFilter(cfg.VideoExtensions),
			Policy:     policy,
			Pretend:    c.flags.pretend,
		},
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
