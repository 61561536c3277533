package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExtensions()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		"SHOWSORT_INBOX":     &c.Inbox,
		"SHOWSORT_LIBRARY":   &c.Library,
		"SHOWSORT_UNWATCHED": &c.Unwatched,
	} {
		if value, ok := os.LookupEnv(env); ok && strings.TrimSpace(value) != "" {
			*field = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Inbox, err = expandPath(strings.TrimSpace(c.Inbox)); err != nil {
		return fmt.Errorf("inbox: %w", err)
	}
	if c.Library, err = expandPath(strings.TrimSpace(c.Library)); err != nil {
		return fmt.Errorf("library: %w", err)
	}
	if c.Unwatched, err = expandPath(strings.TrimSpace(c.Unwatched)); err != nil {
		return fmt.Errorf("unwatched: %w", err)
	}
	if strings.TrimSpace(c.StateDir) == "" {
		c.StateDir = defaultStateDir
	}
	if c.StateDir, err = expandPath(c.StateDir); err != nil {
		return fmt.Errorf("state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtensions() {
	if len(c.VideoExtensions) == 0 {
		c.VideoExtensions = append([]string(nil), DefaultVideoExtensions...)
		return
	}
	exts := make([]string, 0, len(c.VideoExtensions))
	seen := make(map[string]struct{}, len(c.VideoExtensions))
	for _, ext := range c.VideoExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" || normalized == "." {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.VideoExtensions = exts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
