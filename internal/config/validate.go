package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"showsort/internal/fault"
)

// MissingRolesError reports required directory roles absent from the config.
type MissingRolesError struct {
	Roles []string
	Path  string
}

func (e *MissingRolesError) Error() string {
	location := e.Path
	if location == "" {
		location = "the config file"
	}
	return fmt.Sprintf(
		"missing required directory role(s): %s\nset them in %s, for example:\n\n%s\n",
		strings.Join(e.Roles, ", "), location, ExampleRoles,
	)
}

func (e *MissingRolesError) Is(target error) bool {
	return target == fault.ErrConfiguration
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRoles(); err != nil {
		return err
	}
	if err := c.validateExtensions(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRoles() error {
	var missing []string
	if c.Inbox == "" {
		missing = append(missing, "inbox")
	}
	if c.Library == "" {
		missing = append(missing, "library")
	}
	if len(missing) > 0 {
		path, err := DefaultConfigPath()
		if err != nil {
			path = "~/.config/showsort/config.toml"
		}
		return &MissingRolesError{Roles: missing, Path: path}
	}

	roles := map[string]string{"inbox": c.Inbox, "library": c.Library}
	if c.HasUnwatched() {
		roles["unwatched"] = c.Unwatched
	}
	for _, pair := range [][2]string{{"inbox", "library"}, {"inbox", "unwatched"}, {"library", "unwatched"}} {
		a, aok := roles[pair[0]]
		b, bok := roles[pair[1]]
		if !aok || !bok {
			continue
		}
		if filepath.Clean(a) == filepath.Clean(b) {
			return fault.Wrap(fault.ErrConfiguration, "", "validate config",
				fmt.Sprintf("%s and %s must be different directories (both %s)", pair[0], pair[1], a), nil)
		}
		// A walk of the outer role would reach the inner one and collapse
		// its hard links.
		for _, order := range [][2]string{{pair[0], pair[1]}, {pair[1], pair[0]}} {
			outer, inner := order[0], order[1]
			if isWithin(roles[outer], roles[inner]) {
				return fault.Wrap(fault.ErrConfiguration, "", "validate config",
					fmt.Sprintf("%s (%s) must not be inside %s (%s)", inner, roles[inner], outer, roles[outer]), nil)
			}
		}
	}
	return nil
}

// isWithin reports whether path lies strictly beneath root.
func isWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func (c *Config) validateExtensions() error {
	if len(c.VideoExtensions) == 0 {
		return fault.Wrap(fault.ErrConfiguration, "", "validate config", "video_extensions must include at least one extension", nil)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fault.Wrap(fault.ErrConfiguration, "", "validate config",
			fmt.Sprintf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level), errors.ErrUnsupported)
	}
}
