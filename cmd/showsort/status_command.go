package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showsort/internal/preflight"
	"showsort/internal/runlock"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and directory health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found; using environment)"
			}
			settings := statusSection{Title: "Configuration", Lines: []statusLine{
				{Label: "Config file", Kind: statusInfo, Detail: configDetail},
				{Label: "Video extensions", Kind: statusInfo, Detail: strings.Join(cfg.VideoExtensions, " ")},
			}}
			if !cfg.HasUnwatched() {
				settings.Lines = append(settings.Lines, statusLine{Label: "Unwatched directory", Kind: statusWarn, Detail: "not configured"})
			}
			lockKind, lockText := lockStatus(cfg.LockPath())
			settings.Lines = append(settings.Lines, statusLine{Label: "Run lock", Kind: lockKind, Detail: lockText})

			report := statusReport{Sections: []statusSection{
				settings,
				preflightSection("Directories", preflight.RunAll(cfg)),
			}}
			lines := report.render(shouldColorize(out))
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// lockStatus probes the run lock without holding it.
func lockStatus(path string) (statusKind, string) {
	lock, err := runlock.Acquire(path)
	if err != nil {
		if errors.Is(err, runlock.ErrHeld) {
			return statusWarn, "another run is in progress"
		}
		return statusError, err.Error()
	}
	_ = lock.Release()
	return statusOK, "idle"
}
