package main

import (
	"github.com/spf13/cobra"
)

// globalFlags are shared by every command.
type globalFlags struct {
	config    string
	verbose   int
	pretend   bool
	keep      bool
	keepGoing bool
	logFormat string
	checksum  bool
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	runCmd := newRunCommand(ctx)

	rootCmd := &cobra.Command{
		Use:   "showsort",
		Short: "Sort downloaded TV episodes into a Show/Season library",
		Long: `showsort moves video files from an inbox directory into a TV library laid
out as Show/Season N/Show SxxExx.ext, optionally hard-linking each new
episode into an "unwatched" directory, and reports duplicate episodes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: runCmd.RunE,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.CountVarP(&flags.verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	pf.BoolVarP(&flags.pretend, "pretend", "n", false, "Show what would happen without touching any file")
	pf.BoolVarP(&flags.keep, "keep", "k", false, "Hard-link inbox files into the library instead of moving them")
	pf.BoolVar(&flags.keepGoing, "keep-going", false, "Skip files that cannot be organized instead of stopping")
	pf.StringVar(&flags.logFormat, "log-format", "", "Override logging.format (console or json)")
	pf.BoolVar(&flags.checksum, "checksum", false, "Show content checksums next to duplicate episodes")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newReconcileCommand(ctx))
	rootCmd.AddCommand(newParseCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
