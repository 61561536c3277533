package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"showsort/internal/config"
	"showsort/internal/episode"
	"showsort/internal/organizer"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "parse [path...]",
		Short: "Preview how file names are identified without moving anything",
		Long: `Parse every video file under the given files or directories (default: the
current directory, recursively) and show the identity and library name each
one resolves to. Files named explicitly are parsed whatever their extension.`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			exts := config.DefaultVideoExtensions
			if cfg, err := ctx.ensureConfig(); err == nil {
				exts = cfg.VideoExtensions
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			files, err := collectParseTargets(args, organizer.NewExtensionFilter(exts))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failures := 0
			rows := make([][]string, 0, len(files))
			for _, path := range files {
				base := filepath.Base(path)
				id, err := episode.Parse(path)
				if err != nil {
					failures++
					if plain {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", base, err)
					}
					rows = append(rows, []string{base, "", "", "", "error: " + err.Error(), ""})
					continue
				}
				if plain {
					fmt.Fprintf(out, "%s => %s\n", base, id.FormattedFilename())
					continue
				}
				rows = append(rows, []string{
					base,
					id.ShowName,
					strconv.Itoa(id.Season),
					strconv.Itoa(id.Episode),
					id.FormattedFilename(),
					string(id.Pattern),
				})
			}

			if !plain {
				if len(rows) == 0 {
					fmt.Fprintln(out, "No video files found")
				} else {
					fmt.Fprintln(out, tableSpec{
						Headers: []string{"File", "Show", "Season", "Episode", "Library name", "Pattern"},
						Rows:    rows,
						Numeric: []int{2, 3},
					}.render(out))
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d file(s) could not be parsed", failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, `Print "name => library name" lines instead of a table`)
	return cmd
}

// collectParseTargets expands directories into the video files beneath them,
// in lexical order. Explicit files are kept as given.
func collectParseTargets(args []string, filter organizer.ExtensionFilter) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("parse target: %w", err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && filter.Match(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}
