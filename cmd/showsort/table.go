package main

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// maxPathWidth bounds path cells; longer paths lose leading directories so the
// file name stays readable.
const maxPathWidth = 60

// tableSpec describes one report table. Rows shorter than Headers are padded.
type tableSpec struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Numeric columns are right aligned.
	Numeric []int
	// Paths columns are shortened from the left past maxPathWidth.
	Paths  []int
	Footer string
}

// render lays the table out for out: rounded box drawing on terminals, plain
// ASCII when piped so redirected reports stay greppable.
func (s tableSpec) render(out io.Writer) string {
	columns := len(s.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if shouldColorize(out) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	if s.Title != "" {
		tw.SetTitle(s.Title)
	}

	header := make(table.Row, columns)
	for i, h := range s.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range s.Rows {
		r := make(table.Row, columns)
		for i := range columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if slices.Contains(s.Paths, i) {
				cell = shortenPath(cell, maxPathWidth)
			}
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	if s.Footer != "" {
		footer := make(table.Row, columns)
		for i := range footer {
			footer[i] = ""
		}
		footer[0] = s.Footer
		tw.AppendFooter(footer)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if slices.Contains(s.Numeric, i) {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// shortenPath drops leading directories until path fits in width runes,
// marking the cut with "…". The base name is never cut.
func shortenPath(path string, width int) string {
	if len([]rune(path)) <= width {
		return path
	}
	parts := strings.Split(filepath.ToSlash(path), "/")
	for len(parts) > 1 {
		parts = parts[1:]
		candidate := "…/" + strings.Join(parts, "/")
		if len([]rune(candidate)) <= width {
			return filepath.FromSlash(candidate)
		}
	}
	return "…/" + parts[0]
}
