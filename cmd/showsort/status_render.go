package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"showsort/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusKinds = map[statusKind]struct {
	label  string
	colors text.Colors
}{
	statusInfo:  {"INFO", text.Colors{text.FgBlue}},
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusWarn:  {"WARN", text.Colors{text.FgYellow}},
	statusError: {"ERROR", text.Colors{text.FgRed, text.Bold}},
}

const statusLabelWidth = 30

// statusLine is one "label: [KIND] detail" row of the status report.
type statusLine struct {
	Label  string
	Kind   statusKind
	Detail string
}

func (l statusLine) render(colorize bool) string {
	kind := statusKinds[l.Kind]
	badge := "[" + kind.label + "]"
	if colorize {
		badge = kind.colors.Sprint(badge)
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, l.Label+":", badge)
	if l.Detail != "" {
		line += " " + l.Detail
	}
	return line
}

// statusSection groups lines under a "== Title ==" heading.
type statusSection struct {
	Title string
	Lines []statusLine
}

// statusReport renders sections separated by blank lines and closes with a
// one-line verdict counting warnings and errors.
type statusReport struct {
	Sections []statusSection
}

func (r statusReport) render(colorize bool) []string {
	var out []string
	warnings, errors := 0, 0
	for i, section := range r.Sections {
		if i > 0 {
			out = append(out, "")
		}
		heading := "== " + strings.TrimSpace(section.Title) + " =="
		if colorize {
			heading = text.Colors{text.FgBlue, text.Bold}.Sprint(heading)
		}
		out = append(out, heading)
		for _, line := range section.Lines {
			switch line.Kind {
			case statusWarn:
				warnings++
			case statusError:
				errors++
			}
			out = append(out, line.render(colorize))
		}
	}
	out = append(out, "", r.verdict(warnings, errors, colorize))
	return out
}

func (statusReport) verdict(warnings, errors int, colorize bool) string {
	kind := statusOK
	message := "ready to organize"
	switch {
	case errors > 0:
		kind = statusError
		message = fmt.Sprintf("%d problem(s) must be fixed before a run", errors)
	case warnings > 0:
		kind = statusWarn
		message = fmt.Sprintf("ready with %d warning(s)", warnings)
	}
	return statusLine{Label: "Overall", Kind: kind, Detail: message}.render(colorize)
}

// preflightSection turns check results into a status section.
func preflightSection(title string, results []preflight.Result) statusSection {
	section := statusSection{Title: title}
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		section.Lines = append(section.Lines, statusLine{Label: r.Name, Kind: kind, Detail: r.Detail})
	}
	return section
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
