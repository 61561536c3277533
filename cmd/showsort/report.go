package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"showsort/internal/checksum"
	"showsort/internal/fault"
	"showsort/internal/organizer"
)

// reporter prints pass results for humans; logs carry the detail.
type reporter struct {
	out      io.Writer
	pretend  bool
	checksum bool
}

func (r reporter) verb(done, planned string) string {
	if r.pretend {
		return planned
	}
	return done
}

func (r reporter) inbox(summary *organizer.RunSummary) {
	if summary.Processed == 0 {
		fmt.Fprintln(r.out, "No new episodes in the inbox")
		return
	}
	fmt.Fprintf(r.out, "%s %d new episode(s)\n", r.verb("Added", "Would add"), summary.Processed)
	rows := make([][]string, 0, len(summary.Placements))
	for _, p := range summary.Placements {
		rows = append(rows, []string{filepath.Base(p.Source), p.Identity.ShowName, p.Identity.FormattedFilename()})
	}
	fmt.Fprintln(r.out, tableSpec{
		Headers: []string{"Inbox file", "Show", "Library name"},
		Rows:    rows,
	}.render(r.out))
}

func (r reporter) reconcile(result *organizer.ReconcileResult) {
	fmt.Fprintf(r.out, "Library: %d file(s) scanned, %d %s\n",
		result.Scanned, result.Relocated, r.verb("relocated", "to relocate"))
	if len(result.Duplicates) == 0 {
		return
	}

	headers := []string{"Episode", "Path"}
	if r.checksum {
		headers = append(headers, "Checksum")
	}
	var rows [][]string
	for _, group := range result.Duplicates {
		for i, path := range group.Paths {
			label := ""
			if i == 0 {
				label = group.Key.String()
			}
			row := []string{label, path}
			if r.checksum {
				row = append(row, fileChecksum(path))
			}
			rows = append(rows, row)
		}
	}
	fmt.Fprintln(r.out, tableSpec{
		Title:   strconv.Itoa(len(result.Duplicates)) + " duplicate episode(s)",
		Headers: headers,
		Rows:    rows,
		Paths:   []int{1},
		Footer:  strconv.Itoa(len(rows)) + " file(s)",
	}.render(r.out))
}

func (r reporter) failures(failures []organizer.FileFailure) {
	if len(failures) == 0 {
		return
	}
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.Path, fault.Kind(f.Err), f.Err.Error()})
	}
	fmt.Fprintln(r.out, tableSpec{
		Title:   "Not organized",
		Headers: []string{"Path", "Kind", "Error"},
		Rows:    rows,
		Paths:   []int{0},
	}.render(r.out))
}

func fileChecksum(path string) string {
	sum, err := checksum.File(path)
	if err != nil {
		return "unavailable"
	}
	return sum
}
