package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"showsort/internal/preflight"
)

func TestStatusLineRenderNoColor(t *testing.T) {
	got := statusLine{Label: "Library directory", Kind: statusError, Detail: "missing"}.render(false)
	want := fmt.Sprintf("  %-*s %s", statusLabelWidth, "Library directory:", "[ERROR] missing")
	if got != want {
		t.Fatalf("statusLine mismatch\n got: %q\nwant: %q", got, want)
	}
	if got := (statusLine{Label: "Run lock", Kind: statusOK}).render(false); !strings.HasSuffix(got, "[OK]") {
		t.Fatalf("expected bare badge without detail, got %q", got)
	}
}

func TestStatusReportVerdict(t *testing.T) {
	cases := []struct {
		name  string
		lines []statusLine
		want  string
	}{
		{"clean", []statusLine{{Label: "Inbox", Kind: statusOK}}, "[OK] ready to organize"},
		{"warning", []statusLine{{Label: "Unwatched", Kind: statusWarn}}, "[WARN] ready with 1 warning(s)"},
		{"error wins", []statusLine{
			{Label: "Unwatched", Kind: statusWarn},
			{Label: "Library", Kind: statusError},
			{Label: "Inbox", Kind: statusError},
		}, "[ERROR] 2 problem(s) must be fixed before a run"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := statusReport{Sections: []statusSection{{Title: "Checks", Lines: tc.lines}}}.render(false)
			last := lines[len(lines)-1]
			if !strings.Contains(last, "Overall:") || !strings.HasSuffix(last, tc.want) {
				t.Fatalf("unexpected verdict %q, want suffix %q", last, tc.want)
			}
		})
	}
}

func TestStatusReportSeparatesSections(t *testing.T) {
	lines := statusReport{Sections: []statusSection{
		{Title: "Configuration", Lines: []statusLine{{Label: "Config file", Kind: statusInfo, Detail: "/etc/showsort.toml"}}},
		preflightSection("Directories", []preflight.Result{
			{Name: "Inbox directory", Passed: true, Detail: "/in (read/write ok)"},
			{Name: "Library directory", Detail: "/lib (error: does not exist)"},
		}),
	}}.render(false)

	want := []string{"== Configuration ==", "", "== Directories =="}
	if lines[0] != want[0] || lines[2] != want[1] || lines[3] != want[2] {
		t.Fatalf("unexpected section layout %q", lines)
	}
	if !strings.Contains(lines[4], "[OK] /in") || !strings.Contains(lines[5], "[ERROR] /lib") {
		t.Fatalf("unexpected preflight lines %q", lines[4:6])
	}
	for _, line := range lines {
		if strings.Contains(line, "\x1b[") {
			t.Fatalf("expected no escape sequences without color, got %q", line)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestTableSpecPadsShortRowsAndKeepsHeaderCase(t *testing.T) {
	var buf bytes.Buffer
	out := tableSpec{
		Title:   "Title",
		Headers: []string{"Path", "Checksum"},
		Rows:    [][]string{{"only"}},
		Footer:  "1 file(s)",
	}.render(&buf)
	for _, want := range []string{"Title", "only", "Checksum", "1 file(s)", "+"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if strings.Contains(out, "╭") {
		t.Fatalf("expected ASCII table for a non-terminal writer:\n%s", out)
	}
	if (tableSpec{}).render(&buf) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestTableSpecShortensPathColumns(t *testing.T) {
	long := "/srv/media/television/library/Some Very Long Show Name/Season 12/Some Very Long Show Name S12E01.mkv"
	out := tableSpec{Headers: []string{"Path"}, Rows: [][]string{{long}}, Paths: []int{0}}.render(io.Discard)
	if strings.Contains(out, "/srv/media") {
		t.Fatalf("expected leading directories dropped:\n%s", out)
	}
	if !strings.Contains(out, "…/Season 12/Some Very Long Show Name S12E01.mkv") {
		t.Fatalf("expected file name kept:\n%s", out)
	}
}

func TestShortenPath(t *testing.T) {
	cases := []struct {
		path  string
		width int
		want  string
	}{
		{"/lib/a.mkv", 60, "/lib/a.mkv"},
		{"/lib/Show/Season 1/Show S01E01.mkv", 25, "…/Show S01E01.mkv"},
		{"/lib/Show/Season 1/Show S01E01.mkv", 30, "…/Season 1/Show S01E01.mkv"},
		{"/lib/a-very-long-file-name.mkv", 10, "…/a-very-long-file-name.mkv"},
	}
	for _, tc := range cases {
		if got := shortenPath(tc.path, tc.width); got != tc.want {
			t.Fatalf("shortenPath(%q, %d) = %q, want %q", tc.path, tc.width, got, tc.want)
		}
	}
}
