package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"showsort/internal/config"
	"showsort/internal/episode"
	"showsort/internal/fault"
	"showsort/internal/organizer"
	"showsort/internal/relocate"
	"showsort/internal/testsupport"
)

func settings(cfg *config.Config) organizer.Settings {
	return organizer.Settings{Extensions: organizer.NewExtensionFilter(cfg.VideoExtensions)}
}

func newProcessor(cfg *config.Config, keep bool, s organizer.Settings) *organizer.InboxProcessor {
	roots := organizer.Roots{Inbox: cfg.Inbox, Library: cfg.Library, Unwatched: cfg.Unwatched}
	return organizer.NewInboxProcessor(nil, nil, roots, keep, s)
}

func TestProcessEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithUnwatched())
	src := filepath.Join(cfg.Inbox, "Foo.S01E02.mkv")
	testsupport.WriteContent(t, src, "foo-1-2")

	summary, err := newProcessor(cfg, false, settings(cfg)).Process(context.Background())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected 1 processed, got %d", summary.Processed)
	}

	final := filepath.Join(cfg.Library, "Foo", "Season 1", "Foo S01E02.mkv")
	mirror := filepath.Join(cfg.Unwatched, "Foo S01E02.mkv")
	if got := testsupport.Tree(t, cfg.Library); !reflect.DeepEqual(got, []string{"Foo/Season 1/Foo S01E02.mkv"}) {
		t.Fatalf("unexpected library tree %v", got)
	}
	testsupport.AssertSameFile(t, final, mirror)
	testsupport.AssertMissing(t, src)
	if testsupport.ReadContent(t, final) != "foo-1-2" {
		t.Fatal("content changed")
	}
	if len(summary.Reconcile.Duplicates) != 0 {
		t.Fatalf("unexpected duplicates %+v", summary.Reconcile.Duplicates)
	}
}

func TestProcessKeepModeLinksInboxFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithUnwatched())
	src := filepath.Join(cfg.Inbox, "Foo.S01E02.mkv")
	testsupport.WriteContent(t, src, "foo-1-2")

	summary, err := newProcessor(cfg, true, settings(cfg)).Process(context.Background())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected 1 processed, got %d", summary.Processed)
	}
	final := filepath.Join(cfg.Library, "Foo", "Season 1", "Foo S01E02.mkv")
	testsupport.AssertSameFile(t, src, final)
	testsupport.AssertSameFile(t, final, filepath.Join(cfg.Unwatched, "Foo S01E02.mkv"))
}

func TestProcessIsIdempotent(t *testing.T) {
	for _, keep := range []bool{false, true} {
		cfg := testsupport.NewConfig(t, testsupport.WithUnwatched())
		testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "Foo.S01E02.mkv"), "a")
		testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "bar_2x10.avi"), "b")
		p := newProcessor(cfg, keep, settings(cfg))

		if _, err := p.Process(context.Background()); err != nil {
			t.Fatalf("keep=%v first pass: %v", keep, err)
		}
		base := testsupport.BaseDir(cfg)
		first := testsupport.Tree(t, base)

		summary, err := p.Process(context.Background())
		if err != nil {
			t.Fatalf("keep=%v second pass: %v", keep, err)
		}
		if second := testsupport.Tree(t, base); !reflect.DeepEqual(first, second) {
			t.Fatalf("keep=%v tree changed on rerun:\n%v\n%v", keep, first, second)
		}
		if !keep && summary.Processed != 0 {
			t.Fatalf("expected nothing new on rerun, got %d", summary.Processed)
		}
	}
}

func TestProcessSkipsNonVideoAndDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "notes.txt"), "x")
	testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "nested", "Foo.S01E01.mkv"), "x")

	summary, err := newProcessor(cfg, false, settings(cfg)).Process(context.Background())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if summary.Processed != 0 {
		t.Fatalf("expected nothing processed, got %d", summary.Processed)
	}
	if got := testsupport.Tree(t, cfg.Inbox); len(got) != 2 {
		t.Fatalf("inbox should be untouched, got %v", got)
	}
}

func TestProcessParseFailureAbortsByDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "a-no-numbers.mkv"), "x")
	testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "b.S01E01.mkv"), "y")

	summary, err := newProcessor(cfg, false, settings(cfg)).Process(context.Background())
	if !errors.Is(err, fault.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if summary.Processed != 0 || len(summary.Failures) != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if got := testsupport.Tree(t, cfg.Library); len(got) != 0 {
		t.Fatalf("library should be empty after abort, got %v", got)
	}
}

func TestProcessContinuePolicySkipsBadFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "a-no-numbers.mkv"), "x")
	testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "b.S01E01.mkv"), "y")
	s := settings(cfg)
	s.Policy = organizer.ContinueOnFailure(nil)

	summary, err := newProcessor(cfg, false, s).Process(context.Background())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected 1 processed, got %d", summary.Processed)
	}
	failures := summary.AllFailures()
	if len(failures) != 1 || filepath.Base(failures[0].Path) != "a-no-numbers.mkv" {
		t.Fatalf("unexpected failures %+v", failures)
	}
	if got := testsupport.Tree(t, cfg.Library); !reflect.DeepEqual(got, []string{"B/Season 1/B S01E01.mkv"}) {
		t.Fatalf("unexpected library %v", got)
	}
}

func TestProcessPretendMutatesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithUnwatched())
	testsupport.WriteContent(t, filepath.Join(cfg.Inbox, "Foo.S01E02.mkv"), "a")
	testsupport.WriteContent(t, filepath.Join(cfg.Library, "misc", "bar.s02e03.mp4"), "b")
	before := testsupport.Tree(t, testsupport.BaseDir(cfg))

	s := settings(cfg)
	s.Pretend = true
	summary, err := newProcessor(cfg, false, s).Process(context.Background())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if summary.Processed != 1 || summary.Reconcile.Relocated != 1 {
		t.Fatalf("unexpected pretend summary %+v / %+v", summary, summary.Reconcile)
	}
	if after := testsupport.Tree(t, testsupport.BaseDir(cfg)); !reflect.DeepEqual(before, after) {
		t.Fatalf("pretend changed the tree:\n%v\n%v", before, after)
	}
}

func TestReconcilePretendReportsSameConflictsAsRealRun(t *testing.T) {
	for _, pretend := range []bool{true, false} {
		cfg := testsupport.NewConfig(t)
		lib := cfg.Library
		testsupport.WriteContent(t, filepath.Join(lib, "a", "Foo.S01E01.mkv"), "first")
		testsupport.WriteContent(t, filepath.Join(lib, "b", "foo.1x01.mkv"), "second")
		before := testsupport.Tree(t, lib)

		s := settings(cfg)
		s.Pretend = pretend
		s.Policy = organizer.ContinueOnFailure(nil)
		result, err := organizer.NewReconciler(nil, nil, s).Reconcile(context.Background(), lib)
		if err != nil {
			t.Fatalf("pretend=%v: Reconcile returned error: %v", pretend, err)
		}
		if result.Scanned != 2 || result.Relocated != 1 {
			t.Fatalf("pretend=%v: unexpected counts scanned=%d relocated=%d", pretend, result.Scanned, result.Relocated)
		}
		if len(result.Failures) != 1 {
			t.Fatalf("pretend=%v: expected one failure, got %+v", pretend, result.Failures)
		}
		failure := result.Failures[0]
		if failure.Path != filepath.Join(lib, "b", "foo.1x01.mkv") {
			t.Fatalf("pretend=%v: unexpected failure path %q", pretend, failure.Path)
		}
		var overwrite *relocate.OverwriteError
		if !errors.As(failure.Err, &overwrite) || !errors.Is(failure.Err, fault.ErrConflict) {
			t.Fatalf("pretend=%v: expected overwrite conflict, got %v", pretend, failure.Err)
		}
		if want := filepath.Join(lib, "Foo", "Season 1", "Foo S01E01.mkv"); overwrite.Dest != want {
			t.Fatalf("pretend=%v: unexpected conflict destination %q", pretend, overwrite.Dest)
		}

		after := testsupport.Tree(t, lib)
		if pretend && !reflect.DeepEqual(before, after) {
			t.Fatalf("pretend changed the library:\n%v\n%v", before, after)
		}
		if !pretend {
			want := []string{"Foo/Season 1/Foo S01E01.mkv", "b/foo.1x01.mkv"}
			if !reflect.DeepEqual(after, want) {
				t.Fatalf("unexpected library after real run %v", after)
			}
		}
	}
}

func TestProcessMissingInboxIsRunScoped(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.Remove(cfg.Inbox); err != nil {
		t.Fatalf("remove inbox: %v", err)
	}
	s := settings(cfg)
	s.Policy = organizer.ContinueOnFailure(nil)

	_, err := newProcessor(cfg, false, s).Process(context.Background())
	if !errors.Is(err, fault.ErrUnavailable) || fault.ScopeOf(err) != fault.ScopeRun {
		t.Fatalf("expected run-scoped unavailable error, got %v", err)
	}
}

func TestReconcileReportsDuplicatesInObservationOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lib := cfg.Library
	testsupport.WriteContent(t, filepath.Join(lib, "a", "Show.S01E01.mkv"), "1")
	testsupport.WriteContent(t, filepath.Join(lib, "b", "Show.1x01.avi"), "2")
	testsupport.WriteContent(t, filepath.Join(lib, "c", "Other.S02E03.mkv"), "3")
	testsupport.WriteContent(t, filepath.Join(lib, "d", "show 101.mp4"), "4")
	testsupport.WriteContent(t, filepath.Join(lib, "e", "Other 2x03.mkv"), "5")

	s := settings(cfg)
	s.Policy = organizer.ContinueOnFailure(nil)
	result, err := organizer.NewReconciler(nil, nil, s).Reconcile(context.Background(), lib)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if result.Scanned != 5 || result.Relocated != 4 {
		t.Fatalf("unexpected counts scanned=%d relocated=%d", result.Scanned, result.Relocated)
	}

	want := organizer.DuplicateReport{
		{
			Key: episode.Key{ShowName: "Show", Season: 1, Episode: 1},
			Paths: []string{
				filepath.Join(lib, "Show", "Season 1", "Show S01E01.mkv"),
				filepath.Join(lib, "Show", "Season 1", "Show S01E01.avi"),
				filepath.Join(lib, "Show", "Season 1", "Show S01E01.mp4"),
			},
		},
		{
			Key: episode.Key{ShowName: "Other", Season: 2, Episode: 3},
			Paths: []string{
				filepath.Join(lib, "Other", "Season 2", "Other S02E03.mkv"),
			},
		},
	}
	// The second Other file collides with the first on name and stays put.
	if len(result.Failures) != 1 {
		t.Fatalf("expected one overwrite failure, got %+v", result.Failures)
	}
	want[1].Paths = append(want[1].Paths, filepath.Join(lib, "e", "Other 2x03.mkv"))
	if !reflect.DeepEqual(result.Duplicates, want) {
		t.Fatalf("unexpected duplicates:\n got %+v\nwant %+v", result.Duplicates, want)
	}
}

func TestReconcileOverwriteAbortsByDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteContent(t, filepath.Join(cfg.Library, "Foo", "Season 1", "Foo S01E01.mkv"), "keep")
	testsupport.WriteContent(t, filepath.Join(cfg.Library, "x", "foo.s01e01.mkv"), "other")

	_, err := organizer.NewReconciler(nil, nil, settings(cfg)).Reconcile(context.Background(), cfg.Library)
	var overwrite *relocate.OverwriteError
	if !errors.As(err, &overwrite) {
		t.Fatalf("expected OverwriteError, got %v", err)
	}
	if testsupport.ReadContent(t, filepath.Join(cfg.Library, "Foo", "Season 1", "Foo S01E01.mkv")) != "keep" {
		t.Fatal("existing file was overwritten")
	}
}

func TestReconcileEmptyShowNameNestsUnderSeason(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteContent(t, filepath.Join(cfg.Library, "S01E02.mkv"), "x")

	if _, err := organizer.NewReconciler(nil, nil, settings(cfg)).Reconcile(context.Background(), cfg.Library); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if got := testsupport.Tree(t, cfg.Library); !reflect.DeepEqual(got, []string{"Season 1/S01E02.mkv"}) {
		t.Fatalf("unexpected tree %v", got)
	}
}

func TestReconcileMissingLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	missing := filepath.Join(testsupport.BaseDir(cfg), "gone")
	_, err := organizer.NewReconciler(nil, nil, settings(cfg)).Reconcile(context.Background(), missing)
	if !errors.Is(err, fault.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestReconcileCanceledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteContent(t, filepath.Join(cfg.Library, "Foo.S01E01.mkv"), "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := organizer.NewReconciler(nil, nil, settings(cfg)).Reconcile(ctx, cfg.Library)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if got := testsupport.Tree(t, cfg.Library); !reflect.DeepEqual(got, []string{"Foo.S01E01.mkv"}) {
		t.Fatalf("tree changed after cancel: %v", got)
	}
}

func TestExtensionFilter(t *testing.T) {
	f := organizer.NewExtensionFilter([]string{".mkv", "AVI"})
	cases := map[string]bool{
		"a.mkv":     true,
		"a.MKV":     true,
		"a.avi":     true,
		"a.mp4":     false,
		"mkv":       false,
		"dir/b.Avi": true,
	}
	for name, want := range cases {
		if got := f.Match(name); got != want {
			t.Fatalf("Match(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestReconcileVisitsMovedFileOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteContent(t, filepath.Join(cfg.Library, "0-new", "foo.s01e01.mkv"), "1")
	testsupport.WriteContent(t, filepath.Join(cfg.Library, "Foo", "Season 1", "Foo S01E02.mkv"), "2")

	result, err := organizer.NewReconciler(nil, nil, settings(cfg)).Reconcile(context.Background(), cfg.Library)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if result.Scanned != 2 || result.Relocated != 1 || len(result.Duplicates) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}
