package preflight

import (
	"showsort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Device checks only run once both directories are known to be usable.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	inbox := CheckDirectoryAccess("Inbox directory", cfg.Inbox)
	library := CheckDirectoryAccess("Library directory", cfg.Library)
	results = append(results, inbox, library)

	unwatched := Result{Passed: true}
	if cfg.HasUnwatched() {
		unwatched = CheckDirectoryAccess("Unwatched directory", cfg.Unwatched)
		results = append(results, unwatched)
	}

	if inbox.Passed && library.Passed {
		results = append(results, CheckSameFilesystem("Inbox/library filesystem", cfg.Inbox, cfg.Library))
	}
	if cfg.HasUnwatched() && library.Passed && unwatched.Passed {
		results = append(results, CheckSameFilesystem("Library/unwatched filesystem", cfg.Library, cfg.Unwatched))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
