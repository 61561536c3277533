package organizer

import (
	"context"
	"log/slog"

	"showsort/internal/fault"
	"showsort/internal/logging"
)

// FailurePolicy decides what happens after a file could not be handled.
// Returning nil continues with the next file; returning an error stops the
// pass with that error.
type FailurePolicy func(ctx context.Context, path string, err error) error

// AbortOnFailure stops the pass at the first failure.
func AbortOnFailure(_ context.Context, _ string, err error) error {
	return err
}

// ContinueOnFailure logs file-scoped failures and carries on. Run-scoped
// failures still abort.
func ContinueOnFailure(logger *slog.Logger) FailurePolicy {
	logger = logging.NewComponentLogger(logger, "organizer")
	return func(ctx context.Context, path string, err error) error {
		if fault.ScopeOf(err) == fault.ScopeRun {
			return err
		}
		logging.WarnWithContext(logging.WithContext(ctx, logger), "skipping file", "file_skipped",
			logging.String("path", path),
			logging.String("failure_kind", fault.Kind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix or rename the file and run again"),
			logging.String(logging.FieldImpact, "file left where it is"),
		)
		return nil
	}
}
