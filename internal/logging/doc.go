// Package logging assembles structured slog loggers and formatting helpers
// used across showsort.
//
// It owns the console and JSON handlers, maps configured levels and -v
// verbosity steps onto slog levels, writes an optional rotated log file, and
// exposes context-aware helpers so core code can tag log lines with the run
// identifier and pass phase. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Components receive their logger by injection; nothing in this package keeps
// a global threshold.
package logging
