// Package config loads, normalizes, and validates showsort configuration.
//
// The configuration is a small TOML document naming the directory roles the
// organizer works with (inbox, library, and the optional unwatched mirror)
// plus logging and the video extension allow-list. The package supplies
// defaults, expands user paths (including tilde shortcuts), honours
// SHOWSORT_* environment overrides, and reports missing roles with a literal
// example of the expected file so the fix is obvious.
package config
