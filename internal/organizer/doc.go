// Package organizer drives the two passes that keep a TV library tidy.
//
// The inbox pass takes every recognized video file sitting directly in the
// inbox, infers its episode identity, and moves (or, in keep mode, hard-links)
// it into the library root under its canonical name, optionally mirroring it
// into the unwatched directory. The reconcile pass then walks the whole
// library, relocates every file to Show/Season N/Show SxxExx.ext, and reports
// groups of files that resolve to the same episode.
//
// Per-file failures are handed to a FailurePolicy so callers choose between
// aborting on the first problem and recording it before moving on. Failures
// that make the rest of the pass pointless (an unreachable library) always
// abort.
package organizer
