// Package fault classifies relocation failures.
//
// Core packages tag their errors with one of the sentinel markers through
// Wrap so callers can test them with errors.Is without parsing messages.
// ScopeOf separates failures that only affect the current file from failures
// that make the rest of the pass pointless; the driver uses that distinction
// to decide between skipping a file and aborting the run.
package fault
