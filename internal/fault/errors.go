package fault

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrParse         = errors.New("parse error")
	ErrConflict      = errors.New("destination conflict")
	ErrFilesystem    = errors.New("filesystem error")
	ErrUnavailable   = errors.New("library unavailable")
	ErrConfiguration = errors.New("configuration error")
)

// Scope tells the driver how far a failure reaches.
type Scope int

const (
	// ScopeFile failures only affect the file being relocated; the pass may
	// continue with the next file.
	ScopeFile Scope = iota
	// ScopeRun failures make every remaining relocation pointless.
	ScopeRun
)

func (s Scope) String() string {
	if s == ScopeRun {
		return "run"
	}
	return "file"
}

// Wrap builds an error message that includes phase context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, phase, operation, message string, err error) error {
	detail := buildDetail(phase, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ScopeOf maps an error to the reach of the failure it represents.
func ScopeOf(err error) Scope {
	switch {
	case err == nil:
		return ScopeFile
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrConfiguration),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return ScopeRun
	default:
		return ScopeFile
	}
}

// Kind returns a short label for the marker carried by err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "filesystem"
	}
}

func buildDetail(phase, operation, message string) string {
	parts := make([]string, 0, 3)
	if phase = strings.TrimSpace(phase); phase != "" {
		parts = append(parts, phase)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "relocation failure"
	}
	return strings.Join(parts, ": ")
}
