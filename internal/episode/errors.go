package episode

import (
	"errors"
	"fmt"

	"showsort/internal/fault"
)

// ErrNoIdentity reports that no heuristic matched a file name.
var ErrNoIdentity = errors.New("cannot determine episode identity")

// ParseError describes a file name that yielded no identity. Input is the
// offending base name, verbatim.
type ParseError struct {
	Reason string
	Input  string
}

func (e *ParseError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = ErrNoIdentity.Error()
	}
	return fmt.Sprintf("%s: %q", reason, e.Input)
}

// Is lets callers match parse failures with errors.Is against either
// ErrNoIdentity or fault.ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrNoIdentity || target == fault.ErrParse
}
