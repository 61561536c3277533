package relocate

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"showsort/internal/fault"
)

// OverwriteError reports a destination occupied by a different file. Both
// files are left untouched.
type OverwriteError struct {
	Src  string
	Dest string
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("refusing to overwrite %s with %s", e.Dest, e.Src)
}

func (e *OverwriteError) Is(target error) bool {
	return target == fault.ErrConflict
}

// unavailableErrnos indicate the library filesystem itself went away.
var unavailableErrnos = []error{
	unix.ENODEV,
	unix.ENOTCONN,
	unix.EHOSTDOWN,
	unix.EHOSTUNREACH,
	unix.ETIMEDOUT,
	unix.EIO,
	unix.ESTALE,
}

// IsUnavailable reports whether err means the filesystem is unreachable
// rather than a single file being unusable.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range unavailableErrnos {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func classify(operation, path string, err error) error {
	switch {
	case IsUnavailable(err):
		return fault.Wrap(fault.ErrUnavailable, "relocate", operation, path, err)
	case errors.Is(err, unix.EXDEV):
		return fault.Wrap(fault.ErrFilesystem, "relocate", operation,
			path+" (cross-device; keep inbox, library and unwatched on one filesystem)", err)
	default:
		return fault.Wrap(fault.ErrFilesystem, "relocate", operation, path, err)
	}
}
