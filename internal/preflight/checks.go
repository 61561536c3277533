package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSameFilesystem verifies that a and b live on one device, which both
// rename and hard link require.
func CheckSameFilesystem(name, a, b string) Result {
	devA, err := deviceOf(a)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", a, err)}
	}
	devB, err := deviceOf(b)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", b, err)}
	}
	if devA != devB {
		return Result{Name: name, Detail: fmt.Sprintf("%s and %s are on different filesystems", a, b)}
	}
	return Result{Name: name, Passed: true, Detail: "same filesystem"}
}

func deviceOf(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("stat: %w", err)
	}
	return uint64(st.Dev), nil
}
