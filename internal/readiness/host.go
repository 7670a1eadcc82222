package readiness

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// hostOS returns the kernel name as uname -s prints it,
// falling back to GOOS.
func hostOS() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return runtime.GOOS
	}
	if name := unix.ByteSliceToString(u.Sysname[:]); name != "" {
		return name
	}
	return runtime.GOOS
}
