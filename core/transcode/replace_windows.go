//go:build windows

package transcode

import (
	"golang.org/x/sys/windows"
)

// replaceFile uses MoveFileEx with REPLACE_EXISTING|WRITE_THROUGH so the
// original path is never missing.
func replaceFile(tmpPath, dest string) error {
	from, err := windows.UTF16PtrFromString(tmpPath)
	if err != nil {
		return err
	}
	to, err := windows.UTF16PtrFromString(dest)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}

// syncDir is a no-op on Windows; directory fsync is not generally available.
func syncDir(dir string) error { return nil }
