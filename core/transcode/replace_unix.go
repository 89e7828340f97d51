//go:build !windows

package transcode

import (
	"os"
)

// replaceFile atomically renames tmpPath over dest.
func replaceFile(tmpPath, dest string) error {
	return os.Rename(tmpPath, dest)
}

// syncDir best-effort fsyncs the parent directory to persist the rename.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
