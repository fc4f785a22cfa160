//go:build !unix

package fileutil

import "os"

// Get falls back to using a file's modification time for both fields on
// platforms without a unix.Stat_t, since the standard library exposes no
// portable way to read atime.
func Get(path string) (Times, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	return Times{Atime: fi.ModTime(), Mtime: fi.ModTime()}, nil
}
