//go:build unix

package fileutil

import (
	"time"

	"golang.org/x/sys/unix"
)

// Get reads a file's access and modification times from its raw stat_t,
// grounded on syncthing-syncthing/lib/fs/noatime_linux_test.go's use of
// golang.org/x/sys/unix for low-level stat access. The standard library's
// os.FileInfo only exposes ModTime, not atime, which is why this package
// reaches past it on platforms where unix.Stat_t is available.
func Get(path string) (Times, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Times{}, err
	}
	return Times{
		Atime: time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)),
		Mtime: time.Unix(int64(st.Mtim.Sec), int64(st.Mtim.Nsec)),
	}, nil
}
