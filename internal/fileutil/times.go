// Package fileutil preserves a source file's access and modification
// times across a szip compress/decompress, grounded on
// original_source/szip/src/main.rs's copy_atime_mtime (which uses the
// filetime crate's FileTime::from_last_access_time/
// from_last_modification_time plus set_file_times).
package fileutil

import (
	"os"
	"time"
)

// Times holds the access and modification timestamps of a file.
type Times struct {
	Atime time.Time
	Mtime time.Time
}

// Set applies t to the file at path, mirroring
// copy_atime_mtime's set_file_times call.
func Set(path string, t Times) error {
	return os.Chtimes(path, t.Atime, t.Mtime)
}
