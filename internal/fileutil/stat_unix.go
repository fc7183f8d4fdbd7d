//go:build linux || darwin || freebsd

package fileutil

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// Stat returns size and inode change time for path, following symlinks.
func Stat(path string) (FileStat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileStat{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return FileStat{
		Size:       st.Size,
		ChangeTime: time.Unix(st.Ctim.Unix()),
		IsDir:      st.Mode&unix.S_IFMT == unix.S_IFDIR,
	}, nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
