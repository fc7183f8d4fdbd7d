//go:build !(linux || darwin || freebsd)

package fileutil

import "os"

// Stat returns size and modification time for path. Platforms without an
// inode change time report the modification time instead.
func Stat(path string) (FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStat{}, err
	}
	return FileStat{
		Size:       info.Size(),
		ChangeTime: info.ModTime(),
		IsDir:      info.IsDir(),
	}, nil
}

func isCrossDevice(error) bool {
	return false
}
