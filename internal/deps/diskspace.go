package deps

import (
	"golang.org/x/sys/unix"
)

// DiskSpace summarizes filesystem capacity for a path.
type DiskSpace struct {
	TotalBytes uint64
	FreeBytes  uint64
}

// CheckDiskSpace reports total and free bytes on the filesystem backing path.
func CheckDiskSpace(path string) (DiskSpace, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return DiskSpace{}, err
	}
	blockSize := uint64(stat.Bsize)
	return DiskSpace{
		TotalBytes: stat.Blocks * blockSize,
		FreeBytes:  stat.Bavail * blockSize,
	}, nil
}
