//go:build unix

package envlock

import (
	"errors"
	"os"

	"go.trai.ch/pysync/internal/core/domain"
	"golang.org/x/sys/unix"
)

type fileLock struct {
	file *os.File
}

func tryLock(path string) (*fileLock, error) {
	// #nosec G304 -- path is inside the environment prefix
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, domain.FilePerm)
	if err != nil {
		return nil, err
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil { //nolint:gosec // fd fits in int
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, errContended
		}
		return nil, err
	}
	return &fileLock{file: f}, nil
}

// Release unlocks and closes the lock file. The file itself stays so waiters keep the same inode.
func (l *fileLock) Release() error {
	unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN) //nolint:gosec // fd fits in int
	closeErr := l.file.Close()
	return errors.Join(unlockErr, closeErr)
}
