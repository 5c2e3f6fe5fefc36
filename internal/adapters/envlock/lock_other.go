//go:build !unix

package envlock

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"go.trai.ch/pysync/internal/core/domain"
)

type fileLock struct {
	path string
}

func tryLock(path string) (*fileLock, error) {
	// #nosec G304 -- path is inside the environment prefix
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, os.ErrPermission) {
			return nil, errContended
		}
		return nil, err
	}

	owner := map[string]any{
		"pid":        os.Getpid(),
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if encoded, marshalErr := json.Marshal(owner); marshalErr == nil {
		_, _ = f.Write(append(encoded, '\n'))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return &fileLock{path: path}, nil
}

// Release removes the lock file.
func (l *fileLock) Release() error {
	return os.Remove(l.path)
}
