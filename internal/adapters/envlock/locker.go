// Package envlock serializes mutations of an environment across processes.
package envlock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPollInterval is how often a contended lock is retried.
const DefaultPollInterval = 100 * time.Millisecond

// errContended is returned by tryLock while another process holds the lock.
var errContended = errors.New("lock held by another process")

// Locker implements ports.EnvironmentLocker with a lock file in the environment prefix.
type Locker struct {
	logger ports.Logger
	poll   time.Duration
}

// NewLocker creates a Locker.
func NewLocker(logger ports.Logger) *Locker {
	return &Locker{logger: logger, poll: DefaultPollInterval}
}

// Lock blocks until the prefix is exclusively held or ctx is done.
func (l *Locker) Lock(ctx context.Context, prefix string) (ports.EnvironmentLock, error) {
	if err := os.MkdirAll(prefix, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvironmentLock.Error()), "prefix", prefix)
	}
	path := filepath.Join(prefix, domain.LockFileName)

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	waiting := false
	for {
		lock, err := tryLock(path)
		if err == nil {
			return lock, nil
		}
		if !errors.Is(err, errContended) {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvironmentLock.Error()), "path", path)
		}

		if !waiting {
			l.logger.Info("waiting for another process to release " + path)
			waiting = true
		}

		select {
		case <-ctx.Done():
			return nil, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrEnvironmentLock.Error()), "path", path)
		case <-ticker.C:
		}
	}
}
