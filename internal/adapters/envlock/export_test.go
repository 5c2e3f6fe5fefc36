package envlock

import "time"

// WithPollInterval shortens the retry interval for tests.
func (l *Locker) WithPollInterval(d time.Duration) *Locker {
	l.poll = d
	return l
}
