// Package lock provides the advisory lock the fulfillment orchestrator holds
// around its check-then-commit sequence. A Redis implementation covers
// multi-instance deployments; a process-local one covers single-node runs and
// tests.
package lock

import (
	"context"
	"sync"
	"time"
)

type Locker interface {
	// Acquire takes the lock iff it is free, tagging it with value so only the
	// holder can release it. Returns false without error when already held.
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Release frees the lock iff value matches the current holder's tag.
	Release(ctx context.Context, key, value string) error
}

type localEntry struct {
	value   string
	expires time.Time
}

// LocalLocker is an in-process Locker.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]localEntry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]localEntry)}
}

func (l *LocalLocker) Acquire(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.locks[key]; ok && time.Now().Before(e.expires) {
		return false, nil
	}
	l.locks[key] = localEntry{value: value, expires: time.Now().Add(ttl)}
	return true, nil
}

func (l *LocalLocker) Release(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.locks[key]; ok && e.value == value {
		delete(l.locks, key)
	}
	return nil
}
