package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the lock is still held by someone else
// after the wait period
var ErrNotAcquired = errors.New("lock not acquired")

const (
	defaultTTL   = 5 * time.Second
	defaultWait  = 2 * time.Second
	defaultRetry = 25 * time.Millisecond
)

// Locker hands out exclusive leases on string keys
type Locker interface {
	Acquire(ctx context.Context, key string) (Lease, error)
}

// Lease is a held lock. Releasing twice is a no-op.
type Lease interface {
	Release(ctx context.Context) error
}

type Options struct {
	// TTL bounds how long a crashed holder can keep a key locked
	TTL time.Duration
	// Wait is how long Acquire retries before giving up
	Wait time.Duration
	// Retry is the pause between two attempts
	Retry time.Duration
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.Wait < 0 {
		o.Wait = 0
	} else if o.Wait == 0 {
		o.Wait = defaultWait
	}
	if o.Retry <= 0 {
		o.Retry = defaultRetry
	}
	return o
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
