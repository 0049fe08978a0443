package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is an in-process keyed mutex. It only serializes callers within
// one instance and is used when Redis is not available.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*keyLock
	opts Options
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker(opts Options) *LocalLocker {
	return &LocalLocker{keys: make(map[string]*keyLock), opts: opts.withDefaults()}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (Lease, error) {
	k := l.ref(key)

	select {
	case k.ch <- struct{}{}:
		return &localLease{locker: l, key: key, lock: k}, nil
	default:
	}

	timer := time.NewTimer(l.opts.Wait)
	defer timer.Stop()

	select {
	case k.ch <- struct{}{}:
		return &localLease{locker: l, key: key, lock: k}, nil
	case <-timer.C:
		l.unref(key, k)
		return nil, ErrNotAcquired
	case <-ctx.Done():
		l.unref(key, k)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) ref(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	k, ok := l.keys[key]
	if !ok {
		k = &keyLock{ch: make(chan struct{}, 1)}
		l.keys[key] = k
	}
	k.refs++
	return k
}

func (l *LocalLocker) unref(key string, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k.refs--
	if k.refs == 0 {
		delete(l.keys, key)
	}
}

// held reports how many keys currently have waiters or holders
func (l *LocalLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

type localLease struct {
	locker *LocalLocker
	key    string
	lock   *keyLock
	once   sync.Once
}

func (l *localLease) Release(ctx context.Context) error {
	l.once.Do(func() {
		<-l.lock.ch
		l.locker.unref(l.key, l.lock)
	})
	return nil
}
