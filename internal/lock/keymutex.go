package lock

import "sync"

// KeyMutex serializes work per key so two concurrent transitions on the same
// post cannot interleave their read-check-write cycles. Different keys never
// block each other.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[uint]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[uint]*keyLock)}
}

// WithLock runs fn while holding the lock for key and returns fn's error.
// The lock entry is dropped once no goroutine is waiting on it, so the map
// stays bounded by the number of in-flight keys.
func (k *KeyMutex) WithLock(key uint, fn func() error) error {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}()

	return fn()
}
