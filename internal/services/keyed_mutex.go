package services

import "sync"

// keyedMutex serializes critical sections per key. The booking service
// keys it by vehicle id so that check-then-insert runs one at a time for
// a given vehicle while creates for other vehicles proceed concurrently.
//
// Entries are never removed; the map is bounded by the fleet size.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
