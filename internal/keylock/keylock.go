// Package keylock provides per-key mutual exclusion.
//
// Both authorities key their state by room ID; operations on different rooms
// are independent, but operations on the same room must serialize so that
// turn alternation and attempt accounting cannot race. A single lock across
// all rooms would serialize unrelated games, so each key gets its own mutex.
package keylock

import "sync"

// KeyLock serializes operations per key while letting distinct keys proceed
// concurrently. Locks are created on first use and never released back; the
// per-room footprint is one mutex, matching the never-deleted room state.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty KeyLock
func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, creating it if needed
func (k *KeyLock) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never locked
// panics, same as sync.Mutex.
func (k *KeyLock) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyLock) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
