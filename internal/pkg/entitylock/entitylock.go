// Package entitylock serializes read-modify-write operations on individual
// entities. Supply counters, equipment slots, and listing maps all have
// check-then-act sequences that must not interleave; the orchestrators take
// the entity's lock for the duration of the operation so a capped mint can
// never race past its cap.
package entitylock

import "sync"

// Keyed hands out one mutex per key. Locks are never released from the map;
// the key space is bounded by the number of live entities a process touches.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyed creates an empty lock table
func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use
func (k *Keyed) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key
func (k *Keyed) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *Keyed) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
