package concurrency

import (
	"sync"
)

// LockManager handles named locks. Callers that mutate the same logical
// document (a user's stats, a number's counters) serialize on the same key.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the named lock
func (lm *LockManager) WithLock(key string, fn func() error) error {
	lock := lm.GetLock(key)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}
