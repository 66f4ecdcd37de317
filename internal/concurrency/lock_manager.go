package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. The store layer uses one lock per user
// id so each session has a single writer, which keeps checkout's
// check-then-act on the credit balance safe under concurrent requests.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
