package order

import "sync"

// userLocks serializes cart mutations per user so that concurrent
// add/remove/checkout calls for the same user cannot interleave.
type userLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int]*sync.Mutex)}
}

func (l *userLocks) get(userID int) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
