package sync

import "sync"

// WithLock - runs action while holding l. A nil action does not take the lock.
func WithLock(l sync.Locker, action func()) {
	if action == nil {
		return
	}

	l.Lock()
	defer l.Unlock()
	action()
}
