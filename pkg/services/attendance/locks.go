package attendance

import "sync"

// sheetLocks serializes all mutations against one period sheet. The
// lock is held across the full find-or-create sequence, closing the
// scan-then-append race; distinct periods proceed in parallel.
type sheetLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSheetLocks() *sheetLocks {
	return &sheetLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given period key and returns its
// release func.
func (l *sheetLocks) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
