// Package state keeps the last successfully derived payload per view so a
// failed re-fetch falls back to stale-but-valid data instead of blanking an
// otherwise-good page.
package state

import "sync"

type Latest[T any] struct {
	mu      sync.RWMutex
	value   T
	ok      bool
	lastErr error
}

// Store replaces the retained payload wholesale and clears the last error.
func (l *Latest[T]) Store(value T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = value
	l.ok = true
	l.lastErr = nil
}

// Fail records the fetch error and returns the previous good payload, if any.
func (l *Latest[T]) Fail(err error) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = err
	return l.value, l.ok
}

func (l *Latest[T]) Get() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.ok
}

func (l *Latest[T]) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}
