package session

import (
	"sort"
	"sync"
)

// Listener receives the credential after every change. An empty credential
// means the session ended. Listeners must not call Set or Clear.
type Listener func(credential string)

// Store holds the current credential. The zero value is not usable, call
// NewStore.
type Store struct {
	// notifyMu spans a write and its delivery, so listeners observe changes
	// in the order they were stored.
	notifyMu sync.Mutex

	mu         sync.RWMutex
	credential string
	listeners  map[int]Listener
	nextID     int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Set replaces the credential. Setting an empty string is the same as Clear.
// Listeners run only when the value actually changes.
func (s *Store) Set(credential string) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.credential == credential {
		s.mu.Unlock()
		return
	}
	s.credential = credential
	ls := s.snapshot()
	s.mu.Unlock()

	for _, l := range ls {
		l(credential)
	}
}

// Get returns the credential and whether one is present.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.credential != ""
}

// Clear drops the credential. It is a no-op when no credential is held.
func (s *Store) Clear() {
	s.Set("")
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	_, ok := s.Get()
	return ok
}

// Subscribe registers l for change notifications. The returned function
// removes it and may be called more than once.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// snapshot returns listeners in subscription order. Callers hold mu.
func (s *Store) snapshot() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}
