package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	value []byte
	exp   time.Time
}

// MemoryStore keeps entries in process. Expired entries are dropped on read
// and by the janitor started with StartCleanup.
type MemoryStore struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]entry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && s.now().After(e.exp) {
		s.mu.Lock()
		if cur, ok := s.m[key]; ok && cur.exp.Equal(e.exp) {
			delete(s.m, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	// entries are handed out to concurrent readers, never mutate them in place
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.m[key] = entry{value: stored, exp: exp}
	s.mu.Unlock()
	return nil
}

// DeleteExpired removes every expired entry and reports how many went.
func (s *MemoryStore) DeleteExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.m {
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(s.m, key)
			removed++
		}
	}
	return removed
}

// StartCleanup sweeps expired entries every interval until the returned stop
// func is called. stop is safe to call more than once.
func (s *MemoryStore) StartCleanup(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if n := s.DeleteExpired(); n > 0 {
					slog.Debug("memory cache cleanup", "removed", n)
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
