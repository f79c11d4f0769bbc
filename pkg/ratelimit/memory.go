package ratelimit

import (
	"context"
	"sync"
	"time"
)

// memoryEntry tracks the counter for one key
type memoryEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// MemoryStore is a process-local Store backed by a sync.Map. Records are
// created lazily and live until the cleanup ticker removes expired ones; the
// store is rebuilt empty on process restart.
type MemoryStore struct {
	entries sync.Map

	// now is replaceable in tests
	now func() time.Time

	cleanupOnce sync.Once
}

// NewMemoryStore creates an in-memory store and starts its background
// cleanup of expired entries.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{now: time.Now}
	s.startCleanup()
	return s
}

func (s *MemoryStore) startCleanup() {
	s.cleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			for range ticker.C {
				now := s.now()
				s.entries.Range(func(key, value interface{}) bool {
					entry := value.(*memoryEntry)
					entry.mu.Lock()
					if now.After(entry.resetAt) {
						s.entries.Delete(key)
					}
					entry.mu.Unlock()
					return true
				})
			}
		}()
	})
}

func (s *MemoryStore) Incr(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := s.now()

	entryI, _ := s.entries.LoadOrStore(key, &memoryEntry{
		resetAt: now.Add(window),
	})
	entry := entryI.(*memoryEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Window elapsed: start a fresh one
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}

	if entry.count >= limit {
		return Result{Allowed: false, Count: entry.count, ResetAt: entry.resetAt}, nil
	}

	entry.count++
	return Result{Allowed: true, Count: entry.count, ResetAt: entry.resetAt}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (int, time.Time, error) {
	entryI, ok := s.entries.Load(key)
	if !ok {
		return 0, time.Time{}, nil
	}
	entry := entryI.(*memoryEntry)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if s.now().After(entry.resetAt) {
		return 0, time.Time{}, nil
	}
	return entry.count, entry.resetAt, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.entries.Delete(key)
	return nil
}
