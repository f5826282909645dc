package locking

import (
	"sort"
	"sync"
	"time"

	"hospital-ops-backend/internal/apperror"
)

// Manager hands out per-resource locks for the allocation engine's critical
// section. Locks for a multi-resource request are always acquired in ascending
// resource-ID order so two concurrent requests can never deadlock, and every
// acquisition is bounded by a timeout so callers fail instead of queueing.
type Manager struct {
	mu      sync.Mutex
	locks   map[uint]chan struct{}
	timeout time.Duration
}

// NewManager creates a lock manager with the given acquisition timeout
func NewManager(timeout time.Duration) *Manager {
	return &Manager{
		locks:   make(map[uint]chan struct{}),
		timeout: timeout,
	}
}

// lockFor returns the lock channel for a resource, creating it on first use.
// Channels are buffered with capacity 1: a successful send holds the lock,
// a receive releases it. Entries are never removed; the set of resources is
// small and stable.
func (m *Manager) lockFor(resourceID uint) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.locks[resourceID]
	if !ok {
		ch = make(chan struct{}, 1)
		m.locks[resourceID] = ch
	}
	return ch
}

// AcquireAll takes the locks for every resource ID in sorted order. On success
// it returns a release function that must be called exactly once. On timeout it
// releases everything acquired so far and returns a TimeoutError naming the
// resource that could not be locked.
func (m *Manager) AcquireAll(resourceIDs []uint) (func(), error) {
	ids := make([]uint, len(resourceIDs))
	copy(ids, resourceIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	// Duplicate IDs in one request would self-deadlock on the second acquire
	deduped := ids[:0]
	for i, id := range ids {
		if i == 0 || ids[i-1] != id {
			deduped = append(deduped, id)
		}
	}
	ids = deduped

	acquired := make([]chan struct{}, 0, len(ids))
	releaseAcquired := func() {
		for _, ch := range acquired {
			<-ch
		}
	}

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	for _, id := range ids {
		ch := m.lockFor(id)
		select {
		case ch <- struct{}{}:
			acquired = append(acquired, ch)
		case <-timer.C:
			releaseAcquired()
			return nil, apperror.NewTimeout(id, m.timeout)
		}
	}

	var once sync.Once
	return func() {
		once.Do(releaseAcquired)
	}, nil
}

// Acquire takes the lock for a single resource
func (m *Manager) Acquire(resourceID uint) (func(), error) {
	return m.AcquireAll([]uint{resourceID})
}
