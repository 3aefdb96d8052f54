package service

import (
	"sync"

	id "courze/pkg/domain"
)

type lockKey struct {
	userID   id.UserID
	courseID id.CourseID
}

// keyedMutex serializes operations per (user, course) pair. Entries are kept
// for the life of the process; records are never deleted, so the map is
// bounded by the number of active enrollments.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[lockKey]*sync.Mutex
}

func (k *keyedMutex) lock(userID id.UserID, courseID id.CourseID) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[lockKey]*sync.Mutex)
	}
	key := lockKey{userID, courseID}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
