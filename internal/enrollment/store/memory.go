package store

import (
	"context"
	"sync"

	"courze/internal/enrollment/models"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
)

type recordKey struct {
	userID   id.UserID
	courseID id.CourseID
}

// InMemory keeps enrollment records in a map keyed by (user, course).
type InMemory struct {
	mu      sync.RWMutex
	records map[recordKey]models.Record
}

// NewInMemory constructs an empty in-memory enrollment store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[recordKey]models.Record)}
}

// Create stores a fresh record, returning sentinel.ErrConflict when one
// already exists for the pair. The existing record is left untouched.
func (s *InMemory) Create(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{record.UserID, record.CourseID}
	if _, exists := s.records[key]; exists {
		return sentinel.ErrConflict
	}
	s.records[key] = *record
	return nil
}

// Find returns the record for the pair or sentinel.ErrNotFound.
func (s *InMemory) Find(_ context.Context, userID id.UserID, courseID id.CourseID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordKey{userID, courseID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &record, nil
}

// Update commits a recomputed record over the existing one.
func (s *InMemory) Update(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{record.UserID, record.CourseID}
	if _, exists := s.records[key]; !exists {
		return sentinel.ErrNotFound
	}
	s.records[key] = *record
	return nil
}
