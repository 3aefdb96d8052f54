package store

import (
	"context"
	"sort"
	"sync"

	"courze/internal/course/models"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
)

// InMemory keeps the catalog in a map. Courses are immutable, so the store
// only ever needs create-if-absent and lookup.
type InMemory struct {
	mu      sync.RWMutex
	courses map[id.CourseID]models.Course
}

// NewInMemory constructs an empty in-memory course store.
func NewInMemory() *InMemory {
	return &InMemory{courses: make(map[id.CourseID]models.Course)}
}

// CreateIfAbsent stores the course unless one with the same id already
// exists, in which case it returns sentinel.ErrConflict.
func (s *InMemory) CreateIfAbsent(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.courses[course.ID]; exists {
		return sentinel.ErrConflict
	}
	s.courses[course.ID] = *course
	return nil
}

// FindByID returns the course or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, courseID id.CourseID) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[courseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &course, nil
}

// List returns the catalog ordered by course id for stable pagination.
func (s *InMemory) List(_ context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
