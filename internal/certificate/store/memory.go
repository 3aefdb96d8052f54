package store

import (
	"context"
	"sync"

	"courze/internal/certificate/models"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
)

type enrollmentKey struct {
	userID   id.UserID
	courseID id.CourseID
}

// InMemory keeps certificates in maps indexed both by certificate id and by
// the (user, course) pair, mirroring the two lookup paths.
type InMemory struct {
	mu           sync.RWMutex
	byID         map[id.CertificateID]models.Certificate
	byEnrollment map[enrollmentKey]id.CertificateID
}

// NewInMemory constructs an empty in-memory certificate store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:         make(map[id.CertificateID]models.Certificate),
		byEnrollment: make(map[enrollmentKey]id.CertificateID),
	}
}

// CreateIfAbsent stores the certificate unless the (user, course) pair
// already holds one, in which case it returns sentinel.ErrConflict and leaves
// the existing certificate untouched.
func (s *InMemory) CreateIfAbsent(_ context.Context, cert *models.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enrollmentKey{cert.UserID, cert.CourseID}
	if _, exists := s.byEnrollment[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[cert.ID] = *cert
	s.byEnrollment[key] = cert.ID
	return nil
}

// FindByID returns the certificate or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, certID id.CertificateID) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cert, ok := s.byID[certID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &cert, nil
}

// FindByEnrollment returns the certificate for the pair or sentinel.ErrNotFound.
func (s *InMemory) FindByEnrollment(_ context.Context, userID id.UserID, courseID id.CourseID) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	certID, ok := s.byEnrollment[enrollmentKey{userID, courseID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cert := s.byID[certID]
	return &cert, nil
}
