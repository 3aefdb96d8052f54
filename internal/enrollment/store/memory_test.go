package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"courze/internal/enrollment/models"
	"courze/pkg/platform/sentinel"
)

type EnrollmentStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *EnrollmentStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestEnrollmentStoreSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentStoreSuite))
}

// TestCreateAndFind verifies records are keyed by the (user, course) pair.
func (s *EnrollmentStoreSuite) TestCreateAndFind() {
	s.Run("creates and finds a record", func() {
		record := models.NewRecord("alice", "go-101", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, record))

		found, err := s.store.Find(s.ctx, "alice", "go-101")
		s.Require().NoError(err)
		s.Equal(record.UserID, found.UserID)
		s.Equal(record.CourseID, found.CourseID)
		s.Zero(found.Progress)
	})

	s.Run("returns ErrNotFound for an unknown pair", func() {
		_, err := s.store.Find(s.ctx, "alice", "never-enrolled")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("same user in two courses holds two records", func() {
		s.Require().NoError(s.store.Create(s.ctx, models.NewRecord("bob", "course-a", time.Now())))
		s.Require().NoError(s.store.Create(s.ctx, models.NewRecord("bob", "course-b", time.Now())))

		_, err := s.store.Find(s.ctx, "bob", "course-a")
		s.NoError(err)
		_, err = s.store.Find(s.ctx, "bob", "course-b")
		s.NoError(err)
	})
}

// TestDuplicateCreate verifies the existing record survives a re-create.
func (s *EnrollmentStoreSuite) TestDuplicateCreate() {
	record := models.NewRecord("alice", "go-101", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, record))

	record.Progress = 50
	record.RefundReceived = 62.5
	s.Require().NoError(s.store.Update(s.ctx, record))

	err := s.store.Create(s.ctx, models.NewRecord("alice", "go-101", time.Now()))
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	found, err := s.store.Find(s.ctx, "alice", "go-101")
	s.Require().NoError(err)
	s.Equal(50.0, found.Progress)
	s.Equal(62.5, found.RefundReceived)
}

// TestUpdate verifies commits and the missing-record case.
func (s *EnrollmentStoreSuite) TestUpdate() {
	s.Run("persists recomputed state", func() {
		record := models.NewRecord("alice", "go-101", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, record))

		record.Progress = 40
		record.RefundReceived = 50
		s.Require().NoError(s.store.Update(s.ctx, record))

		found, err := s.store.Find(s.ctx, "alice", "go-101")
		s.Require().NoError(err)
		s.Equal(40.0, found.Progress)
		s.Equal(50.0, found.RefundReceived)
	})

	s.Run("returns ErrNotFound for a missing record", func() {
		record := models.NewRecord("ghost", "go-101", time.Now())
		err := s.store.Update(s.ctx, record)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestIsolation verifies callers cannot mutate stored state through returned
// pointers.
func (s *EnrollmentStoreSuite) TestIsolation() {
	record := models.NewRecord("alice", "go-101", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, record))

	found, err := s.store.Find(s.ctx, "alice", "go-101")
	s.Require().NoError(err)
	found.RefundReceived = 999

	again, err := s.store.Find(s.ctx, "alice", "go-101")
	s.Require().NoError(err)
	s.Zero(again.RefundReceived)
}
