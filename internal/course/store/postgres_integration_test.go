//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"courze/internal/course/models"
	"courze/internal/course/store"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
	"courze/pkg/testutil/containers"
)

type PostgresCourseSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresCourseSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCourseSuite))
}

func (s *PostgresCourseSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresCourseSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "certificates", "enrollments", "courses"))
}

func (s *PostgresCourseSuite) newCourse(courseID id.CourseID) *models.Course {
	course, err := models.NewCourse(courseID, "instructor-1", "Go Basics", 100, 80, time.Now().UTC())
	s.Require().NoError(err)
	return course
}

func (s *PostgresCourseSuite) TestCreateAndFind() {
	ctx := context.Background()

	course := s.newCourse("go-101")
	s.Require().NoError(s.store.CreateIfAbsent(ctx, course))

	found, err := s.store.FindByID(ctx, "go-101")
	s.Require().NoError(err)
	s.Equal(course.Title, found.Title)
	s.Equal(course.Price, found.Price)
	s.Equal(course.RefundThreshold, found.RefundThreshold)

	_, err = s.store.FindByID(ctx, "missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresCourseSuite) TestList() {
	ctx := context.Background()

	for _, courseID := range []id.CourseID{"charlie", "alpha", "bravo"} {
		s.Require().NoError(s.store.CreateIfAbsent(ctx, s.newCourse(courseID)))
	}

	courses, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(courses, 3)
	s.Equal(id.CourseID("alpha"), courses[0].ID)
	s.Equal(id.CourseID("charlie"), courses[2].ID)
}

// TestConcurrentDuplicateUpload verifies the unique constraint admits exactly
// one winner under contention.
func (s *PostgresCourseSuite) TestConcurrentDuplicateUpload() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.CreateIfAbsent(ctx, s.newCourse("contested"))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}
