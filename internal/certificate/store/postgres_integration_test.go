//go:build integration

package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"courze/internal/certificate/models"
	"courze/internal/certificate/store"
	coursemodels "courze/internal/course/models"
	coursestore "courze/internal/course/store"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
	"courze/pkg/testutil/containers"
)

type PostgresCertificateSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	courses  *coursestore.Postgres
	store    *store.Postgres
}

func TestPostgresCertificateSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCertificateSuite))
}

func (s *PostgresCertificateSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.courses = coursestore.NewPostgres(s.postgres.DB)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresCertificateSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "certificates", "enrollments", "courses"))

	course, err := coursemodels.NewCourse("go-101", "instructor-1", "Go Basics", 100, 80, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.courses.CreateIfAbsent(ctx, course))
}

func (s *PostgresCertificateSuite) newCert(userID id.UserID) *models.Certificate {
	return models.NewCertificate(userID, "go-101", "Go Basics", "instructor-1", time.Now().UTC())
}

func (s *PostgresCertificateSuite) TestCreateAndLookups() {
	ctx := context.Background()

	cert := s.newCert("alice")
	s.Require().NoError(s.store.CreateIfAbsent(ctx, cert))

	byID, err := s.store.FindByID(ctx, cert.ID)
	s.Require().NoError(err)
	s.Equal(cert.UserID, byID.UserID)
	s.Equal(cert.CourseTitle, byID.CourseTitle)

	byPair, err := s.store.FindByEnrollment(ctx, "alice", "go-101")
	s.Require().NoError(err)
	s.Equal(cert.ID, byPair.ID)

	_, err = s.store.FindByID(ctx, id.NewCertificateID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByEnrollment(ctx, "bob", "go-101")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentMint verifies the unique constraint lets exactly one
// certificate through per enrollment.
func (s *PostgresCertificateSuite) TestConcurrentMint() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successes atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.CreateIfAbsent(ctx, s.newCert("alice")); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())

	_, err := s.store.FindByEnrollment(ctx, "alice", "go-101")
	s.Require().NoError(err)
}
