package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"courze/internal/certificate/store"
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
)

type CertificateServiceSuite struct {
	suite.Suite
	store   *store.InMemory
	service *Service
}

func TestCertificateServiceSuite(t *testing.T) {
	suite.Run(t, new(CertificateServiceSuite))
}

func (s *CertificateServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.service = New(s.store)
}

func (s *CertificateServiceSuite) mintInput(userID id.UserID, courseID id.CourseID) MintInput {
	return MintInput{
		UserID:      userID,
		CourseID:    courseID,
		CourseTitle: "Distributed Systems",
		Instructor:  "instructor-1",
	}
}

// =============================================================================
// Mint Tests
// =============================================================================

func (s *CertificateServiceSuite) TestMint() {
	ctx := context.Background()

	s.Run("first mint creates a certificate", func() {
		cert, created, err := s.service.Mint(ctx, s.mintInput("alice", "go-101"))
		s.NoError(err)
		s.True(created)
		s.False(cert.ID.IsNil())
		s.Equal(id.UserID("alice"), cert.UserID)
		s.Equal("Distributed Systems", cert.CourseTitle)
		s.False(cert.IssuedAt.IsZero())
	})

	s.Run("repeat mint returns the original certificate", func() {
		first, created, err := s.service.Mint(ctx, s.mintInput("bob", "go-201"))
		s.Require().NoError(err)
		s.Require().True(created)

		second, created, err := s.service.Mint(ctx, s.mintInput("bob", "go-201"))
		s.NoError(err)
		s.False(created)
		s.Equal(first.ID, second.ID)
		s.Equal(first.IssuedAt, second.IssuedAt)
	})

	s.Run("different courses mint independently", func() {
		a, created, err := s.service.Mint(ctx, s.mintInput("carol", "course-a"))
		s.Require().NoError(err)
		s.Require().True(created)

		b, created, err := s.service.Mint(ctx, s.mintInput("carol", "course-b"))
		s.NoError(err)
		s.True(created)
		s.NotEqual(a.ID, b.ID)
	})
}

// =============================================================================
// Lookup Tests
// =============================================================================

func (s *CertificateServiceSuite) TestGet() {
	ctx := context.Background()

	s.Run("returns a minted certificate", func() {
		cert, _, err := s.service.Mint(ctx, s.mintInput("alice", "go-101"))
		s.Require().NoError(err)

		found, err := s.service.Get(ctx, cert.ID)
		s.NoError(err)
		s.Equal(cert.UserID, found.UserID)
	})

	s.Run("unknown id returns not found", func() {
		_, err := s.service.Get(ctx, id.NewCertificateID())
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CertificateServiceSuite) TestGetByEnrollment() {
	ctx := context.Background()

	s.Run("resolves the pair to its certificate", func() {
		cert, _, err := s.service.Mint(ctx, s.mintInput("alice", "go-101"))
		s.Require().NoError(err)

		found, err := s.service.GetByEnrollment(ctx, "alice", "go-101")
		s.NoError(err)
		s.Equal(cert.ID, found.ID)
	})

	s.Run("uncertified pair returns not found", func() {
		_, err := s.service.GetByEnrollment(ctx, "alice", "never-finished")
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
