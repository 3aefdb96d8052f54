// Package domain defines the typed identifiers shared across components.
//
// User and instructor identities are opaque principal references supplied by
// the identity collaborator: the core only needs equality and a stable string
// form for key construction. Course identifiers are chosen by instructors at
// upload time. Certificate identifiers are minted internally as UUIDs.
//
// Distinct named types keep the compiler from accepting a course id where a
// principal is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "courze/pkg/domain-errors"
)

// UserID is an opaque principal reference for a student or instructor.
type UserID string

func (u UserID) String() string { return string(u) }

// CourseID identifies a course in the catalog.
type CourseID string

func (c CourseID) String() string { return string(c) }

// CertificateID identifies a minted completion certificate.
type CertificateID uuid.UUID

func (c CertificateID) String() string { return uuid.UUID(c).String() }

// IsNil reports whether the certificate id is the zero UUID.
func (c CertificateID) IsNil() bool { return uuid.UUID(c) == uuid.Nil }

// MarshalText encodes the id as its canonical UUID string. Defined types do
// not inherit uuid.UUID's marshaling, and without it JSON would render the
// raw byte array.
func (c CertificateID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(c).String()), nil
}

// UnmarshalText parses a canonical UUID string.
func (c *CertificateID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*c = CertificateID(parsed)
	return nil
}

// NewCertificateID mints a fresh certificate identifier.
func NewCertificateID() CertificateID { return CertificateID(uuid.New()) }

const maxIDLength = 128

// ParseUserID validates a principal reference received at a trust boundary.
// Principals are opaque but must be non-empty, trimmed, and bounded so they
// can serve as storage keys.
func ParseUserID(raw string) (UserID, error) {
	s, err := parseOpaqueID(raw, "user id")
	if err != nil {
		return "", err
	}
	return UserID(s), nil
}

// ParseCourseID validates a course identifier received at a trust boundary.
func ParseCourseID(raw string) (CourseID, error) {
	s, err := parseOpaqueID(raw, "course id")
	if err != nil {
		return "", err
	}
	return CourseID(s), nil
}

// ParseCertificateID validates a certificate identifier received at a trust
// boundary. Certificate ids are always UUIDs minted by the issuer.
func ParseCertificateID(raw string) (CertificateID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return CertificateID{}, dErrors.New(dErrors.CodeValidation, "certificate id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return CertificateID{}, dErrors.New(dErrors.CodeValidation, "certificate id cannot be the nil UUID")
	}
	return CertificateID(parsed), nil
}

func parseOpaqueID(raw, what string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", dErrors.Newf(dErrors.CodeValidation, "%s cannot be empty", what)
	}
	if len(s) > maxIDLength {
		return "", dErrors.Newf(dErrors.CodeValidation, "%s must be %d characters or less", what, maxIDLength)
	}
	return s, nil
}
