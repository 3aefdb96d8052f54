package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "courze/pkg/domain"
)

func TestIssueAndVerify(t *testing.T) {
	svc := New("test-signing-key")

	token, err := svc.Issue(id.UserID("alice"), time.Minute)
	require.NoError(t, err)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID("alice"), userID)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	token, err := New("key-one").Issue(id.UserID("alice"), time.Minute)
	require.NoError(t, err)

	_, err = New("key-two").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := New("test-signing-key")

	token, err := svc.Issue(id.UserID("alice"), -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := New("test-signing-key").Verify("not-a-token")
	assert.Error(t, err)
}
