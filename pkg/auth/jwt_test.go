package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", "subcenter-api", time.Hour)
	staffID := uuid.New()

	token, claims, err := svc.Generate(staffID, "9876543210", "ANM1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)

	parsed, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, staffID.String(), parsed.StaffID)
	assert.Equal(t, "9876543210", parsed.Phone)
	assert.Equal(t, "ANM1", parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", "subcenter-api", time.Hour)
	verifier := NewTokenService("secret-b", "subcenter-api", time.Hour)

	token, _, err := issuer.Generate(uuid.New(), "9876543210", "Staff")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", "subcenter-api", time.Nanosecond)

	token, _, err := svc.Generate(uuid.New(), "9876543210", "Staff")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", "subcenter-api", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
