package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "medclinic", time.Hour)

	token, claims, err := svc.GenerateAccessToken("1", "johndoe", "1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", got.Username)
	assert.Equal(t, claims.ID, got.ID)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTService("one", "medclinic", time.Hour).GenerateAccessToken("1", "johndoe", "1")
	require.NoError(t, err)

	_, err = NewJWTService("two", "medclinic", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", "medclinic", time.Minute).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken("1", "johndoe", "1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("secret", "medclinic", time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
