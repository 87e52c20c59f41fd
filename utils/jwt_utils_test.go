package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatag/api/models"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Generate(&models.User{ID: 7, Email: "a@example.com"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).Generate(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := m.Generate(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}
