package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/server/pkg/apperrors"
)

func newTestManager() *Manager {
	return NewManager(&Config{
		Secret:      "test-secret",
		Issuer:      "echoplay-test",
		TokenExpiry: time.Hour,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateToken("user-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.Admin)
	assert.Equal(t, "echoplay-test", claims.Issuer)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateToken("user-1", false)
	require.NoError(t, err)

	other := NewManager(&Config{Secret: "different-secret"})
	_, err = other.ValidateToken(token)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeTokenInvalid, appErr.Code)
}

func TestValidateTokenExpired(t *testing.T) {
	mgr := NewManager(&Config{
		Secret:      "test-secret",
		TokenExpiry: -time.Minute,
	})

	token, err := mgr.GenerateToken("user-1", false)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := newTestManager()

	_, err := mgr.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestDefaultExpiry(t *testing.T) {
	mgr := NewManager(&Config{Secret: "s"})
	assert.Equal(t, 24*time.Hour, mgr.tokenExpiry)
}
