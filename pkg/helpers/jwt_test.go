package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() (*JWTManager, *time.Time) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := NewJWTManager("test-secret", 15*time.Minute, 168*time.Hour)
	m.Now = func() time.Time { return now }
	return m, &now
}

func TestGenerateAndParseClaims(t *testing.T) {
	m, _ := newTestJWT()

	token, exp, err := m.GenerateAccessToken("user-1", "joao@acme.com", "EMPLOYEE", "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, m.Now().Add(15*time.Minute), exp)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "joao@acme.com", claims.Email)
	assert.Equal(t, "EMPLOYEE", claims.Role)
	assert.Equal(t, "tenant-1", claims.TenantID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, now := newTestJWT()

	token, _, err := m.GenerateAccessToken("user-1", "joao@acme.com", "EMPLOYEE", "tenant-1")
	require.NoError(t, err)

	*now = now.Add(16 * time.Minute)
	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	m, now := newTestJWT()

	access, _, err := m.GenerateAccessToken("user-1", "joao@acme.com", "EMPLOYEE", "tenant-1")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("user-1", "joao@acme.com", "EMPLOYEE", "tenant-1")
	require.NoError(t, err)

	*now = now.Add(24 * time.Hour)
	_, err = m.Parse(access)
	assert.Error(t, err)
	_, err = m.Parse(refresh)
	assert.NoError(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m, _ := newTestJWT()
	other := NewJWTManager("other-secret", 15*time.Minute, 168*time.Hour)
	other.Now = m.Now

	token, _, err := other.GenerateAccessToken("user-1", "joao@acme.com", "EMPLOYEE", "tenant-1")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsMangledToken(t *testing.T) {
	m, _ := newTestJWT()

	_, err := m.Parse("definitely.not.ajwt")
	assert.Error(t, err)
}
