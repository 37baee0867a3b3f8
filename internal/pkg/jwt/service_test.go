package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"recruitment-portal/internal/domain/identity"
)

func TestHMACService_AccessTokenCarriesRole(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id, "jobposter@example.com", identity.RolePoster)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	require.Equal(t, id, claims.UserID)
	require.Equal(t, identity.RolePoster, claims.Role)
	require.True(t, svc.IsAccessToken(claims))
	require.False(t, svc.IsRefreshToken(claims))
}

func TestHMACService_RefreshToken(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	tok, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	require.True(t, svc.IsRefreshToken(claims))
	require.Empty(t, claims.Role)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateAccessToken(uuid.New(), "", identity.RoleApplicant)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	a := NewHMACService("a", "b", time.Minute, time.Hour)
	b := NewHMACService("c", "d", time.Minute, time.Hour)

	tok, err := a.GenerateAccessToken(uuid.New(), "", identity.RoleApplicant)
	require.NoError(t, err)

	_, err = b.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_MissingSecret(t *testing.T) {
	svc := NewHMACService("", "", time.Minute, time.Hour)
	_, err := svc.GenerateAccessToken(uuid.New(), "", identity.RolePoster)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
