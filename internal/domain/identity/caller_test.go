package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" poster ")
	require.NoError(t, err)
	require.Equal(t, RolePoster, r)

	r, err = ParseRole("APPLICANT")
	require.NoError(t, err)
	require.Equal(t, RoleApplicant, r)

	_, err = ParseRole("admin")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestNew(t *testing.T) {
	id := uuid.New()

	p, ok := AsPoster(New(id, RolePoster))
	require.True(t, ok)
	require.Equal(t, id, p.ID)

	_, ok = AsApplicant(New(id, RolePoster))
	require.False(t, ok)

	a, ok := AsApplicant(New(id, RoleApplicant))
	require.True(t, ok)
	require.Equal(t, id, a.UserID())

	require.Equal(t, Anonymous{}, New(id, Role("OTHER")))
	require.Equal(t, Anonymous{}, New(uuid.Nil, RolePoster))
}

func TestIsAuthenticated(t *testing.T) {
	require.False(t, IsAuthenticated(nil))
	require.False(t, IsAuthenticated(Anonymous{}))
	require.True(t, IsAuthenticated(Applicant{ID: uuid.New()}))

	role, ok := RoleOf(Poster{ID: uuid.New()})
	require.True(t, ok)
	require.Equal(t, RolePoster, role)

	_, ok = RoleOf(Anonymous{})
	require.False(t, ok)
}
