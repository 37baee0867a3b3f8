package job

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	typ, err := ParseType("full-time")
	require.NoError(t, err)
	require.Equal(t, TypeFullTime, typ)

	_, err = ParseType("Contract")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestPosting_SkillList(t *testing.T) {
	p := Posting{RequiredSkills: "Python, Django , ,REST"}
	require.Equal(t, []string{"Python", "Django", "REST"}, p.SkillList())
}

func TestPosting_ExpiredOn(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	dueToday := Posting{Deadline: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	require.False(t, dueToday.ExpiredOn(now))

	dueYesterday := Posting{Deadline: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	require.True(t, dueYesterday.ExpiredOn(now))
}

func TestPosting_OwnedBy(t *testing.T) {
	owner := uuid.New()
	p := Posting{PostedBy: owner}
	require.True(t, p.OwnedBy(owner))
	require.False(t, p.OwnedBy(uuid.New()))
	require.False(t, Posting{}.OwnedBy(uuid.Nil))
}
