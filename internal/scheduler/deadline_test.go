package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubCloser struct {
	got time.Time
	n   int64
	err error
}

func (s *stubCloser) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	s.got = now
	return s.n, s.err
}

func TestDeadlineSweeper_Sweep(t *testing.T) {
	closer := &stubCloser{n: 3}
	s, err := NewDeadlineSweeper("", closer, nil)
	require.NoError(t, err)
	fixed := time.Date(2026, 4, 1, 0, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.Equal(t, int64(3), s.Sweep(context.Background()))
	require.Equal(t, fixed, closer.got)
}

func TestDeadlineSweeper_SweepError(t *testing.T) {
	s, err := NewDeadlineSweeper("@daily", &stubCloser{err: errors.New("db down")}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), s.Sweep(context.Background()))
}

func TestDeadlineSweeper_InvalidSpec(t *testing.T) {
	_, err := NewDeadlineSweeper("every now and then", &stubCloser{}, nil)
	require.Error(t, err)
}

func TestDeadlineSweeper_StartStop(t *testing.T) {
	s, err := NewDeadlineSweeper("@every 1h", &stubCloser{}, nil)
	require.NoError(t, err)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
