package notification

import (
	"context"
	"sort"
	"testing"
	"time"

	"recruitment-portal/internal/domain/identity"
	notedomain "recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memNotifications struct {
	items map[uuid.UUID]notedomain.Notification
	marks int
}

func (m *memNotifications) Create(_ context.Context, n notedomain.Notification) error {
	m.items[n.ID] = n
	return nil
}

func (m *memNotifications) GetByID(_ context.Context, id uuid.UUID) (notedomain.Notification, error) {
	n, ok := m.items[id]
	if !ok {
		return notedomain.Notification{}, repository.ErrNotificationNotFound
	}
	return n, nil
}

func (m *memNotifications) ListByRecipient(_ context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]notedomain.Notification, error) {
	out := make([]notedomain.Notification, 0)
	for _, n := range m.items {
		if n.RecipientID != recipientID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id uuid.UUID) error {
	n, ok := m.items[id]
	if !ok {
		return repository.ErrNotificationNotFound
	}
	m.marks++
	n.IsRead = true
	m.items[id] = n
	return nil
}

func TestInbox_ListAndMarkRead(t *testing.T) {
	recipient := uuid.New()
	older := notedomain.Notification{ID: uuid.New(), RecipientID: recipient, Message: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := notedomain.Notification{ID: uuid.New(), RecipientID: recipient, Message: "newer", CreatedAt: time.Now()}
	other := notedomain.Notification{ID: uuid.New(), RecipientID: uuid.New(), Message: "other", CreatedAt: time.Now()}
	repo := &memNotifications{items: map[uuid.UUID]notedomain.Notification{older.ID: older, newer.ID: newer, other.ID: other}}
	svc := NewService(repo, nil)
	ctx := context.Background()
	me := identity.Applicant{ID: recipient}

	all, err := svc.List(ctx, me, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "newer", all[0].Message)

	n, err := svc.MarkRead(ctx, me, older.ID)
	require.NoError(t, err)
	require.True(t, n.IsRead)

	unread, err := svc.List(ctx, me, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, newer.ID, unread[0].ID)

	_, err = svc.MarkRead(ctx, me, older.ID)
	require.NoError(t, err)
	require.Equal(t, 1, repo.marks, "already read is not written again")
}

func TestInbox_MarkReadGates(t *testing.T) {
	n := notedomain.Notification{ID: uuid.New(), RecipientID: uuid.New(), Message: "m"}
	repo := &memNotifications{items: map[uuid.UUID]notedomain.Notification{n.ID: n}}
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.MarkRead(ctx, identity.Poster{ID: uuid.New()}, n.ID)
	require.ErrorIs(t, err, ErrForbidden)
	require.False(t, repo.items[n.ID].IsRead)

	_, err = svc.MarkRead(ctx, identity.Applicant{ID: n.RecipientID}, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.MarkRead(ctx, identity.Anonymous{}, n.ID)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.List(ctx, identity.Anonymous{}, false)
	require.ErrorIs(t, err, ErrUnauthorized)
}
