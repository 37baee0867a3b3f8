package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruitment-portal/internal/domain/notification"
	"recruitment-portal/internal/domain/user"
	"recruitment-portal/internal/infrastructure/mail"
	"recruitment-portal/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	err      error
	channels []string
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, _ []byte) error {
	p.channels = append(p.channels, channel)
	return p.err
}

type recordingHub struct {
	sent map[uuid.UUID][][]byte
}

func (h *recordingHub) SendTo(userID uuid.UUID, message []byte) {
	if h.sent == nil {
		h.sent = map[uuid.UUID][][]byte{}
	}
	h.sent[userID] = append(h.sent[userID], message)
}

type recordingMailer struct {
	enabled bool
	sent    []mail.Message
}

func (m *recordingMailer) Enabled() bool { return m.enabled }

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type lookup map[uuid.UUID]user.User

func (l lookup) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := l[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func note(recipient uuid.UUID) notification.Notification {
	return notification.Notification{
		ID:          uuid.New(),
		RecipientID: recipient,
		Message:     "The status of your application for Data Analyst has been updated to Interview.",
		CreatedAt:   time.Now(),
	}
}

func TestDispatch_PublishesPerRecipient(t *testing.T) {
	pub := &recordingPublisher{}
	hub := &recordingHub{}
	d := NewDispatcher(pub, hub, nil, nil, nil)
	a, b := uuid.New(), uuid.New()

	d.Dispatch(context.Background(), []notification.Notification{note(a), note(b)})

	require.Equal(t, []string{Channel(a), Channel(b)}, pub.channels)
	require.Empty(t, hub.sent, "published messages reach the hub through the subscriber")
}

func TestDispatch_FallsBackToLocalHub(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis unavailable")}
	hub := &recordingHub{}
	d := NewDispatcher(pub, hub, nil, nil, nil)
	a := uuid.New()
	n := note(a)

	d.Dispatch(context.Background(), []notification.Notification{n})

	require.Len(t, hub.sent[a], 1)
	evt, err := ws.DecodeNotification(hub.sent[a][0])
	require.NoError(t, err)
	require.Equal(t, n.ID, evt.ID)
	require.Equal(t, n.Message, evt.Message)
}

func TestDispatch_SendsMailWhenEnabled(t *testing.T) {
	a := uuid.New()
	users := lookup{a: {ID: a, Username: "jobapplicant", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}}
	mailer := &recordingMailer{enabled: true}
	d := NewDispatcher(&recordingPublisher{}, nil, mailer, users, nil)

	d.Dispatch(context.Background(), []notification.Notification{note(a), note(uuid.New())})

	require.Len(t, mailer.sent, 1)
	require.Equal(t, "ada@example.com", mailer.sent[0].To)
	require.Contains(t, mailer.sent[0].Body, "Hello Ada Lovelace")
	require.Contains(t, mailer.sent[0].Body, "updated to Interview.")
}

func TestDispatch_MailDisabled(t *testing.T) {
	a := uuid.New()
	mailer := &recordingMailer{}
	d := NewDispatcher(&recordingPublisher{}, nil, mailer, lookup{a: {ID: a, Email: "a@example.com"}}, nil)

	d.Dispatch(context.Background(), []notification.Notification{note(a)})
	require.Empty(t, mailer.sent)
}

func TestSubscriber_HandleRoutesByChannel(t *testing.T) {
	hub := &recordingHub{}
	s := NewSubscriber(nil, hub, nil)
	a := uuid.New()

	s.Handle(Channel(a), []byte(`{"type":"notification"}`))
	s.Handle("notifications:not-a-uuid", []byte(`{}`))

	require.Len(t, hub.sent, 1)
	require.Len(t, hub.sent[a], 1)
}
