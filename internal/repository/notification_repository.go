package repository

import (
	"context"
	"errors"
	"fmt"

	"recruitment-portal/internal/database"
	"recruitment-portal/internal/domain/notification"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (notification.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx,
		`INSERT INTO notifications (id, recipient_id, message, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.RecipientID, n.Message, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	var n notification.Notification
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT id, recipient_id, message, is_read, created_at FROM notifications WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.RecipientID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return notification.Notification{}, ErrNotificationNotFound
		}
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *PostgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id, recipient_id, message, is_read, created_at
		 FROM notifications
		 WHERE recipient_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		 ORDER BY created_at DESC
		 LIMIT $3`,
		recipientID, unreadOnly, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
