package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, title, message, type, priority, sender, recipients, status, scheduled_at, sent_at,
	read_by, actions, expires_at, is_active, total_recipients, read_count, click_count, created_at, updated_at`

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
// Remitente, destinatarios, lecturas y acciones van en JSONB.
type NotificationRepo struct {
	db Queryer
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(db Queryer) *NotificationRepo {
	return &NotificationRepo{db: db}
}

type notificationDocs struct {
	sender, recipients, readBy, actions []byte
}

func encodeNotification(n *entity.Notification) (d notificationDocs, err error) {
	if d.sender, err = jsonb(n.Sender); err != nil {
		return d, err
	}
	if d.recipients, err = jsonb(n.Recipients); err != nil {
		return d, err
	}
	readBy := n.ReadBy
	if readBy == nil {
		readBy = []entity.ReadReceipt{}
	}
	if d.readBy, err = jsonb(readBy); err != nil {
		return d, err
	}
	actions := n.Actions
	if actions == nil {
		actions = []entity.NotificationAction{}
	}
	d.actions, err = jsonb(actions)
	return d, err
}

// Create persiste una nueva notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	d, err := encodeNotification(n)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = queryer(ctx, r.db).Exec(ctx, query,
		n.ID, n.Title, n.Message, n.Type, n.Priority, d.sender, d.recipients, n.Status, n.ScheduledAt, n.SentAt,
		d.readBy, d.actions, n.ExpiresAt, n.IsActive, n.Metadata.TotalRecipients, n.Metadata.ReadCount,
		n.Metadata.ClickCount, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return writeError("insert notification", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	n, err := scanNotification(queryer(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// Update actualiza una notificación existente.
func (r *NotificationRepo) Update(ctx context.Context, n *entity.Notification) error {
	d, err := encodeNotification(n)
	if err != nil {
		return err
	}
	query := `
		UPDATE notifications SET title = $2, message = $3, type = $4, priority = $5, sender = $6, recipients = $7,
		       status = $8, scheduled_at = $9, sent_at = $10, read_by = $11, actions = $12, expires_at = $13,
		       is_active = $14, total_recipients = $15, read_count = $16, click_count = $17, updated_at = $18
		 WHERE id = $1`
	tag, err := queryer(ctx, r.db).Exec(ctx, query,
		n.ID, n.Title, n.Message, n.Type, n.Priority, d.sender, d.recipients, n.Status, n.ScheduledAt, n.SentAt,
		d.readBy, d.actions, n.ExpiresAt, n.IsActive, n.Metadata.TotalRecipients, n.Metadata.ReadCount,
		n.Metadata.ClickCount, n.UpdatedAt,
	)
	if err != nil {
		return writeError("update notification", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina una notificación por ID.
func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return notFoundIfNone(tag)
}

// List devuelve todas las notificaciones, de la más reciente a la más antigua.
func (r *NotificationRepo) List(ctx context.Context) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY created_at DESC, id DESC`
	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func scanNotification(row scanner) (*entity.Notification, error) {
	var (
		n entity.Notification
		d notificationDocs
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Priority, &d.sender, &d.recipients, &n.Status,
		&n.ScheduledAt, &n.SentAt, &d.readBy, &d.actions, &n.ExpiresAt, &n.IsActive, &n.Metadata.TotalRecipients,
		&n.Metadata.ReadCount, &n.Metadata.ClickCount, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{d.sender, &n.Sender},
		{d.recipients, &n.Recipients},
		{d.readBy, &n.ReadBy},
		{d.actions, &n.Actions},
	} {
		if err := fromJSONB(doc.raw, doc.dst); err != nil {
			return nil, err
		}
	}
	return &n, nil
}
