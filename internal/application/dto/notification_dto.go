package dto

import (
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
)

// RecipientsInput destinatarios: type all | specific | role | enterprise.
type RecipientsInput struct {
	Type          string   `json:"type" validate:"required,oneof=all specific role enterprise"`
	UserIDs       []string `json:"user_ids"`
	Roles         []string `json:"roles"`
	EnterpriseIDs []string `json:"enterprise_ids"`
}

// ActionInput acción asociada.
type ActionInput struct {
	Label string `json:"label" validate:"required,max=50"`
	URL   string `json:"url" validate:"required"`
	Type  string `json:"type" validate:"omitempty,oneof=primary secondary link"`
}

// CreateNotificationRequest entrada para crear una notificación.
type CreateNotificationRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=200"`
	Message     string           `json:"message" validate:"required,min=1,max=5000"`
	Type        string           `json:"type" validate:"required,oneof=info success warning error announcement"`
	Priority    string           `json:"priority" validate:"required,oneof=low medium high urgent"`
	Recipients  *RecipientsInput `json:"recipients" validate:"required"`
	ScheduledAt *time.Time       `json:"scheduled_at"`
	ExpiresAt   *time.Time       `json:"expires_at"`
	Actions     []ActionInput    `json:"actions" validate:"omitempty,max=3,dive"`
}

// UpdateNotificationRequest solo para notificaciones draft o scheduled.
type UpdateNotificationRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Message     *string          `json:"message" validate:"omitempty,min=1,max=5000"`
	Type        *string          `json:"type" validate:"omitempty,oneof=info success warning error announcement"`
	Priority    *string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Recipients  *RecipientsInput `json:"recipients"`
	ScheduledAt *time.Time       `json:"scheduled_at"`
	ExpiresAt   *time.Time       `json:"expires_at"`
	Actions     []ActionInput    `json:"actions" validate:"omitempty,max=3,dive"`
	IsActive    *bool            `json:"is_active"`
}

// NotificationFilter filtros de listado.
type NotificationFilter struct {
	query.Params
	Type     string
	Priority string
	Status   string
	IsActive *bool
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID          string                      `json:"id"`
	Title       string                      `json:"title"`
	Message     string                      `json:"message"`
	Type        string                      `json:"type"`
	Priority    string                      `json:"priority"`
	Sender      entity.UserSummary          `json:"sender"`
	Recipients  entity.Recipients           `json:"recipients"`
	Status      string                      `json:"status"`
	ScheduledAt *time.Time                  `json:"scheduled_at,omitempty"`
	SentAt      *time.Time                  `json:"sent_at,omitempty"`
	ReadBy      []entity.ReadReceipt        `json:"read_by"`
	Actions     []entity.NotificationAction `json:"actions"`
	ExpiresAt   *time.Time                  `json:"expires_at,omitempty"`
	IsActive    bool                        `json:"is_active"`
	Metadata    entity.NotificationMetadata `json:"metadata"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// InboxItem notificación vista por un destinatario.
type InboxItem struct {
	NotificationResponse
	IsRead bool `json:"is_read"`
}

// NotificationStatsResponse resumen de notificaciones.
type NotificationStatsResponse struct {
	TotalNotifications int                `json:"total_notifications"`
	ByStatus           []stats.Point[int] `json:"by_status"`
	ByType             []stats.Point[int] `json:"by_type"`
	ByPriority         []stats.Point[int] `json:"by_priority"`
	TotalRecipients    int                `json:"total_recipients"`
	TotalReads         int                `json:"total_reads"`
	TotalClicks        int                `json:"total_clicks"`
	ReadRate           float64            `json:"read_rate"`
	ClickRate          float64            `json:"click_rate"`
}
