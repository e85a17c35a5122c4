package entity

import (
	"slices"
	"time"
)

// Tipos de notificación.
const (
	NotificationInfo         = "info"
	NotificationSuccess      = "success"
	NotificationWarning      = "warning"
	NotificationError        = "error"
	NotificationAnnouncement = "announcement"
)

// Prioridades.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Estados del ciclo de vida: draft -> scheduled -> sent | failed. sent y failed son terminales.
const (
	NotificationDraft     = "draft"
	NotificationScheduled = "scheduled"
	NotificationSent      = "sent"
	NotificationFailed    = "failed"
)

// Tipos de destinatarios.
const (
	RecipientsAll        = "all"
	RecipientsSpecific   = "specific"
	RecipientsRole       = "role"
	RecipientsEnterprise = "enterprise"
)

var (
	NotificationTypes      = []string{NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError, NotificationAnnouncement}
	NotificationPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	NotificationStatuses   = []string{NotificationDraft, NotificationScheduled, NotificationSent, NotificationFailed}
)

// UserSummary datos mínimos del remitente embebidos en la notificación.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Recipients unión etiquetada: Type indica cuál de las listas aplica.
type Recipients struct {
	Type          string   `json:"type"`
	UserIDs       []string `json:"user_ids,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	EnterpriseIDs []string `json:"enterprise_ids,omitempty"`
}

// Includes informa si el usuario está entre los destinatarios.
func (r Recipients) Includes(u *User) bool {
	switch r.Type {
	case RecipientsAll:
		return true
	case RecipientsSpecific:
		return slices.Contains(r.UserIDs, u.ID)
	case RecipientsRole:
		return slices.Contains(r.Roles, u.Role)
	case RecipientsEnterprise:
		return u.EnterpriseID != "" && slices.Contains(r.EnterpriseIDs, u.EnterpriseID)
	}
	return false
}

// ReadReceipt lectura de un usuario.
type ReadReceipt struct {
	UserID string    `json:"user_id"`
	ReadAt time.Time `json:"read_at"`
}

// NotificationAction botón/enlace asociado a la notificación.
type NotificationAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"` // primary, secondary, link
}

// NotificationMetadata contadores de entrega.
type NotificationMetadata struct {
	TotalRecipients int `json:"total_recipients"`
	ReadCount       int `json:"read_count"`
	ClickCount      int `json:"click_count"`
}

// Notification mensaje emitido por la plataforma a un conjunto de destinatarios.
type Notification struct {
	ID          string
	Title       string
	Message     string
	Type        string
	Priority    string
	Sender      UserSummary
	Recipients  Recipients
	Status      string
	ScheduledAt *time.Time
	SentAt      *time.Time
	ReadBy      []ReadReceipt
	Actions     []NotificationAction
	ExpiresAt   *time.Time
	IsActive    bool
	Metadata    NotificationMetadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal informa si la notificación ya no admite cambios de estado.
func (n *Notification) IsTerminal() bool {
	return n.Status == NotificationSent || n.Status == NotificationFailed
}

// IsExpired informa si ExpiresAt ya pasó.
func (n *Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && !n.ExpiresAt.After(now)
}

// IsDue informa si una notificación programada ya debe enviarse.
func (n *Notification) IsDue(now time.Time) bool {
	return n.Status == NotificationScheduled && n.ScheduledAt != nil && !n.ScheduledAt.After(now)
}

// HasRead informa si el usuario ya la leyó.
func (n *Notification) HasRead(userID string) bool {
	return slices.ContainsFunc(n.ReadBy, func(r ReadReceipt) bool { return r.UserID == userID })
}

func (n *Notification) Clone() *Notification {
	c := *n
	c.Recipients.UserIDs = slices.Clone(n.Recipients.UserIDs)
	c.Recipients.Roles = slices.Clone(n.Recipients.Roles)
	c.Recipients.EnterpriseIDs = slices.Clone(n.Recipients.EnterpriseIDs)
	c.ReadBy = slices.Clone(n.ReadBy)
	c.Actions = slices.Clone(n.Actions)
	c.ScheduledAt = cloneTime(n.ScheduledAt)
	c.SentAt = cloneTime(n.SentAt)
	c.ExpiresAt = cloneTime(n.ExpiresAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
