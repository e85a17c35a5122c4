package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
	"github.com/jhoicas/Enterprise-admin-api/pkg/validator"
)

// NotificationUseCase ciclo de vida de notificaciones:
// draft -> scheduled -> sent | failed, draft -> sent | failed.
// Los cambios de estado y contadores se serializan con mu.
type NotificationUseCase struct {
	mu       sync.Mutex
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	ids      IDGenerator
	now      Clock
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, userRepo repository.UserRepository, ids IDGenerator, clock Clock) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, userRepo: userRepo, ids: ids, now: clockOrDefault(clock)}
}

// List busca por título y mensaje; filtra por tipo, prioridad, estado y activo.
func (uc *NotificationUseCase) List(ctx context.Context, f dto.NotificationFilter) (query.Result[dto.NotificationResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.NotificationResponse]{}, err
	}
	res := query.Apply(list, f.Params,
		func(n *entity.Notification) []string { return []string{n.Title, n.Message} },
		query.Equals(f.Type, func(n *entity.Notification) string { return n.Type }),
		query.Equals(f.Priority, func(n *entity.Notification) string { return n.Priority }),
		query.Equals(f.Status, func(n *entity.Notification) string { return n.Status }),
		query.BoolEquals(f.IsActive, func(n *entity.Notification) bool { return n.IsActive }),
	)
	return query.Map(res, toNotificationResponse), nil
}

// GetByID obtiene una notificación.
func (uc *NotificationUseCase) GetByID(ctx context.Context, id string) (*dto.NotificationResponse, error) {
	n, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toNotificationResponse(n)
	return &out, nil
}

// Create crea una notificación en draft, o scheduled si ScheduledAt es futuro.
// El remitente es el usuario autenticado.
func (uc *NotificationUseCase) Create(ctx context.Context, senderID string, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	recipients, err := buildRecipients(*in.Recipients)
	if err != nil {
		return nil, err
	}
	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, domain.ErrUserNotFound
	}
	now := uc.now()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "expires_at", "expires_at debe ser futura", in.ExpiresAt)
	}
	n := &entity.Notification{
		ID:          uc.ids.NewID(PrefixNotification),
		Title:       strings.TrimSpace(in.Title),
		Message:     in.Message,
		Type:        in.Type,
		Priority:    in.Priority,
		Sender:      sender.Summary(),
		Recipients:  recipients,
		ScheduledAt: in.ScheduledAt,
		ExpiresAt:   in.ExpiresAt,
		ReadBy:      []entity.ReadReceipt{},
		Actions:     buildActions(in.Actions),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	n.Status = initialStatus(n.ScheduledAt, now)
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	out := toNotificationResponse(n)
	return &out, nil
}

// Update modifica una notificación draft o scheduled; sent y failed son terminales (ErrConflict).
func (uc *NotificationUseCase) Update(ctx context.Context, id string, in dto.UpdateNotificationRequest) (*dto.NotificationResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsTerminal() {
		return nil, terminalError(current)
	}
	n := current.Clone()
	now := uc.now()
	if in.Recipients != nil {
		r, err := buildRecipients(*in.Recipients)
		if err != nil {
			return nil, err
		}
		n.Recipients = r
	}
	if in.Actions != nil {
		n.Actions = buildActions(in.Actions)
	}
	if in.ExpiresAt != nil {
		if !in.ExpiresAt.After(now) {
			return nil, domain.NewFieldError(domain.ErrInvalidInput, "expires_at", "expires_at debe ser futura", in.ExpiresAt)
		}
		n.ExpiresAt = in.ExpiresAt
	}
	if in.ScheduledAt != nil {
		n.ScheduledAt = in.ScheduledAt
		n.Status = initialStatus(n.ScheduledAt, now)
	}
	setIf(&n.Title, in.Title)
	setIf(&n.Message, in.Message)
	setIf(&n.Type, in.Type)
	setIf(&n.Priority, in.Priority)
	setIf(&n.IsActive, in.IsActive)
	n.UpdatedAt = now
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	out := toNotificationResponse(n)
	return &out, nil
}

// Delete elimina una notificación.
func (uc *NotificationUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Send envía ya la notificación. Sin destinatarios o vencida queda en failed.
func (uc *NotificationUseCase) Send(ctx context.Context, id string) (*dto.NotificationResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	n, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.IsTerminal() {
		return nil, terminalError(n)
	}
	sent, err := uc.deliver(ctx, n, uc.now())
	if err != nil {
		return nil, err
	}
	out := toNotificationResponse(sent)
	return &out, nil
}

// DispatchDue envía las notificaciones programadas cuya hora llegó.
// Devuelve cuántas se procesaron; los fallos individuales se acumulan.
func (uc *NotificationUseCase) DispatchDue(ctx context.Context) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	list, err := uc.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	now := uc.now()
	var (
		done int
		errs []error
	)
	for _, n := range list {
		if !n.IsDue(now) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := uc.deliver(ctx, n, now); err != nil {
			errs = append(errs, err)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

// MarkRead registra la lectura del usuario (idempotente). Solo para
// notificaciones enviadas y dirigidas al usuario.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID string) (*dto.NotificationResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != entity.NotificationSent {
		return nil, domain.NewFieldError(domain.ErrConflict, "status", "solo se marcan como leídas notificaciones enviadas", current.Status)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !current.Recipients.Includes(user) {
		return nil, domain.ErrForbidden
	}
	if current.HasRead(userID) {
		out := toNotificationResponse(current)
		return &out, nil
	}
	n := current.Clone()
	now := uc.now()
	n.ReadBy = append(n.ReadBy, entity.ReadReceipt{UserID: userID, ReadAt: now})
	n.Metadata.ReadCount = len(n.ReadBy)
	n.UpdatedAt = now
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	out := toNotificationResponse(n)
	return &out, nil
}

// RecordClick incrementa el contador de clics de una notificación enviada.
func (uc *NotificationUseCase) RecordClick(ctx context.Context, id string) (*dto.NotificationResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != entity.NotificationSent {
		return nil, domain.NewFieldError(domain.ErrConflict, "status", "solo se registran clics de notificaciones enviadas", current.Status)
	}
	n := current.Clone()
	n.Metadata.ClickCount++
	n.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	out := toNotificationResponse(n)
	return &out, nil
}

// Inbox notificaciones enviadas, activas y vigentes dirigidas al usuario.
func (uc *NotificationUseCase) Inbox(ctx context.Context, userID string, p query.Params) (query.Result[dto.InboxItem], error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return query.Result[dto.InboxItem]{}, err
	}
	if user == nil {
		return query.Result[dto.InboxItem]{}, domain.ErrUserNotFound
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.InboxItem]{}, err
	}
	now := uc.now()
	res := query.Apply(list, p,
		func(n *entity.Notification) []string { return []string{n.Title, n.Message} },
		func(n *entity.Notification) bool {
			return n.Status == entity.NotificationSent && n.IsActive && !n.IsExpired(now) && n.Recipients.Includes(user)
		},
	)
	return query.Map(res, func(n *entity.Notification) dto.InboxItem {
		return dto.InboxItem{NotificationResponse: toNotificationResponse(n), IsRead: n.HasRead(userID)}
	}), nil
}

// Stats resumen de notificaciones y tasas de lectura/clic sobre destinatarios alcanzados.
func (uc *NotificationUseCase) Stats(ctx context.Context) (*dto.NotificationStatsResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationStatsResponse{
		TotalNotifications: len(list),
		ByStatus: stats.Series(stats.CountBy(list, func(n *entity.Notification) string { return n.Status }),
			entity.NotificationStatuses),
		ByType: stats.Series(stats.CountBy(list, func(n *entity.Notification) string { return n.Type }),
			entity.NotificationTypes),
		ByPriority: stats.Series(stats.CountBy(list, func(n *entity.Notification) string { return n.Priority }),
			entity.NotificationPriorities),
	}
	for _, n := range list {
		out.TotalRecipients += n.Metadata.TotalRecipients
		out.TotalReads += n.Metadata.ReadCount
		out.TotalClicks += n.Metadata.ClickCount
	}
	out.ReadRate = stats.Percent(out.TotalReads, out.TotalRecipients)
	out.ClickRate = stats.Percent(out.TotalClicks, out.TotalRecipients)
	return out, nil
}

// deliver resuelve destinatarios y deja la notificación en sent o failed.
func (uc *NotificationUseCase) deliver(ctx context.Context, current *entity.Notification, now time.Time) (*entity.Notification, error) {
	n := current.Clone()
	n.UpdatedAt = now
	if n.IsExpired(now) {
		n.Status = entity.NotificationFailed
		return n, uc.repo.Update(ctx, n)
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	total := stats.Count(users, func(u *entity.User) bool {
		return u.Status == entity.UserActive && n.Recipients.Includes(u)
	})
	n.Metadata.TotalRecipients = total
	if total == 0 {
		n.Status = entity.NotificationFailed
	} else {
		n.Status = entity.NotificationSent
		n.SentAt = &now
	}
	return n, uc.repo.Update(ctx, n)
}

func (uc *NotificationUseCase) get(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

func initialStatus(scheduledAt *time.Time, now time.Time) string {
	if scheduledAt != nil && scheduledAt.After(now) {
		return entity.NotificationScheduled
	}
	return entity.NotificationDraft
}

func terminalError(n *entity.Notification) error {
	return domain.NewFieldError(domain.ErrConflict, "status", "la notificación ya no admite cambios", n.Status)
}

func buildRecipients(in dto.RecipientsInput) (entity.Recipients, error) {
	r := entity.Recipients{Type: in.Type}
	switch in.Type {
	case entity.RecipientsSpecific:
		if len(in.UserIDs) == 0 {
			return r, domain.NewFieldError(domain.ErrInvalidInput, "recipients.user_ids", "indique al menos un usuario", nil)
		}
		r.UserIDs = slices.Clone(in.UserIDs)
	case entity.RecipientsRole:
		if len(in.Roles) == 0 {
			return r, domain.NewFieldError(domain.ErrInvalidInput, "recipients.roles", "indique al menos un rol", nil)
		}
		for _, role := range in.Roles {
			if !slices.Contains(entity.Roles, role) {
				return r, domain.NewFieldError(domain.ErrInvalidInput, "recipients.roles", "rol desconocido", role)
			}
		}
		r.Roles = slices.Clone(in.Roles)
	case entity.RecipientsEnterprise:
		if len(in.EnterpriseIDs) == 0 {
			return r, domain.NewFieldError(domain.ErrInvalidInput, "recipients.enterprise_ids", "indique al menos una empresa", nil)
		}
		r.EnterpriseIDs = slices.Clone(in.EnterpriseIDs)
	}
	return r, nil
}

func buildActions(in []dto.ActionInput) []entity.NotificationAction {
	out := make([]entity.NotificationAction, 0, len(in))
	for _, a := range in {
		t := a.Type
		if t == "" {
			t = "primary"
		}
		out = append(out, entity.NotificationAction{Label: a.Label, URL: a.URL, Type: t})
	}
	return out
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        n.Type,
		Priority:    n.Priority,
		Sender:      n.Sender,
		Recipients:  n.Recipients,
		Status:      n.Status,
		ScheduledAt: n.ScheduledAt,
		SentAt:      n.SentAt,
		ReadBy:      nonNil(n.ReadBy),
		Actions:     nonNil(n.Actions),
		ExpiresAt:   n.ExpiresAt,
		IsActive:    n.IsActive,
		Metadata:    n.Metadata,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
