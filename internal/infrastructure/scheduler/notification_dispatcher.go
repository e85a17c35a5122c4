package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Enterprise-admin-api/pkg/logger"
)

// DueDispatcher envía las notificaciones programadas cuya hora llegó.
type DueDispatcher interface {
	DispatchDue(ctx context.Context) (int, error)
}

// NotificationDispatcher ejecuta DispatchDue periódicamente.
type NotificationDispatcher struct {
	dispatcher DueDispatcher
	log        *logger.Logger
	interval   time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

// NewNotificationDispatcher crea el despachador con el intervalo dado.
func NewNotificationDispatcher(d DueDispatcher, log *logger.Logger, interval time.Duration) *NotificationDispatcher {
	return &NotificationDispatcher{
		dispatcher: d,
		log:        log.Component("notification_dispatcher"),
		interval:   interval,
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start lanza el bucle en segundo plano; ejecuta una pasada inmediata.
func (s *NotificationDispatcher) Start(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("starting notification dispatcher")
	go s.run(ctx)
}

// Stop detiene el bucle y espera a que termine la pasada en curso.
func (s *NotificationDispatcher) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	<-s.done
}

func (s *NotificationDispatcher) run(ctx context.Context) {
	defer close(s.done)

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("notification dispatcher stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.log.Info().Msg("notification dispatcher stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *NotificationDispatcher) tick(ctx context.Context) {
	sent, err := s.dispatcher.DispatchDue(ctx)
	if err != nil {
		s.log.Error().Err(err).Int("processed", sent).Msg("dispatch due notifications")
		return
	}
	if sent > 0 {
		s.log.Info().Int("processed", sent).Msg("dispatched due notifications")
	}
}
