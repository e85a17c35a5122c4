package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Enterprise-admin-api/pkg/logger"
)

type countingDispatcher struct {
	calls atomic.Int32
	err   error
}

func (d *countingDispatcher) DispatchDue(context.Context) (int, error) {
	d.calls.Add(1)
	return 1, d.err
}

func TestNotificationDispatcher_TicksUntilStopped(t *testing.T) {
	d := &countingDispatcher{}
	s := NewNotificationDispatcher(d, logger.Nop(), 5*time.Millisecond)

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return d.calls.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()

	after := d.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, d.calls.Load())

	assert.NotPanics(t, s.Stop)
}

func TestNotificationDispatcher_StopsOnContextCancel(t *testing.T) {
	d := &countingDispatcher{err: errors.New("db down")}
	s := NewNotificationDispatcher(d, logger.Nop(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return d.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancel")
	}
}
