package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"tcontrol/internal/models"
)

type countingDeadlineService struct {
	calls atomic.Int64
	fired chan struct{}
	err   error
}

func (s *countingDeadlineService) CheckDeadlines(context.Context) (*models.SweepSummary, error) {
	s.calls.Add(1)
	select {
	case s.fired <- struct{}{}:
	default:
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.SweepSummary{CheckedAt: time.Now(), OverdueMarked: 0}, nil
}

func TestDeadlineScheduler_TicksAndStops(t *testing.T) {
	t.Parallel()

	svc := &countingDeadlineService{fired: make(chan struct{}, 1)}
	sched := NewDeadlineScheduler(svc, 5*time.Millisecond)
	sched.Start()

	// ждём минимум два тика
	for i := 0; i < 2; i++ {
		select {
		case <-svc.fired:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not tick in time")
		}
	}

	sched.Stop()
	after := svc.calls.Load()
	if after < 2 {
		t.Fatalf("expected at least 2 sweeps, got %d", after)
	}

	// после Stop новых запусков быть не должно
	time.Sleep(30 * time.Millisecond)
	if got := svc.calls.Load(); got != after {
		t.Fatalf("scheduler kept running after Stop: %d -> %d", after, got)
	}
}

func TestDeadlineScheduler_KeepsTickingAfterFailure(t *testing.T) {
	t.Parallel()

	svc := &countingDeadlineService{fired: make(chan struct{}, 1), err: errors.New("db down")}
	sched := NewDeadlineScheduler(svc, 5*time.Millisecond)
	sched.Start()
	defer sched.Stop()

	// упавший цикл не должен останавливать расписание
	for i := 0; i < 3; i++ {
		select {
		case <-svc.fired:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler stopped after a failed sweep")
		}
	}
}
