package services

import (
	"context"
	"log"
	"time"
)

// DeadlineScheduler triggers the sweep on a fixed interval. A failed cycle
// is only logged: the predicate is idempotent, so the next tick retries
// from scratch with no special handling.
type DeadlineScheduler struct {
	service  DeadlineService
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewDeadlineScheduler(service DeadlineService, interval time.Duration) *DeadlineScheduler {
	return &DeadlineScheduler{
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the ticker loop in its own goroutine.
func (s *DeadlineScheduler) Start() {
	log.Printf("[deadline][scheduler] started, interval=%s", s.interval)
	go s.run()
}

func (s *DeadlineScheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			summary, err := s.service.CheckDeadlines(context.Background())
			if err != nil {
				log.Printf("[deadline][scheduler][err] sweep failed: %v", err)
				continue
			}
			log.Printf("[deadline][scheduler][ok] checked_at=%s overdue_marked=%d",
				summary.CheckedAt.Format(time.RFC3339), summary.OverdueMarked)
		case <-s.stop:
			return
		}
	}
}

// Stop halts the loop and waits for the current tick to finish.
func (s *DeadlineScheduler) Stop() {
	close(s.stop)
	<-s.done
	log.Printf("[deadline][scheduler] stopped")
}
