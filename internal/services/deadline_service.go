package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

// Event/action names written by the sweep.
const (
	EventTaskOverdue        = "task.overdue"
	ActionTaskMarkedOverdue = "task.marked_overdue"
)

// DeadlineService runs the deadline sweep: find tasks whose due date has
// passed, flip them to overdue and record the transition in the event log
// and the audit trail. One cycle is one DB transaction.
type DeadlineService interface {
	CheckDeadlines(ctx context.Context) (*models.SweepSummary, error)
}

type deadlineService struct {
	store repositories.SweepStore
	now   func() time.Time
}

func NewDeadlineService(store repositories.SweepStore) DeadlineService {
	return &deadlineService{store: store, now: time.Now}
}

// NewDeadlineServiceWithClock lets tests pin the cycle timestamp.
func NewDeadlineServiceWithClock(store repositories.SweepStore, now func() time.Time) DeadlineService {
	return &deadlineService{store: store, now: now}
}

func (s *deadlineService) CheckDeadlines(ctx context.Context) (*models.SweepSummary, error) {
	// Одно чтение часов на весь цикл: предикат и payload'ы считаются
	// против одного и того же now.
	now := s.now().UTC()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sweep: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	candidates, err := tx.FindOverdueCandidates(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("find overdue candidates: %w", err)
	}
	if len(candidates) == 0 {
		log.Printf("[deadline][sweep] no newly overdue tasks")
		return &models.SweepSummary{CheckedAt: now, OverdueMarked: 0}, nil
	}

	marked := 0
	for _, c := range candidates {
		oldStatus := c.Task.Status

		if err := tx.MarkOverdue(ctx, c.Task.ID, oldStatus); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				// Строка ушла из выборки между чтением и записью
				// (например, задачу успели закрыть). Не ошибка.
				log.Printf("[deadline][sweep][skip] task=%d changed under us, skipping", c.Task.ID)
				continue
			}
			return nil, fmt.Errorf("mark task %d overdue: %w", c.Task.ID, err)
		}

		detail, err := json.Marshal(models.OverdueDetail{
			TaskID:          c.Task.ID,
			TaskTitle:       c.Task.Title,
			TransactionID:   c.Task.TransactionID,
			OldStatus:       oldStatus,
			NewStatus:       models.StatusOverdue,
			DueAt:           c.Task.DueAt,
			MarkedOverdueAt: now,
		})
		if err != nil {
			// Статус без парного лога — нарушение инварианта, откатываем весь цикл.
			return nil, fmt.Errorf("marshal overdue detail for task %d: %w", c.Task.ID, err)
		}

		entityID := c.Task.ID
		if err := tx.AppendEventLog(ctx, &models.EventLogEntry{
			TransactionID: c.Task.TransactionID,
			EventType:     EventTaskOverdue,
			EntityType:    "task",
			EntityID:      &entityID,
			Detail:        string(detail),
		}); err != nil {
			return nil, fmt.Errorf("append event log for task %d: %w", c.Task.ID, err)
		}

		if err := tx.AppendAuditEvent(ctx, &models.AuditEvent{
			OrgID:      c.OrgID,
			ActorID:    nil, // system-initiated
			Action:     ActionTaskMarkedOverdue,
			EntityType: "task",
			EntityID:   &entityID,
			Detail:     string(detail),
		}); err != nil {
			return nil, fmt.Errorf("append audit event for task %d: %w", c.Task.ID, err)
		}

		marked++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sweep: %w", err)
	}

	log.Printf("[deadline][sweep][ok] marked %d task(s) overdue", marked)
	return &models.SweepSummary{CheckedAt: now, OverdueMarked: marked}, nil
}
