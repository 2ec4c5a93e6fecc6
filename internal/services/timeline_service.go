package services

import (
	"context"
	"time"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

// templateTask is one entry of the default timeline: a title and a due-date
// offset in days from transaction creation.
type templateTask struct {
	Title      string
	OffsetDays int
}

var defaultTemplate = []templateTask{
	{"Review contract", 3},
	{"Order inspection", 7},
	{"Appraisal review", 14},
	{"Title search", 21},
	{"Final walkthrough", 28},
}

// TimelineService seeds a new transaction with its starter tasks and
// matching timeline items.
type TimelineService interface {
	GenerateDefault(ctx context.Context, transactionID int64) ([]models.Task, error)
	ListItems(ctx context.Context, transactionID int64) ([]models.TimelineItem, error)
}

type timelineService struct {
	tasks    repositories.TaskRepository
	timeline repositories.TimelineRepository
	now      func() time.Time
}

func NewTimelineService(tasks repositories.TaskRepository, timeline repositories.TimelineRepository) TimelineService {
	return &timelineService{tasks: tasks, timeline: timeline, now: time.Now}
}

func NewTimelineServiceWithClock(tasks repositories.TaskRepository, timeline repositories.TimelineRepository, now func() time.Time) TimelineService {
	return &timelineService{tasks: tasks, timeline: timeline, now: now}
}

func (s *timelineService) GenerateDefault(ctx context.Context, transactionID int64) ([]models.Task, error) {
	now := s.now().UTC()

	var created []models.Task
	for _, tpl := range defaultTemplate {
		due := now.Add(time.Duration(tpl.OffsetDays) * 24 * time.Hour)

		task := models.Task{
			TransactionID: transactionID,
			Title:         tpl.Title,
			Status:        models.StatusTodo,
			DueAt:         &due,
		}
		if err := s.tasks.Store(ctx, &task); err != nil {
			return created, err
		}
		created = append(created, task)

		item := models.TimelineItem{
			TransactionID: transactionID,
			Label:         tpl.Title,
			DueAt:         &due,
		}
		if err := s.timeline.Store(ctx, &item); err != nil {
			return created, err
		}
	}
	return created, nil
}

func (s *timelineService) ListItems(ctx context.Context, transactionID int64) ([]models.TimelineItem, error) {
	return s.timeline.ListByTransaction(ctx, transactionID)
}
