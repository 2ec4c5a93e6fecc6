// internal/services/task_service.go
package services

import (
	"context"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

// TaskService covers manual task management. The overdue transition is not
// reachable from here: it belongs to the deadline sweep alone.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.TaskStatus) (*models.Task, error)
}

type taskService struct {
	repo repositories.TaskRepository
}

func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) UpdateStatus(ctx context.Context, id int64, from, to models.TaskStatus) (*models.Task, error) {
	// (валидацию переходов делает handler; сервис пишет условно)
	if err := s.repo.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
