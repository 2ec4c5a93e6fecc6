package services

import (
	"context"
	"sync"
	"time"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: make(map[int64]models.Task)}
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Task
	for _, t := range r.tasks {
		if filter.TransactionID != nil && t.TransactionID != *filter.TransactionID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id int64, from, to models.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.Status != from {
		return repositories.ErrConflict
	}
	t.Status = to
	t.UpdatedAt = time.Now()
	r.tasks[id] = t
	return nil
}

type fakeTimelineRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []models.TimelineItem
}

func newFakeTimelineRepo() *fakeTimelineRepo {
	return &fakeTimelineRepo{nextID: 1}
}

func (r *fakeTimelineRepo) Store(_ context.Context, item *models.TimelineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = time.Now()
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeTimelineRepo) ListByTransaction(_ context.Context, transactionID int64) ([]models.TimelineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TimelineItem
	for _, it := range r.items {
		if it.TransactionID == transactionID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]models.User // по email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[string]models.User)}
}

func (r *fakeUserRepo) Store(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.Email] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := u
	return &out, nil
}
