package services

import (
	"context"
	"testing"
	"time"

	"tcontrol/internal/models"
)

func TestGenerateDefault_SeedsTemplateTasksAndItems(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tasks := newFakeTaskRepo()
	timeline := newFakeTimelineRepo()
	svc := NewTimelineServiceWithClock(tasks, timeline, fixedClock(now))

	created, err := svc.GenerateDefault(context.Background(), 42)
	if err != nil {
		t.Fatalf("GenerateDefault failed: %v", err)
	}

	if len(created) != 5 {
		t.Fatalf("expected 5 starter tasks, got %d", len(created))
	}

	wantOffsets := map[string]int{
		"Review contract":   3,
		"Order inspection":  7,
		"Appraisal review":  14,
		"Title search":      21,
		"Final walkthrough": 28,
	}
	for _, task := range created {
		if task.TransactionID != 42 {
			t.Fatalf("task %q bound to transaction %d, want 42", task.Title, task.TransactionID)
		}
		if task.Status != models.StatusTodo {
			t.Fatalf("task %q created with status %q, want todo", task.Title, task.Status)
		}
		offset, ok := wantOffsets[task.Title]
		if !ok {
			t.Fatalf("unexpected task title %q", task.Title)
		}
		wantDue := now.Add(time.Duration(offset) * 24 * time.Hour)
		if task.DueAt == nil || !task.DueAt.Equal(wantDue) {
			t.Fatalf("task %q due %v, want %s", task.Title, task.DueAt, wantDue)
		}
		delete(wantOffsets, task.Title)
	}

	items, err := svc.ListItems(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 timeline items, got %d", len(items))
	}
	for i, item := range items {
		if item.Label != created[i].Title {
			t.Fatalf("item %d label %q, want %q", i, item.Label, created[i].Title)
		}
		if item.DueAt == nil || !item.DueAt.Equal(*created[i].DueAt) {
			t.Fatalf("item %q due %v, want %v", item.Label, item.DueAt, created[i].DueAt)
		}
	}
}
