package handlers

import (
	"testing"

	"tcontrol/internal/models"
)

func TestIsAllowedTaskStatus(t *testing.T) {
	t.Parallel()

	allowed := []models.TaskStatus{models.StatusTodo, models.StatusInProgress, models.StatusDone}
	for _, s := range allowed {
		if !isAllowedTaskStatus(s) {
			t.Errorf("status %q should be settable by hand", s)
		}
	}
	// overdue выставляет только sweep
	if isAllowedTaskStatus(models.StatusOverdue) {
		t.Error("overdue must not be settable by hand")
	}
	if isAllowedTaskStatus("banana") {
		t.Error("unknown status must be rejected")
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to models.TaskStatus
		want     bool
	}{
		{models.StatusTodo, models.StatusInProgress, true},
		{models.StatusTodo, models.StatusDone, true},
		{models.StatusInProgress, models.StatusDone, true},
		{models.StatusInProgress, models.StatusTodo, false},
		{models.StatusDone, models.StatusInProgress, false},
		{models.StatusDone, models.StatusTodo, false},
		{models.StatusOverdue, models.StatusInProgress, true},
		{models.StatusOverdue, models.StatusDone, true},
		{models.StatusOverdue, models.StatusTodo, false},
		{models.StatusTodo, models.StatusTodo, true}, // no-op переход
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("isTransitionAllowed(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
