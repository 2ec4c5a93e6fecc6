// internal/handlers/task_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
	"tcontrol/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	txns    services.TransactionService
	orgs    services.OrgService
}

func NewTaskHandler(service services.TaskService, txns services.TransactionService, orgs services.OrgService) *TaskHandler {
	return &TaskHandler{service: service, txns: txns, orgs: orgs}
}

// requireTaskMember loads the task and checks the caller's membership in the
// org owning the task's transaction.
func (h *TaskHandler) requireTaskMember(c *gin.Context, tag string) *models.Task {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return nil
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("[task][%s][404] id=%d", tag, id)
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return nil
		}
		log.Printf("[task][%s][err] id=%d: %v", tag, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return nil
	}

	txn, err := h.txns.GetByID(c.Request.Context(), task.TransactionID)
	if err != nil {
		log.Printf("[task][%s][err] get transaction %d: %v", tag, task.TransactionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get transaction"})
		return nil
	}
	member, err := h.orgs.IsMember(c.Request.Context(), userID, txn.OrgID)
	if err != nil {
		log.Printf("[task][%s][err] membership check user=%d org=%d: %v", tag, userID, txn.OrgID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return nil
	}
	if !member {
		log.Printf("[task][%s][deny] user=%d org=%d", tag, userID, txn.OrgID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organisation"})
		return nil
	}
	return task
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}

	var req struct {
		TransactionID int64  `json:"transaction_id" binding:"required"`
		Title         string `json:"title" binding:"required"`
		Description   string `json:"description"`
		AssigneeID    *int64 `json:"assignee_id"`
		DueAt         string `json:"due_at"` // RFC3339
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.txns.GetByID(c.Request.Context(), req.TransactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		log.Printf("[task][create][err] get transaction %d: %v", req.TransactionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get transaction"})
		return
	}
	member, err := h.orgs.IsMember(c.Request.Context(), userID, txn.OrgID)
	if err != nil {
		log.Printf("[task][create][err] membership check user=%d org=%d: %v", userID, txn.OrgID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !member {
		log.Printf("[task][create][deny] user=%d org=%d", userID, txn.OrgID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organisation"})
		return
	}

	var due *time.Time
	if req.DueAt != "" {
		t, err := time.Parse(time.RFC3339, req.DueAt)
		if err != nil {
			log.Printf("[task][create][err] invalid due_at=%q: %v", req.DueAt, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_at (RFC3339)"})
			return
		}
		due = &t
	}

	task := &models.Task{
		TransactionID: req.TransactionID,
		Title:         req.Title,
		Description:   req.Description,
		AssigneeID:    req.AssigneeID,
		DueAt:         due,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	log.Printf("[task][create][ok] id=%d transaction=%d title=%q", created.ID, created.TransactionID, created.Title)
	c.JSON(http.StatusCreated, created)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	task := h.requireTaskMember(c, "get")
	if task == nil {
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /tasks/:id/status { "to": "in_progress" }
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	task := h.requireTaskMember(c, "status")
	if task == nil {
		return
	}

	var body struct {
		To models.TaskStatus `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("[task][status][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isAllowedTaskStatus(body.To) || !isTransitionAllowed(task.Status, body.To) {
		log.Printf("[task][status][deny] illegal transition from=%q to=%q", task.Status, body.To)
		c.JSON(http.StatusConflict, gin.H{"error": "illegal status transition"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), task.ID, task.Status, body.To)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			log.Printf("[task][status][conflict] id=%d from=%q", task.ID, task.Status)
			c.JSON(http.StatusConflict, gin.H{"error": "task changed concurrently, retry"})
			return
		}
		log.Printf("[task][status][err] save id=%d: %v", task.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", task.ID, body.To)
	c.JSON(http.StatusOK, updated)
}

// ---- helpers ----

// overdue не выставляется руками: этот переход делает только sweep.
func isAllowedTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.StatusTodo, models.StatusInProgress, models.StatusDone:
		return true
	}
	return false
}

func isTransitionAllowed(from, to models.TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.StatusTodo:
		return to == models.StatusInProgress || to == models.StatusDone
	case models.StatusInProgress:
		return to == models.StatusDone
	case models.StatusOverdue:
		// просроченную задачу можно взять в работу или закрыть
		return to == models.StatusInProgress || to == models.StatusDone
	case models.StatusDone:
		return false
	}
	return false
}
