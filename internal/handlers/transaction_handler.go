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

type TransactionHandler struct {
	service  services.TransactionService
	orgs     services.OrgService
	audit    services.AuditService
	timeline services.TimelineService
}

func NewTransactionHandler(service services.TransactionService, orgs services.OrgService, audit services.AuditService, timeline services.TimelineService) *TransactionHandler {
	return &TransactionHandler{service: service, orgs: orgs, audit: audit, timeline: timeline}
}

// requireMember loads the transaction and checks the caller's membership in
// its org. Writes the error response itself and returns nil on failure.
func (h *TransactionHandler) requireMember(c *gin.Context, tag string) *models.Transaction {
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

	txn, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("[txn][%s][404] id=%d", tag, id)
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return nil
		}
		log.Printf("[txn][%s][err] id=%d: %v", tag, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get transaction"})
		return nil
	}

	member, err := h.orgs.IsMember(c.Request.Context(), userID, txn.OrgID)
	if err != nil {
		log.Printf("[txn][%s][err] membership check user=%d org=%d: %v", tag, userID, txn.OrgID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return nil
	}
	if !member {
		log.Printf("[txn][%s][deny] user=%d org=%d", tag, userID, txn.OrgID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organisation"})
		return nil
	}
	return txn
}

// @Summary      Создать сделку
// @Tags         Transactions
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Transaction
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}

	var req struct {
		OrgID           int64  `json:"org_id" binding:"required"`
		Title           string `json:"title" binding:"required"`
		Description     string `json:"description"`
		PropertyAddress string `json:"property_address"`
		CloseDate       string `json:"close_date"` // YYYY-MM-DD
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[txn][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.orgs.IsMember(c.Request.Context(), userID, req.OrgID)
	if err != nil {
		log.Printf("[txn][create][err] membership check user=%d org=%d: %v", userID, req.OrgID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !member {
		log.Printf("[txn][create][deny] user=%d org=%d", userID, req.OrgID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this organisation"})
		return
	}

	var closeDate *time.Time
	if req.CloseDate != "" {
		t, err := time.Parse("2006-01-02", req.CloseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid close_date (YYYY-MM-DD)"})
			return
		}
		closeDate = &t
	}

	txn := &models.Transaction{
		OrgID:           req.OrgID,
		Title:           req.Title,
		Description:     req.Description,
		PropertyAddress: req.PropertyAddress,
		CloseDate:       closeDate,
	}
	created, err := h.service.Create(c.Request.Context(), txn)
	if err != nil {
		log.Printf("[txn][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create transaction"})
		return
	}

	entityID := created.ID
	if err := h.audit.Append(c.Request.Context(), &models.AuditEvent{
		OrgID:      created.OrgID,
		ActorID:    &userID,
		Action:     "transaction.created",
		EntityType: "transaction",
		EntityID:   &entityID,
	}); err != nil {
		// сделка уже создана, аудит не роняет ответ
		log.Printf("[txn][create][audit][err] id=%d: %v", created.ID, err)
	}

	log.Printf("[txn][create][ok] id=%d org=%d title=%q", created.ID, created.OrgID, created.Title)
	c.JSON(http.StatusCreated, created)
}

// GET /transactions/:id
func (h *TransactionHandler) GetByID(c *gin.Context) {
	txn := h.requireMember(c, "get")
	if txn == nil {
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), txn.ID)
	if err != nil {
		log.Printf("[txn][get][err] list tasks id=%d: %v", txn.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get tasks"})
		return
	}
	txn.Tasks = tasks
	c.JSON(http.StatusOK, txn)
}

// GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}

	txns, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[txn][list][err] user=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txns)
}

// GET /transactions/:id/tasks
func (h *TransactionHandler) GetTasks(c *gin.Context) {
	txn := h.requireMember(c, "tasks")
	if txn == nil {
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), txn.ID)
	if err != nil {
		log.Printf("[txn][tasks][err] id=%d: %v", txn.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get tasks"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Аудит-трейл сделки и её задач
// @Tags         Transactions
// @Produce      json
// @Success      200  {array}  models.AuditEvent
// @Router       /transactions/{id}/audit [get]
func (h *TransactionHandler) GetAudit(c *gin.Context) {
	txn := h.requireMember(c, "audit")
	if txn == nil {
		return
	}

	events, err := h.audit.ListForTransaction(c.Request.Context(), txn.ID)
	if err != nil {
		log.Printf("[txn][audit][err] id=%d: %v", txn.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get audit trail"})
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	c.JSON(http.StatusOK, events)
}

// GET /transactions/:id/timeline
func (h *TransactionHandler) GetTimeline(c *gin.Context) {
	txn := h.requireMember(c, "timeline")
	if txn == nil {
		return
	}

	items, err := h.timeline.ListItems(c.Request.Context(), txn.ID)
	if err != nil {
		log.Printf("[txn][timeline][err] id=%d: %v", txn.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get timeline"})
		return
	}
	if items == nil {
		items = []models.TimelineItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GET /transactions/:id/events
func (h *TransactionHandler) GetEvents(c *gin.Context) {
	txn := h.requireMember(c, "events")
	if txn == nil {
		return
	}

	entries, err := h.audit.ListEvents(c.Request.Context(), txn.ID)
	if err != nil {
		log.Printf("[txn][events][err] id=%d: %v", txn.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get event log"})
		return
	}
	if entries == nil {
		entries = []models.EventLogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
