package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tcontrol/internal/models"
	"tcontrol/internal/services"
)

type OrgHandler struct {
	service services.OrgService
}

func NewOrgHandler(service services.OrgService) *OrgHandler {
	return &OrgHandler{service: service}
}

// POST /orgs
func (h *OrgHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[org][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org := &models.Org{Name: req.Name, Slug: req.Slug}
	if err := h.service.CreateOrg(c.Request.Context(), org, userID); err != nil {
		log.Printf("[org][create][err] slug=%q: %v", req.Slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create org"})
		return
	}
	log.Printf("[org][create][ok] id=%d slug=%q creator=%d", org.ID, org.Slug, userID)
	c.JSON(http.StatusCreated, org)
}

// POST /orgs/:id/members { "user_id": 2, "role": "member" }
func (h *OrgHandler) AddMember(c *gin.Context) {
	callerID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		UserID int64  `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// членов добавляет только админ этой организации
	admin, err := h.service.IsAdmin(c.Request.Context(), callerID, orgID)
	if err != nil {
		log.Printf("[org][add-member][err] admin check org=%d user=%d: %v", orgID, callerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
		return
	}
	if !admin {
		log.Printf("[org][add-member][deny] org=%d user=%d", orgID, callerID)
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	m := &models.Membership{OrgID: orgID, UserID: req.UserID, Role: req.Role}
	if err := h.service.AddMember(c.Request.Context(), m); err != nil {
		log.Printf("[org][add-member][err] org=%d user=%d by=%d: %v", orgID, req.UserID, callerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		return
	}
	log.Printf("[org][add-member][ok] org=%d user=%d role=%q", orgID, req.UserID, m.Role)
	c.JSON(http.StatusCreated, m)
}
