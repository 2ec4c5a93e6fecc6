package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

type fakeTransactionService struct {
	txns map[int64]*models.Transaction
}

func (s *fakeTransactionService) Create(_ context.Context, txn *models.Transaction) (*models.Transaction, error) {
	txn.ID = int64(len(s.txns) + 1)
	s.txns[txn.ID] = txn
	return txn, nil
}

func (s *fakeTransactionService) GetByID(_ context.Context, id int64) (*models.Transaction, error) {
	txn, ok := s.txns[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *txn
	return &cp, nil
}

func (s *fakeTransactionService) ListForUser(context.Context, int64) ([]models.Transaction, error) {
	return nil, nil
}

func (s *fakeTransactionService) ListTasks(context.Context, int64) ([]models.Task, error) {
	return nil, nil
}

type fakeOrgService struct {
	members map[int64]map[int64]bool // userID -> orgID -> member
}

func (s *fakeOrgService) CreateOrg(context.Context, *models.Org, int64) error { return nil }
func (s *fakeOrgService) AddMember(context.Context, *models.Membership) error { return nil }

func (s *fakeOrgService) IsMember(_ context.Context, userID, orgID int64) (bool, error) {
	return s.members[userID][orgID], nil
}

func (s *fakeOrgService) IsAdmin(_ context.Context, userID, orgID int64) (bool, error) {
	return s.members[userID][orgID], nil
}

type fakeAuditService struct {
	events []models.AuditEvent
}

func (s *fakeAuditService) Append(context.Context, *models.AuditEvent) error { return nil }

func (s *fakeAuditService) ListForTransaction(context.Context, int64) ([]models.AuditEvent, error) {
	return s.events, nil
}

func (s *fakeAuditService) ListEvents(context.Context, int64) ([]models.EventLogEntry, error) {
	return nil, nil
}

type fakeTimelineService struct{}

func (s *fakeTimelineService) GenerateDefault(context.Context, int64) ([]models.Task, error) {
	return nil, nil
}

func (s *fakeTimelineService) ListItems(context.Context, int64) ([]models.TimelineItem, error) {
	return nil, nil
}

func newTxnRouter(userID int64, txns *fakeTransactionService, orgs *fakeOrgService, audit *fakeAuditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	h := NewTransactionHandler(txns, orgs, audit, &fakeTimelineService{})
	r.GET("/transactions/:id/audit", h.GetAudit)
	return r
}

func TestGetAudit_MemberSeesTrail(t *testing.T) {
	t.Parallel()

	txns := &fakeTransactionService{txns: map[int64]*models.Transaction{
		7: {ID: 7, OrgID: 2, Title: "Sale of 12 Oak St"},
	}}
	orgs := &fakeOrgService{members: map[int64]map[int64]bool{
		10: {2: true},
	}}
	taskID := int64(40)
	audit := &fakeAuditService{events: []models.AuditEvent{
		{ID: 1, OrgID: 2, Action: "task.marked_overdue", EntityType: "task", EntityID: &taskID},
	}}

	r := newTxnRouter(10, txns, orgs, audit)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions/7/audit", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got []models.AuditEvent
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response does not parse: %v", err)
	}
	if len(got) != 1 || got[0].Action != "task.marked_overdue" {
		t.Fatalf("unexpected trail: %+v", got)
	}
}

func TestGetAudit_NonMemberForbidden(t *testing.T) {
	t.Parallel()

	txns := &fakeTransactionService{txns: map[int64]*models.Transaction{
		7: {ID: 7, OrgID: 2},
	}}
	orgs := &fakeOrgService{members: map[int64]map[int64]bool{}}

	r := newTxnRouter(10, txns, orgs, &fakeAuditService{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions/7/audit", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetAudit_UnknownTransaction(t *testing.T) {
	t.Parallel()

	txns := &fakeTransactionService{txns: map[int64]*models.Transaction{}}
	orgs := &fakeOrgService{members: map[int64]map[int64]bool{}}

	r := newTxnRouter(10, txns, orgs, &fakeAuditService{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions/99/audit", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
