package services

import (
	"context"
	"log"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

type TransactionService interface {
	Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Transaction, error)
	ListTasks(ctx context.Context, transactionID int64) ([]models.Task, error)
}

type transactionService struct {
	repo        repositories.TransactionRepository
	tasks       repositories.TaskRepository
	memberships repositories.MembershipRepository
	timeline    TimelineService
}

func NewTransactionService(
	repo repositories.TransactionRepository,
	tasks repositories.TaskRepository,
	memberships repositories.MembershipRepository,
	timeline TimelineService,
) TransactionService {
	return &transactionService{repo: repo, tasks: tasks, memberships: memberships, timeline: timeline}
}

func (s *transactionService) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.Status == "" {
		txn.Status = models.TxnDraft
	}
	if err := s.repo.Store(ctx, txn); err != nil {
		return nil, err
	}

	// Стартовые задачи сеются в фоне, как отложенная джоба: ответ клиенту
	// не ждёт генерации таймлайна.
	txnID := txn.ID
	go func() {
		tasks, err := s.timeline.GenerateDefault(context.Background(), txnID)
		if err != nil {
			log.Printf("[txn][timeline][err] seed transaction=%d: %v", txnID, err)
			return
		}
		log.Printf("[txn][timeline][ok] transaction=%d tasks_created=%d", txnID, len(tasks))
	}()

	return txn, nil
}

func (s *transactionService) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *transactionService) ListForUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	orgIDs, err := s.memberships.ListOrgIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orgIDs) == 0 {
		return nil, nil
	}
	return s.repo.ListByOrgIDs(ctx, orgIDs)
}

func (s *transactionService) ListTasks(ctx context.Context, transactionID int64) ([]models.Task, error) {
	return s.tasks.FindAll(ctx, models.TaskFilter{TransactionID: &transactionID})
}
