package services

import (
	"context"
	"mime/multipart"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/storage"
)

// ExpenseService manages lodge expenses and their voucher documents
type ExpenseService struct {
	repo  repository.ExpenseRepository
	store *storage.LocalStorage
}

func NewExpenseService(repo repository.ExpenseRepository, store *storage.LocalStorage) *ExpenseService {
	return &ExpenseService{repo: repo, store: store}
}

func (s *ExpenseService) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, query *repository.ListQuery) ([]models.Expense, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense) error {
	if expense.Amount <= 0 {
		return ErrInvalidAmount
	}
	return s.repo.Create(ctx, expense)
}

func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense) error {
	if expense.Amount <= 0 {
		return ErrInvalidAmount
	}
	return s.repo.Update(ctx, expense)
}

func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if expense.VoucherPath != nil && *expense.VoucherPath != "" {
		s.store.Delete(*expense.VoucherPath)
	}
	return s.repo.Delete(ctx, id)
}

// AttachVoucher stores the uploaded voucher (invoice/receipt scan) for an
// expense
func (s *ExpenseService) AttachVoucher(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	path, err := s.store.Upload(file, header, storage.DirVouchers)
	if err != nil {
		return nil, err
	}

	// Replace any previous voucher
	if expense.VoucherPath != nil && *expense.VoucherPath != "" {
		s.store.Delete(*expense.VoucherPath)
	}

	expense.VoucherPath = &path
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// VoucherPath returns the absolute path of the stored voucher file
func (s *ExpenseService) VoucherPath(ctx context.Context, id uint) (string, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrNotFound
	}
	if expense.VoucherPath == nil || *expense.VoucherPath == "" {
		return "", ErrNotFound
	}
	return s.store.GetFullPath(*expense.VoucherPath), nil
}
