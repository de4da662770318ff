package repository

import (
	"context"

	"github.com/jvintimilla/logia-api/internal/models"
	"gorm.io/gorm"
)

// ExtraordinaryRepository defines the interface for extraordinary fee
// assessments and their member payments
type ExtraordinaryRepository interface {
	FindFeeByID(ctx context.Context, id uint) (*models.ExtraordinaryFee, error)
	CreateFee(ctx context.Context, fee *models.ExtraordinaryFee) error
	UpdateFee(ctx context.Context, fee *models.ExtraordinaryFee) error
	ListFees(ctx context.Context, query *ListQuery) ([]models.ExtraordinaryFee, int64, error)
	FindAllFees(ctx context.Context) ([]models.ExtraordinaryFee, error)

	FindPaymentByID(ctx context.Context, id uint) (*models.ExtraordinaryPayment, error)
	FindPaymentsByFee(ctx context.Context, feeID uint) ([]models.ExtraordinaryPayment, error)
	FindPaymentsByFeeAndMember(ctx context.Context, feeID, memberID uint) ([]models.ExtraordinaryPayment, error)
	CreatePayment(ctx context.Context, payment *models.ExtraordinaryPayment) error
	FindAllPayments(ctx context.Context) ([]models.ExtraordinaryPayment, error)
}

type extraordinaryRepository struct {
	db *gorm.DB
}

// NewExtraordinaryRepository creates a new extraordinary repository
func NewExtraordinaryRepository(db *gorm.DB) ExtraordinaryRepository {
	return &extraordinaryRepository{db: db}
}

func (r *extraordinaryRepository) FindFeeByID(ctx context.Context, id uint) (*models.ExtraordinaryFee, error) {
	var fee models.ExtraordinaryFee
	err := r.db.WithContext(ctx).
		Preload("Payments").
		First(&fee, id).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

func (r *extraordinaryRepository) CreateFee(ctx context.Context, fee *models.ExtraordinaryFee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

func (r *extraordinaryRepository) UpdateFee(ctx context.Context, fee *models.ExtraordinaryFee) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

func (r *extraordinaryRepository) ListFees(ctx context.Context, query *ListQuery) ([]models.ExtraordinaryFee, int64, error) {
	var fees []models.ExtraordinaryFee
	var total int64

	db := r.db.WithContext(ctx).Model(&models.ExtraordinaryFee{})

	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&fees).Error
	return fees, total, err
}

func (r *extraordinaryRepository) FindAllFees(ctx context.Context) ([]models.ExtraordinaryFee, error) {
	var fees []models.ExtraordinaryFee
	err := r.db.WithContext(ctx).Find(&fees).Error
	return fees, err
}

func (r *extraordinaryRepository) FindPaymentByID(ctx context.Context, id uint) (*models.ExtraordinaryPayment, error) {
	var payment models.ExtraordinaryPayment
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Fee").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *extraordinaryRepository) FindPaymentsByFee(ctx context.Context, feeID uint) ([]models.ExtraordinaryPayment, error) {
	var payments []models.ExtraordinaryPayment
	err := r.db.WithContext(ctx).
		Where("fee_id = ?", feeID).
		Preload("Member").
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *extraordinaryRepository) FindPaymentsByFeeAndMember(ctx context.Context, feeID, memberID uint) ([]models.ExtraordinaryPayment, error) {
	var payments []models.ExtraordinaryPayment
	err := r.db.WithContext(ctx).
		Where("fee_id = ? AND member_id = ?", feeID, memberID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *extraordinaryRepository) CreatePayment(ctx context.Context, payment *models.ExtraordinaryPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *extraordinaryRepository) FindAllPayments(ctx context.Context) ([]models.ExtraordinaryPayment, error) {
	var payments []models.ExtraordinaryPayment
	err := r.db.WithContext(ctx).Find(&payments).Error
	return payments, err
}
