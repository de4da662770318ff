package repository

import (
	"context"

	"github.com/jvintimilla/logia-api/internal/models"
	"gorm.io/gorm"
)

// MonthlyPaymentRepository defines the interface for monthly dues data access
type MonthlyPaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.MonthlyPayment, error)
	FindByMemberAndPeriod(ctx context.Context, memberID uint, month, year int) (*models.MonthlyPayment, error)
	FindByMember(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error)
	Create(ctx context.Context, payment *models.MonthlyPayment) error
	Update(ctx context.Context, payment *models.MonthlyPayment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.MonthlyPayment, int64, error)
	FindAll(ctx context.Context) ([]models.MonthlyPayment, error)
}

type monthlyPaymentRepository struct {
	db *gorm.DB
}

// NewMonthlyPaymentRepository creates a new monthly payment repository
func NewMonthlyPaymentRepository(db *gorm.DB) MonthlyPaymentRepository {
	return &monthlyPaymentRepository{db: db}
}

func (r *monthlyPaymentRepository) FindByID(ctx context.Context, id uint) (*models.MonthlyPayment, error) {
	var payment models.MonthlyPayment
	err := r.db.WithContext(ctx).
		Preload("Member").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *monthlyPaymentRepository) FindByMemberAndPeriod(ctx context.Context, memberID uint, month, year int) (*models.MonthlyPayment, error) {
	var payment models.MonthlyPayment
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND month = ? AND year = ?", memberID, month, year).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *monthlyPaymentRepository) FindByMember(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error) {
	var payments []models.MonthlyPayment
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("year ASC, month ASC").
		Find(&payments).Error
	return payments, err
}

func (r *monthlyPaymentRepository) Create(ctx context.Context, payment *models.MonthlyPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *monthlyPaymentRepository) Update(ctx context.Context, payment *models.MonthlyPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *monthlyPaymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MonthlyPayment{}, id).Error
}

func (r *monthlyPaymentRepository) List(ctx context.Context, query *ListQuery) ([]models.MonthlyPayment, int64, error) {
	var payments []models.MonthlyPayment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.MonthlyPayment{})

	if month := query.Filters["month"]; month != "" {
		db = db.Where("month = ?", month)
	}
	if year := query.Filters["year"]; year != "" {
		db = db.Where("year = ?", year)
	}
	if memberID := query.Filters["member_id"]; memberID != "" {
		db = db.Where("member_id = ?", memberID)
	}
	if term := query.Filters["search_term"]; term != "" {
		db = db.Joins("JOIN members ON members.id = monthly_payments.member_id").
			Where("members.full_name ILIKE ?", "%"+term+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Member").
		Order("year DESC, month DESC, created_at DESC").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&payments).Error
	return payments, total, err
}

func (r *monthlyPaymentRepository) FindAll(ctx context.Context) ([]models.MonthlyPayment, error) {
	var payments []models.MonthlyPayment
	err := r.db.WithContext(ctx).Find(&payments).Error
	return payments, err
}
