package repository

import (
	"context"

	"github.com/jvintimilla/logia-api/internal/models"
	"gorm.io/gorm"
)

// DegreeFeeRepository defines the interface for degree fee data access
type DegreeFeeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.DegreeFee, error)
	Create(ctx context.Context, fee *models.DegreeFee) error
	Update(ctx context.Context, fee *models.DegreeFee) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.DegreeFee, int64, error)
	FindByMember(ctx context.Context, memberID uint) ([]models.DegreeFee, error)
	SumAmounts(ctx context.Context) (float64, error)
}

type degreeFeeRepository struct {
	db *gorm.DB
}

// NewDegreeFeeRepository creates a new degree fee repository
func NewDegreeFeeRepository(db *gorm.DB) DegreeFeeRepository {
	return &degreeFeeRepository{db: db}
}

func (r *degreeFeeRepository) FindByID(ctx context.Context, id uint) (*models.DegreeFee, error) {
	var fee models.DegreeFee
	err := r.db.WithContext(ctx).
		Preload("Member").
		First(&fee, id).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

func (r *degreeFeeRepository) Create(ctx context.Context, fee *models.DegreeFee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

func (r *degreeFeeRepository) Update(ctx context.Context, fee *models.DegreeFee) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

func (r *degreeFeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DegreeFee{}, id).Error
}

func (r *degreeFeeRepository) List(ctx context.Context, query *ListQuery) ([]models.DegreeFee, int64, error) {
	var fees []models.DegreeFee
	var total int64

	db := r.db.WithContext(ctx).Model(&models.DegreeFee{})

	if degree := query.Filters["degree"]; degree != "" {
		db = db.Where("degree = ?", degree)
	}
	if memberID := query.Filters["member_id"]; memberID != "" {
		db = db.Where("member_id = ?", memberID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Member").
		Order("created_at DESC").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&fees).Error
	return fees, total, err
}

func (r *degreeFeeRepository) FindByMember(ctx context.Context, memberID uint) ([]models.DegreeFee, error) {
	var fees []models.DegreeFee
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&fees).Error
	return fees, err
}

// SumAmounts returns the total income from degree fees
func (r *degreeFeeRepository) SumAmounts(ctx context.Context) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.DegreeFee{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&result).Error
	return result.Total, err
}
