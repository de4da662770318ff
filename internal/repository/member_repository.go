package repository

import (
	"context"

	"github.com/jvintimilla/logia-api/internal/models"
	"gorm.io/gorm"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Member, int64, error)
	FindActive(ctx context.Context) ([]models.Member, error)
	FindAll(ctx context.Context) ([]models.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Member{}, id).Error
}

func (r *memberRepository) List(ctx context.Context, query *ListQuery) ([]models.Member, int64, error) {
	var members []models.Member
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Member{})

	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if degree := query.Filters["degree"]; degree != "" {
		db = db.Where("degree = ?", degree)
	}
	if term := query.Filters["search_term"]; term != "" {
		db = db.Where("full_name ILIKE ?", "%"+term+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "full_name"
	if query.SortBy != "" {
		sortBy = query.SortBy
	}
	dir := "asc"
	if query.SortDir == "desc" {
		dir = "desc"
	}

	err := db.Order(sortBy + " " + dir).
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&members).Error
	return members, total, err
}

func (r *memberRepository) FindActive(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.db.WithContext(ctx).
		Where("status = ?", models.MemberStatusActive).
		Order("full_name ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepository) FindAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&members).Error
	return members, err
}
