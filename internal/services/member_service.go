package services

import (
	"context"
	"mime/multipart"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
)

// MemberService handles lodge member management
type MemberService struct {
	repo     repository.MemberRepository
	imageSvc *ImageService
}

func NewMemberService(repo repository.MemberRepository, imageSvc *ImageService) *MemberService {
	return &MemberService{repo: repo, imageSvc: imageSvc}
}

func (s *MemberService) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return member, nil
}

func (s *MemberService) List(ctx context.Context, query *repository.ListQuery) ([]models.Member, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *MemberService) FindActive(ctx context.Context) ([]models.Member, error) {
	return s.repo.FindActive(ctx)
}

func (s *MemberService) Create(ctx context.Context, member *models.Member) error {
	return s.repo.Create(ctx, member)
}

func (s *MemberService) Update(ctx context.Context, member *models.Member) error {
	return s.repo.Update(ctx, member)
}

func (s *MemberService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// SetPhoto processes and stores a member profile photo plus its thumbnail
func (s *MemberService) SetPhoto(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	photoPath, thumbPath, err := s.imageSvc.ProcessAndSavePhoto(file, header)
	if err != nil {
		return nil, err
	}

	member.PhotoPath = &photoPath
	member.ThumbPath = &thumbPath
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ToggleStatus flips a member between activo and inactivo
func (s *MemberService) ToggleStatus(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if member.Status == models.MemberStatusActive {
		member.Status = models.MemberStatusInactive
	} else {
		member.Status = models.MemberStatusActive
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
