package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/storage"
)

// SettingService manages the single lodge configuration row. Logo and
// signature images are stored on local disk; their paths feed the receipt
// engine's image loader.
type SettingService struct {
	repo     repository.SettingRepository
	store    *storage.LocalStorage
	defaults *models.Setting
}

func NewSettingService(repo repository.SettingRepository, store *storage.LocalStorage, defaults *models.Setting) *SettingService {
	return &SettingService{repo: repo, store: store, defaults: defaults}
}

func (s *SettingService) Get(ctx context.Context) (*models.Setting, error) {
	return s.repo.Get(ctx, s.defaults)
}

func (s *SettingService) Update(ctx context.Context, input *models.Setting) (*models.Setting, error) {
	if input.MonthlyFeeBase <= 0 {
		return nil, ErrInvalidAmount
	}

	settings, err := s.repo.Get(ctx, s.defaults)
	if err != nil {
		return nil, err
	}

	settings.InstitutionName = input.InstitutionName
	settings.MonthlyFeeBase = input.MonthlyFeeBase
	settings.LogoURL = input.LogoURL
	settings.TreasurerName = input.TreasurerName
	settings.TreasurerTitle = input.TreasurerTitle
	settings.TreasurerSignatureURL = input.TreasurerSignatureURL
	settings.VenerableName = input.VenerableName
	settings.VenerableTitle = input.VenerableTitle
	settings.VenerableSignatureURL = input.VenerableSignatureURL

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Branding image kinds accepted by UploadImage
const (
	BrandingLogo               = "logo"
	BrandingTreasurerSignature = "treasurer_signature"
	BrandingVenerableSignature = "venerable_signature"
)

// UploadImage stores a branding image and points the matching settings field
// at its local path. The previous file is removed when it lived in storage.
func (s *SettingService) UploadImage(ctx context.Context, kind string, file multipart.File, header *multipart.FileHeader) (*models.Setting, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return nil, ErrInvalidImage
	}

	settings, err := s.repo.Get(ctx, s.defaults)
	if err != nil {
		return nil, err
	}

	relPath, err := s.store.Upload(file, header, storage.DirPhotos)
	if err != nil {
		return nil, err
	}
	fullPath := s.store.GetFullPath(relPath)

	var previous *string
	switch kind {
	case BrandingLogo:
		previous = settings.LogoURL
		settings.LogoURL = &fullPath
	case BrandingTreasurerSignature:
		previous = settings.TreasurerSignatureURL
		settings.TreasurerSignatureURL = &fullPath
	case BrandingVenerableSignature:
		previous = settings.VenerableSignatureURL
		settings.VenerableSignatureURL = &fullPath
	default:
		_ = s.store.Delete(relPath)
		return nil, ErrInvalidImage
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		_ = s.store.Delete(relPath)
		return nil, err
	}

	if previous != nil {
		if rel, ok := s.relativeToStore(*previous); ok {
			_ = s.store.Delete(rel)
		}
	}

	return settings, nil
}

// relativeToStore reports whether path points inside the storage root and
// returns it relative to that root
func (s *SettingService) relativeToStore(path string) (string, bool) {
	root := s.store.GetFullPath("")
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return rel, true
}
