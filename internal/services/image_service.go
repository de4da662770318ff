package services

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/jvintimilla/logia-api/internal/storage"
)

// ImageService handles member photo processing and storage
type ImageService struct {
	store *storage.LocalStorage
}

func NewImageService(store *storage.LocalStorage) *ImageService {
	return &ImageService{store: store}
}

// ProcessAndSavePhoto saves the original photo and a 128x128 thumbnail,
// returning both paths relative to the storage root.
func (s *ImageService) ProcessAndSavePhoto(file multipart.File, header *multipart.FileHeader) (photoPath, thumbPath string, err error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", "", fmt.Errorf("formato de imagen no soportado (solo JPG/PNG)")
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("error al decodificar imagen: %w", err)
	}

	// The decode consumed the stream; rewind to copy the original as-is
	if _, err := file.Seek(0, 0); err != nil {
		return "", "", fmt.Errorf("error al leer archivo: %w", err)
	}

	dir := s.store.GetFullPath(storage.DirPhotos)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("error al crear directorio: %w", err)
	}

	name := uuid.New().String()
	photoFile := filepath.Join(dir, name+ext)
	thumbFile := filepath.Join(dir, name+"_thumb"+ext)

	out, err := os.Create(photoFile)
	if err != nil {
		return "", "", fmt.Errorf("error al crear archivo: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(photoFile)
		return "", "", fmt.Errorf("error al guardar imagen original: %w", err)
	}

	// Fill keeps avatars square
	thumbImg := imaging.Fill(img, 128, 128, imaging.Center, imaging.Lanczos)

	outThumb, err := os.Create(thumbFile)
	if err != nil {
		return "", "", fmt.Errorf("error al crear thumbnail: %w", err)
	}
	defer outThumb.Close()

	if ext == ".png" {
		err = png.Encode(outThumb, thumbImg)
	} else {
		err = jpeg.Encode(outThumb, thumbImg, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", "", fmt.Errorf("error al guardar thumbnail: %w", err)
	}

	return filepath.Join(storage.DirPhotos, name+ext), filepath.Join(storage.DirPhotos, name+"_thumb"+ext), nil
}
