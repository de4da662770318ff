package services

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jvintimilla/logia-api/internal/storage"
	"github.com/jvintimilla/logia-api/pkg/logger"
)

// Logo bundled with the binary, used when the lodge has not uploaded one.
//
//go:embed assets/logo_institucional.png
var defaultLogoPNG []byte

// maxImageBytes caps downloads for receipt rendering
const maxImageBytes = 5 * 1024 * 1024

// LoadedImage is a decoded-and-validated image ready to place on a PDF
type LoadedImage struct {
	Data   []byte
	Format string // "PNG" or "JPG", as gofpdf expects
	Width  int
	Height int
}

// ImageLoader resolves logo and signature images for PDF rendering. Sources
// can be HTTP(S) URLs, data URIs, or paths relative to local storage.
type ImageLoader struct {
	store  *storage.LocalStorage
	client *http.Client
}

func NewImageLoader(store *storage.LocalStorage) *ImageLoader {
	return &ImageLoader{
		store: store,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchImage resolves an image source into bytes plus pixel dimensions. It
// never returns an error: any failure is logged and reported as nil so the
// caller leaves the slot blank on the document.
func (l *ImageLoader) FetchImage(ctx context.Context, source string) *LoadedImage {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil
	}

	var data []byte
	var err error
	switch {
	case strings.HasPrefix(source, "data:"):
		data, err = decodeDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, err = l.fetchRemote(ctx, source)
	default:
		data, err = l.readLocal(source)
	}

	if err != nil {
		logger.Warn(fmt.Sprintf("[ImageLoader] Could not load image %q: %v", source, err))
		return nil
	}

	img, err := decodeImage(data)
	if err != nil {
		logger.Warn(fmt.Sprintf("[ImageLoader] Unsupported image %q: %v", source, err))
		return nil
	}
	return img
}

// DefaultLogo returns the embedded fallback logo, or nil if the embedded
// asset itself cannot be decoded.
func (l *ImageLoader) DefaultLogo() *LoadedImage {
	img, err := decodeImage(defaultLogoPNG)
	if err != nil {
		logger.Error(fmt.Sprintf("[ImageLoader] Embedded logo is invalid: %v", err))
		return nil
	}
	return img
}

func (l *ImageLoader) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}

func (l *ImageLoader) readLocal(path string) ([]byte, error) {
	if l.store != nil && l.store.Exists(path) {
		return os.ReadFile(l.store.GetFullPath(path))
	}
	return os.ReadFile(path)
}

func decodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	if !strings.Contains(uri[:idx], ";base64") {
		return nil, fmt.Errorf("only base64 data URIs are supported")
	}
	return base64.StdEncoding.DecodeString(uri[idx+1:])
}

// decodeImage validates the bytes and extracts pixel dimensions for the
// formats gofpdf can register
func decodeImage(data []byte) (*LoadedImage, error) {
	cfg, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var format string
	switch kind {
	case "png":
		format = "PNG"
	case "jpeg":
		format = "JPG"
	default:
		return nil, fmt.Errorf("expected PNG or JPEG, got %s", kind)
	}

	return &LoadedImage{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
