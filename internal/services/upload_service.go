package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
)

var allowedMIMETypes = map[string][]string{
	"image": {"image/jpeg", "image/png", "image/gif", "image/webp"},
	"pdf":   {"application/pdf"},
}

// UploadService stores uploaded files under a type-scoped directory and
// hands back the relative URL they are served from.
type UploadService struct {
	baseDir string
	maxSize int64
}

func NewUploadService(baseDir string, maxSize int64) *UploadService {
	return &UploadService{baseDir: baseDir, maxSize: maxSize}
}

// Save validates the file against the kind's MIME allow-list and size cap,
// writes it under <baseDir>/<kind>/ with a generated name and returns the
// URL path. The write is synchronous; the request blocks until the file is
// on disk.
func (s *UploadService) Save(file *multipart.FileHeader, kind string) (string, error) {
	allowed, ok := allowedMIMETypes[kind]
	if !ok {
		return "", ErrInvalidFileType
	}

	if file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !containsType(allowed, contentType) {
		return "", ErrInvalidFileType
	}

	dir := filepath.Join(s.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + kind + "/" + name, nil
}

func containsType(list []string, val string) bool {
	// Content-Type may carry parameters ("image/png; charset=binary").
	if i := strings.Index(val, ";"); i >= 0 {
		val = strings.TrimSpace(val[:i])
	}
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
