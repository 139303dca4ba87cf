package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService keeps uploaded files on local disk, one directory per
// owner.
type StorageService interface {
	EnsureUploadDir() error
	SaveFile(file *multipart.FileHeader, ownerID uuid.UUID, fileType string) (string, error)
	ReadFile(path string) ([]byte, error)
	DeleteFile(path string) error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stores a PDF upload and returns the path it was written to.
func (s *storageService) SaveFile(file *multipart.FileHeader, ownerID uuid.UUID, fileType string) (string, error) {
	const op = "save_file"

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", ValidationError(op, "Invalid file type. Only PDF is allowed.")
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", ValidationError(op, fmt.Sprintf("File too large. Maximum size is %d bytes.", s.maxFileSize))
	}

	dir := filepath.Join(s.uploadPath, ownerID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	filePath := filepath.Join(dir, fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// DeleteFile removes a stored file. A file that is already gone is not an
// error.
func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
