package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ai-interviewer/internal/models"
)

// StorageService holds uploaded resumes just long enough for the PDF parser
// to read them by path. Files are request-scoped: the handler removes them
// once the text is extracted.
type StorageService interface {
	SaveResume(file *multipart.FileHeader) (string, error)
	Remove(filePath string)
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveResume writes the uploaded file to the scratch directory under a unique
// name and returns its path. Only .pdf uploads are accepted.
func (s *storageService) SaveResume(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", fmt.Errorf("%w: unexpected file extension %q", models.ErrInvalidDocument, ext)
	}

	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("resume_%s%s", uuid.New().String(), ext))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

// Remove deletes a scratch file. Failure only costs disk space, so it is
// logged rather than propagated.
func (s *storageService) Remove(filePath string) {
	if err := os.Remove(filePath); err != nil {
		log.Printf("⚠️  Failed to remove scratch file %s: %v", filePath, err)
	}
}
