package service

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/spec-kit/reservation-service/internal/config"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// AvatarUpload is an in-memory image submitted by a user.
type AvatarUpload struct {
	FileName string
	Data     []byte
}

// UploadService stores avatar images on local disk. All validation happens
// before any file I/O.
type UploadService struct {
	dir     string
	maxSize int64
}

// NewUploadService constructs the service.
func NewUploadService(cfg config.UploadConfig) *UploadService {
	maxSize := cfg.MaxSizeBytes
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &UploadService{dir: cfg.Dir, maxSize: maxSize}
}

// SaveAvatar validates the image and writes it as {userID}_{uuid}{ext}
// under the upload directory, returning the stored relative path. The
// content type is sniffed from the bytes, not taken from the client.
func (s *UploadService) SaveAvatar(userID int64, upload AvatarUpload) (string, error) {
	if len(upload.Data) == 0 {
		return "", apperrors.NewValidationError("no file provided", nil)
	}
	if int64(len(upload.Data)) > s.maxSize {
		return "", apperrors.NewValidationError("file too large", map[string]any{
			"max_bytes": s.maxSize,
		})
	}

	// The stored extension always follows the sniffed type; the client's
	// filename is not trusted for anything.
	contentType := http.DetectContentType(upload.Data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", apperrors.NewValidationError("unsupported file type", map[string]any{
			"content_type": contentType,
		})
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s%s", userID, uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, upload.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes a previously stored file. Missing files are not an error.
func (s *UploadService) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Resolve maps a bare filename to a path inside the upload directory,
// rejecting traversal attempts.
func (s *UploadService) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", apperrors.NewValidationError("invalid filename", nil)
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFound("file", map[string]any{"filename": filename})
		}
		return "", err
	}
	return path, nil
}
