package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reservation-service/internal/service"
)

// FilesHandler serves stored avatar images.
type FilesHandler struct {
	uploads *service.UploadService
}

// NewFilesHandler constructs handler.
func NewFilesHandler(uploadService *service.UploadService) *FilesHandler {
	return &FilesHandler{uploads: uploadService}
}

// GetAvatar GET /api/files/avatars/:filename.
func (h *FilesHandler) GetAvatar(c *fiber.Ctx) error {
	path, err := h.uploads.Resolve(c.Params("filename"))
	if err != nil {
		return err
	}
	return c.SendFile(path)
}
