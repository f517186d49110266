package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/infrastructure/storage"
)

// maxUploadSize tope para comprobantes de báscula: 5 MB.
const maxUploadSize = 5 << 20

// UploadHandler maneja la subida de comprobantes (imágenes).
type UploadHandler struct {
	store *storage.LocalStorage
}

// NewUploadHandler construye el handler de uploads.
func NewUploadHandler(store *storage.LocalStorage) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadImage godoc
// @Summary      Subir comprobante de báscula
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "imagen (máx 5 MB)"
// @Success      201    {object}  dto.UploadResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/data/upload-image [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo 'image' requerido"})
	}
	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la imagen excede el máximo de 5 MB"})
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "solo se aceptan imágenes"})
	}
	path, err := h.store.Save(file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{Path: path})
}
