package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/dto"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/services"
)

type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	return h.upload(c, "image")
}

func (h *UploadHandler) UploadPDF(c *fiber.Ctx) error {
	return h.upload(c, "pdf")
}

func (h *UploadHandler) upload(c *fiber.Ctx, kind string) error {
	file, err := c.FormFile(kind)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No " + kind + " uploaded",
		})
	}

	url, err := h.service.Save(file, kind)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) || errors.Is(err, services.ErrFileTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store file",
		})
	}

	return c.JSON(dto.UploadResponse{URL: url})
}
