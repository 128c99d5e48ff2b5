package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/dto"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/services"
)

// TabHandler covers tabs and their polymorphic content (owner records and
// overview blocks).
type TabHandler struct {
	service *services.ChannelService
}

func NewTabHandler(service *services.ChannelService) *TabHandler {
	return &TabHandler{service: service}
}

func (h *TabHandler) AddTab(c *fiber.Ctx) error {
	channelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid channel ID",
		})
	}

	var req dto.NewTabRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	tab, err := h.service.AddTab(channelID, &req)
	if err != nil {
		if errors.Is(err, services.ErrChannelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Channel not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.CreatedResponse{ID: tab.ID.String(), Message: "Tab created successfully"})
}

func (h *TabHandler) UpdateTab(c *fiber.Ctx) error {
	tabID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tab ID",
		})
	}

	var req dto.UpdateTabRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.service.UpdateTab(tabID, &req); err != nil {
		if errors.Is(err, services.ErrTabNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tab not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update tab",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Tab updated successfully"})
}

func (h *TabHandler) DeleteTab(c *fiber.Ctx) error {
	tabID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tab ID",
		})
	}

	if err := h.service.DeleteTab(tabID); err != nil {
		if errors.Is(err, services.ErrTabNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tab not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete tab",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Tab deleted successfully"})
}

func (h *TabHandler) UpsertOwnerContent(c *fiber.Ctx) error {
	tabID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tab ID",
		})
	}

	var req dto.OwnerContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if _, err := h.service.UpsertOwnerContent(tabID, &req); err != nil {
		if errors.Is(err, services.ErrTabNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tab not found",
			})
		}
		if errors.Is(err, services.ErrTemplateMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save content",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Content saved successfully"})
}

func (h *TabHandler) AddBlock(c *fiber.Ctx) error {
	tabID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tab ID",
		})
	}

	var req dto.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	block, err := h.service.AddBlock(tabID, &req)
	if err != nil {
		if errors.Is(err, services.ErrTabNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tab not found",
			})
		}
		if errors.Is(err, services.ErrTemplateMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create block",
		})
	}

	return c.JSON(dto.CreatedResponse{ID: block.ID.String(), Message: "Block created successfully"})
}

func (h *TabHandler) UpdateBlock(c *fiber.Ctx) error {
	blockID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid block ID",
		})
	}

	var req dto.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.service.UpdateBlock(blockID, &req); err != nil {
		if errors.Is(err, services.ErrBlockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Block not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update block",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Block updated successfully"})
}

func (h *TabHandler) DeleteBlock(c *fiber.Ctx) error {
	blockID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid block ID",
		})
	}

	if err := h.service.DeleteBlock(blockID); err != nil {
		if errors.Is(err, services.ErrBlockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Block not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete block",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Block deleted successfully"})
}
