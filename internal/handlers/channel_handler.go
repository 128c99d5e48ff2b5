package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/dto"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/services"
)

type ChannelHandler struct {
	service *services.ChannelService
}

func NewChannelHandler(service *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{service: service}
}

func (h *ChannelHandler) List(c *fiber.Ctx) error {
	channels, err := h.service.ListChannels(
		c.Query("region"),
		c.Query("ratingColor"),
		c.Query("search"),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list channels",
		})
	}
	return c.JSON(channels)
}

func (h *ChannelHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid channel ID",
		})
	}

	detail, err := h.service.GetChannel(id)
	if err != nil {
		if errors.Is(err, services.ErrChannelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Channel not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load channel",
		})
	}
	return c.JSON(detail)
}

func (h *ChannelHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	channel, err := h.service.CreateChannel(&req)
	if err != nil {
		// Duplicate handle and field validation both surface as 400
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.CreatedResponse{ID: channel.ID.String(), Message: "Channel created successfully"})
}

func (h *ChannelHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid channel ID",
		})
	}

	var req dto.UpdateChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.service.UpdateChannel(id, &req); err != nil {
		if errors.Is(err, services.ErrChannelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Channel not found",
			})
		}
		if errors.Is(err, services.ErrHandleTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update channel",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Channel updated successfully"})
}

func (h *ChannelHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid channel ID",
		})
	}

	if err := h.service.DeleteChannel(id); err != nil {
		if errors.Is(err, services.ErrChannelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Channel not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete channel",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Channel deleted successfully"})
}

func (h *ChannelHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load stats",
		})
	}
	return c.JSON(stats)
}
