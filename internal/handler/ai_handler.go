package handler

import (
	"errors"

	"go-estimate-ws/internal/model"
	"go-estimate-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AIHandler struct {
	service service.EstimateService
}

func NewAIHandler(s service.EstimateService) *AIHandler {
	return &AIHandler{service: s}
}

// Suggest turns a free-form client brief into catalog suggestions. The
// suggestions are returned for review; POST /estimate/merge accepts them.
func (h *AIHandler) Suggest(c *fiber.Ctx) error {
	var req model.BriefRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	suggestions, err := h.service.SuggestFromBrief(c.Context(), req.Brief)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBrief) {
			return c.Status(400).JSON(fiber.Map{"error": "Client brief cannot be empty"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to generate estimate from AI. Please try again later."})
	}

	return c.JSON(fiber.Map{"products": suggestions})
}
