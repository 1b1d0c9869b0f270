package handler

import (
	"errors"

	"go-estimate-ws/internal/model"
	"go-estimate-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EstimateHandler struct {
	service service.EstimateService
}

func NewEstimateHandler(s service.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: s}
}

func (h *EstimateHandler) GetEstimate(c *fiber.Ctx) error {
	return c.JSON(h.service.Summary())
}

func (h *EstimateHandler) AddItem(c *fiber.Ctx) error {
	var req model.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_id is required"})
	}

	result, err := h.service.AddItem(req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	if result.Duplicate {
		return c.JSON(fiber.Map{
			"message":   "Product is already in the estimate",
			"duplicate": true,
			"item":      result.Item,
		})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item added to estimate", "item": result.Item})
}

func (h *EstimateHandler) UpdateItemHours(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var req model.UpdateHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, ok := h.service.UpdateItemHours(productID, req.Hours)
	if !ok {
		// The line may have been removed while the edit was in flight.
		return c.JSON(fiber.Map{"message": "Item no longer in estimate", "updated": false})
	}
	return c.JSON(fiber.Map{"message": "Hours updated", "updated": true, "item": item})
}

func (h *EstimateHandler) RemoveItem(c *fiber.Ctx) error {
	h.service.RemoveItem(c.Params("productId"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EstimateHandler) MergeSuggestions(c *fiber.Ctx) error {
	var req model.MergeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Products) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "products must not be empty"})
	}

	items := h.service.MergeSuggestions(req.Products)
	return c.Status(201).JSON(fiber.Map{
		"message": "Suggestions merged into estimate",
		"items":   items,
	})
}

func (h *EstimateHandler) Submit(c *fiber.Ctx) error {
	result, err := h.service.Submit(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrEmptyEstimate) {
			return c.Status(400).JSON(fiber.Map{"error": "Estimate is empty"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	// success=false is recoverable: the estimate is preserved for retry.
	return c.JSON(result)
}
