package handler

import (
	"errors"

	"go-estimate-ws/internal/model"
	"go-estimate-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.EstimateService
}

func NewCatalogHandler(s service.EstimateService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetCatalog(c *fiber.Ctx) error {
	products, err := h.service.Catalog()
	if err != nil {
		if errors.Is(err, service.ErrCatalogPending) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Catalog is still loading, try again shortly"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.CustomProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, item, err := h.service.CreateCustomProduct(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Product created and added to estimate",
		"product": product,
		"item":    item,
	})
}

func (h *CatalogHandler) UpdateDefaultHours(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.UpdateHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateDefaultHours(id, req.Hours)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Default hours updated", "data": product})
}
