package handler

import (
	"go-sales-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LocationHandler struct {
	service service.LocationService
	log     *zap.Logger
}

func NewLocationHandler(s service.LocationService, log *zap.Logger) *LocationHandler {
	return &LocationHandler{service: s, log: namedLogger(log, "location")}
}

func (h *LocationHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.service.GetAllLocations()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"locations": locations})
}

func (h *LocationHandler) GetLocation(c *fiber.Ctx) error {
	location, err := h.service.GetLocationByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"location": location})
}

func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var req service.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	location, err := h.service.CreateLocation(&req, currentActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Location created", "id": location.ID})
}

func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	var req service.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	location, err := h.service.UpdateLocation(c.Params("id"), &req, currentActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Location updated", "location": location})
}

func (h *LocationHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.service.DeleteLocation(c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Location deleted"})
}
