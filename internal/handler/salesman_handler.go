package handler

import (
	"go-sales-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SalesmanHandler struct {
	service service.SalesmanService
	log     *zap.Logger
}

func NewSalesmanHandler(s service.SalesmanService, log *zap.Logger) *SalesmanHandler {
	return &SalesmanHandler{service: s, log: namedLogger(log, "salesman")}
}

func (h *SalesmanHandler) GetSalesmen(c *fiber.Ctx) error {
	salesmen, err := h.service.GetAllSalesmen()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"salesmen": salesmen})
}

func (h *SalesmanHandler) GetSalesman(c *fiber.Ctx) error {
	salesman, err := h.service.GetSalesmanByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"salesman": salesman})
}

func (h *SalesmanHandler) CreateSalesman(c *fiber.Ctx) error {
	var req service.SalesmanRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	salesman, err := h.service.CreateSalesman(&req, currentActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Salesman created", "id": salesman.ID})
}

func (h *SalesmanHandler) UpdateSalesman(c *fiber.Ctx) error {
	var req service.SalesmanRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	salesman, err := h.service.UpdateSalesman(c.Params("id"), &req, currentActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Salesman updated", "salesman": salesman})
}

func (h *SalesmanHandler) DeleteSalesman(c *fiber.Ctx) error {
	if err := h.service.DeleteSalesman(c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Salesman deleted"})
}
