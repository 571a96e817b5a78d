package handler

import (
	"go-sales-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service service.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(s service.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{service: s, log: namedLogger(log, "customer")}
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"customers": customers})
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.service.GetCustomerByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"customer": customer})
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	customer, err := h.service.CreateCustomer(&req, currentActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "id": customer.ID})
}

func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	customer, err := h.service.UpdateCustomer(c.Params("id"), &req, currentActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "customer": customer})
}

func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.service.DeleteCustomer(c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}
