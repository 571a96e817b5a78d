package handler

import (
	"go-sales-inventory/internal/middleware"
	"go-sales-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
	log         *zap.Logger
}

func NewUserHandler(userService service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: namedLogger(log, "user")}
}

// CreateUser handles user creation
// POST /users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.CreateUser(&req, currentActor(c).ID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"id":      user.ID,
		"user":    user.ToResponse(),
	})
}

// UpdateUser handles user updates
// PUT /users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	updater := middleware.CurrentUser(c)
	if updater == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.UpdateUser(c.Params("id"), &req, updater)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user.ToResponse(),
	})
}

// DeleteUser handles user deletion
// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Params("id"), currentActor(c).ID); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// GetAllUsers returns all users
// GET /users
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"users": users})
}

// GetUser returns a single user by ID
// GET /users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"user": user})
}
