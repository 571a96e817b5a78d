package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DemoSeeder loads demo data into an empty catalog.
type DemoSeeder interface {
	DemoData() (bool, error)
}

type SeedHandler struct {
	seeder DemoSeeder
	log    *zap.Logger
}

func NewSeedHandler(seeder DemoSeeder, log *zap.Logger) *SeedHandler {
	return &SeedHandler{seeder: seeder, log: namedLogger(log, "seed")}
}

// InitProducts seeds the demo catalog when no product exists yet.
// POST /init-products
func (h *SeedHandler) InitProducts(c *fiber.Ctx) error {
	seeded, err := h.seeder.DemoData()
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !seeded {
		return c.JSON(fiber.Map{"message": "Products already initialized"})
	}
	return c.JSON(fiber.Map{"message": "Products initialized"})
}
