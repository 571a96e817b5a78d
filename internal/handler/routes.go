package handler

import (
	"go-sales-inventory/internal/middleware"
	"go-sales-inventory/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Inventory *InventoryHandler
	Sale      *SaleHandler
	Location  *LocationHandler
	Customer  *CustomerHandler
	Salesman  *SalesmanHandler
	Dashboard *DashboardHandler
	Seed      *SeedHandler
}

// RegisterRoutes mounts the API on router. requireAuth guards every route
// except health, login, signup and password reset.
func RegisterRoutes(router fiber.Router, h Handlers, requireAuth fiber.Handler) {
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// ============ PUBLIC ROUTES ============
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := router.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Get("/me", requireAuth, h.Auth.Me)
	auth.Post("/logout", requireAuth, h.Auth.Logout)

	// ============ PROTECTED ROUTES ============
	protected := router.Group("", requireAuth)

	protected.Post("/init-products", h.Seed.InitProducts)

	// Dashboard Routes
	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/sales-trend", h.Dashboard.GetSalesTrend)

	// Product Routes
	protected.Get("/products", h.Inventory.GetProducts)
	protected.Get("/products/:id", h.Inventory.GetProduct)
	protected.Post("/products", h.Inventory.CreateProduct)
	protected.Put("/products/:id", h.Inventory.UpdateProduct)
	protected.Delete("/products/:id", h.Inventory.DeleteProduct)
	protected.Post("/products/:id/restock", h.Inventory.RestockProduct)

	// Sale Routes (any role may record a sale)
	protected.Post("/sales", h.Sale.CreateSale)
	protected.Get("/sales", h.Sale.GetSales)
	protected.Get("/sales/summary", h.Sale.GetSummary)
	protected.Get("/sales/export", h.Sale.ExportSales)
	protected.Get("/sales/:id", h.Sale.GetSale)

	// Master data: everyone reads, admins write
	protected.Get("/locations", h.Location.GetLocations)
	protected.Get("/locations/:id", h.Location.GetLocation)
	protected.Post("/locations", adminOnly, h.Location.CreateLocation)
	protected.Put("/locations/:id", adminOnly, h.Location.UpdateLocation)
	protected.Delete("/locations/:id", adminOnly, h.Location.DeleteLocation)

	protected.Get("/customers", h.Customer.GetCustomers)
	protected.Get("/customers/:id", h.Customer.GetCustomer)
	protected.Post("/customers", adminOnly, h.Customer.CreateCustomer)
	protected.Put("/customers/:id", adminOnly, h.Customer.UpdateCustomer)
	protected.Delete("/customers/:id", adminOnly, h.Customer.DeleteCustomer)

	protected.Get("/salesmen", h.Salesman.GetSalesmen)
	protected.Get("/salesmen/:id", h.Salesman.GetSalesman)
	protected.Post("/salesmen", adminOnly, h.Salesman.CreateSalesman)
	protected.Put("/salesmen/:id", adminOnly, h.Salesman.UpdateSalesman)
	protected.Delete("/salesmen/:id", adminOnly, h.Salesman.DeleteSalesman)

	// User Management Routes (users may update themselves)
	protected.Get("/users", adminOnly, h.User.GetAllUsers)
	protected.Get("/users/:id", adminOnly, h.User.GetUser)
	protected.Post("/users", adminOnly, h.User.CreateUser)
	protected.Put("/users/:id", h.User.UpdateUser)
	protected.Delete("/users/:id", adminOnly, h.User.DeleteUser)
}
