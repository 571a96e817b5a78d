package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-sales-inventory/internal/export"
	"go-sales-inventory/internal/middleware"
	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/internal/seed"
	"go-sales-inventory/internal/service"
	"go-sales-inventory/pkg/database"
	"go-sales-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@tokobesi.local"
	adminPassword = "besi12345"
	kasirEmail    = "kasir@tokobesi.local"
	kasirPassword = "kasir123"
)

var wib = time.FixedZone("WIB", 7*60*60)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)

	seeder := seed.New(db, nil)
	_, err = seeder.EnsureAdmin(adminEmail, adminPassword)
	require.NoError(t, err)
	_, err = seeder.DemoData()
	require.NoError(t, err)

	kasir := &model.User{Email: kasirEmail, Name: "Kasir Toko", Role: model.RoleUser}
	require.NoError(t, kasir.SetPassword(kasirPassword))
	require.NoError(t, db.Create(kasir).Error)

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	locks := service.NewProductLocks()

	authService := service.NewAuthService(userRepo, jwt.NewManager("test-secret", time.Hour), nil)
	saleService := service.NewSaleService(service.SaleServiceParams{
		ProductRepo:  productRepo,
		CustomerRepo: customerRepo,
		SaleRepo:     saleRepo,
		DB:           db,
		Locks:        locks,
	})

	app := fiber.New()
	RegisterRoutes(app, Handlers{
		Auth:      NewAuthHandler(authService, nil),
		User:      NewUserHandler(service.NewUserService(userRepo), nil),
		Inventory: NewInventoryHandler(service.NewInventoryService(productRepo, locationRepo, db, locks, nil, nil, nil), nil),
		Sale:      NewSaleHandler(saleService, wib, nil),
		Location:  NewLocationHandler(service.NewLocationService(locationRepo), nil),
		Customer:  NewCustomerHandler(service.NewCustomerService(customerRepo), nil),
		Salesman:  NewSalesmanHandler(service.NewSalesmanService(repository.NewSalesmanRepo(db)), nil),
		Dashboard: NewDashboardHandler(service.NewDashboardService(productRepo, saleRepo, 10, wib), nil),
		Seed:      NewSeedHandler(seeder, nil),
	}, middleware.RequireAuth(authService))

	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if resp.Header.Get("Content-Type") == fiber.MIMEApplicationJSON {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := s.do(t, "POST", "/auth/login", "", fiber.Map{"email": email, "password": password})
	require.Equal(t, 200, resp.StatusCode, body)
	return body["token"].(string)
}

func (s *testServer) stock(t *testing.T, productID string) int {
	t.Helper()
	var product model.Product
	require.NoError(t, s.db.First(&product, "id = ?", productID).Error)
	return product.Stock
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, "GET", "/health", "", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, _ = s.do(t, "GET", "/products", "", nil)
	assert.Equal(t, 401, resp.StatusCode)

	resp, body = s.do(t, "POST", "/auth/login", "", fiber.Map{"email": adminEmail, "password": "salah"})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["error"])

	token := s.login(t, adminEmail, adminPassword)
	resp, body = s.do(t, "GET", "/auth/me", token, nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, adminEmail, body["user"].(map[string]interface{})["email"])

	resp, _ = s.do(t, "POST", "/auth/logout", token, nil)
	assert.Equal(t, 200, resp.StatusCode)
	resp, _ = s.do(t, "GET", "/auth/me", token, nil)
	assert.Equal(t, 401, resp.StatusCode, "logout revokes the token")
}

func TestCreateSaleEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, kasirEmail, kasirPassword)

	sale := fiber.Map{
		"salesmanId":   "sm-besi-001",
		"salesmanName": "Rizky Firmansyah",
		"customerId":   "cust-besi-001",
		"items":        []fiber.Map{{"productId": "prod-besi-003", "quantity": 5}},
	}

	t.Run("records sale and decrements stock", func(t *testing.T) {
		resp, body := s.do(t, "POST", "/sales", token, sale)
		require.Equal(t, 201, resp.StatusCode, body)
		assert.Equal(t, "Sale saved", body["message"])
		saleID := body["saleId"].(string)
		assert.NotEmpty(t, saleID)
		assert.Equal(t, 75, s.stock(t, "prod-besi-003"))

		resp, body = s.do(t, "GET", "/sales/"+saleID, token, nil)
		require.Equal(t, 200, resp.StatusCode)
		recorded := body["sale"].(map[string]interface{})
		assert.Equal(t, "CV Baja Abadi", recorded["customerName"])
		assert.EqualValues(t, 225000, recorded["totalAmount"])
	})

	t.Run("insufficient stock leaves stock unchanged", func(t *testing.T) {
		before := s.stock(t, "prod-besi-003")
		resp, body := s.do(t, "POST", "/sales", token, fiber.Map{
			"salesmanName": "Rizky Firmansyah",
			"customerName": "Pembeli Umum",
			"items": []fiber.Map{
				{"productId": "prod-besi-005", "quantity": 1},
				{"productId": "prod-besi-003", "quantity": 1000},
			},
		})
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "insufficient stock for product PKB-002", body["error"])
		assert.Equal(t, before, s.stock(t, "prod-besi-003"))
		assert.Equal(t, 300, s.stock(t, "prod-besi-005"))
	})

	t.Run("invalid json", func(t *testing.T) {
		resp, body := s.do(t, "POST", "/sales", token, "{not json")
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "Invalid JSON", body["error"])
	})

	t.Run("unknown sale", func(t *testing.T) {
		resp, _ := s.do(t, "GET", "/sales/does-not-exist", token, nil)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestSaleQueries(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, kasirEmail, kasirPassword)

	resp, body := s.do(t, "GET", "/sales", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, body["sales"], 3)

	resp, body = s.do(t, "GET", "/sales?salesmanId=sm-besi-002", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, body["sales"], 1)

	resp, body = s.do(t, "GET", "/sales?start=2024-13-01", token, nil)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "invalid date, use YYYY-MM-DD", body["error"])

	resp, body = s.do(t, "GET", "/sales?start=2000-01-01&end=2000-01-31", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, body["sales"])

	resp, _ = s.do(t, "GET", "/sales/summary", token, nil)
	assert.Equal(t, 200, resp.StatusCode)

	resp, _ = s.do(t, "GET", "/sales/export", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, export.ContentTypeXLSX, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}

func TestMasterDataRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	kasir := s.login(t, kasirEmail, kasirPassword)
	admin := s.login(t, adminEmail, adminPassword)

	location := fiber.Map{"code": "GDG-BARU", "name": "Gudang Baru", "type": "warehouse"}

	resp, _ := s.do(t, "POST", "/locations", kasir, location)
	assert.Equal(t, 403, resp.StatusCode)

	resp, body := s.do(t, "POST", "/locations", admin, location)
	require.Equal(t, 201, resp.StatusCode, body)

	resp, body = s.do(t, "POST", "/locations", admin, location)
	assert.Equal(t, 400, resp.StatusCode, "duplicate code")
	assert.Equal(t, "location code already exists", body["error"])

	resp, body = s.do(t, "GET", "/locations", kasir, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, body["locations"], 4)

	resp, _ = s.do(t, "GET", "/users", kasir, nil)
	assert.Equal(t, 403, resp.StatusCode)
	resp, body = s.do(t, "GET", "/users", admin, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, body["users"], 2)
}

func TestDashboardAndSeedEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, kasirEmail, kasirPassword)

	resp, body := s.do(t, "GET", "/dashboard/stats", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.EqualValues(t, 15, body["totalProducts"])

	resp, body = s.do(t, "GET", "/dashboard/sales-trend?days=3", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.EqualValues(t, 3, body["period"])
	assert.Len(t, body["data"], 3)

	resp, body = s.do(t, "POST", "/init-products", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Products already initialized", body["message"])
}
