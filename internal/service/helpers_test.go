package service

import (
	"sync"
	"testing"

	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/internal/ws"
	"go-sales-inventory/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type fixture struct {
	db        *gorm.DB
	products  repository.ProductRepository
	customers repository.CustomerRepository
	locations repository.LocationRepository
	sales     repository.SaleRepository
	events    *recordingPublisher
	locks     *ProductLocks
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)

	f := &fixture{
		db:        db,
		products:  repository.NewProductRepo(db),
		customers: repository.NewCustomerRepo(db),
		locations: repository.NewLocationRepo(db),
		sales:     repository.NewSaleRepo(db),
		events:    &recordingPublisher{},
		locks:     NewProductLocks(),
	}

	location := &model.Location{Code: "GDG-001", Name: "Gudang Utama", Type: model.LocationWarehouse}
	location.ID = "loc-besi-002"
	require.NoError(t, f.locations.Create(location))

	f.addProduct(t, "prod-besi-003", "PKB-002", "Paku Beton 2 inch", 45000, 80)
	f.addProduct(t, "prod-besi-001", "BSI-010", "Besi Beton 10mm", 85000, 3)

	customer := &model.Customer{Code: "CUST-001", Name: "Toko Maju Jaya", Status: model.StatusActive}
	customer.ID = "cust-001"
	require.NoError(t, f.customers.Create(customer))

	return f
}

func (f *fixture) addProduct(t *testing.T, id, code, name string, price int64, stock int) {
	t.Helper()
	locationID := "loc-besi-002"
	p := &model.Product{Code: code, Name: name, Price: decimal.NewFromInt(price), Stock: stock, Unit: "pcs", LocationID: &locationID}
	p.ID = id
	require.NoError(t, f.products.Create(p))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.FindByID(id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) saleService() SaleService {
	return NewSaleService(SaleServiceParams{
		ProductRepo:  f.products,
		CustomerRepo: f.customers,
		SaleRepo:     f.sales,
		DB:           f.db,
		Locks:        f.locks,
		Events:       f.events,
	})
}

var testActor = Actor{ID: "user-1", Name: "Kasir", Email: "kasir@tokobesi.local"}

func (f *fixture) salesmenRepo() repository.SalesmanRepository {
	return repository.NewSalesmanRepo(f.db)
}
