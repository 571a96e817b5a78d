package service

import (
	"testing"

	"go-sales-inventory/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (f *fixture) inventoryService() InventoryService {
	return NewInventoryService(f.products, f.locations, f.db, f.locks, f.events, nil, nil)
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	svc := f.inventoryService()

	product, err := svc.CreateProduct(&ProductRequest{
		Code:       " sng-001 ",
		Name:       "Seng Gelombang",
		Price:      decimal.NewFromInt(62000),
		Stock:      intPtr(40),
		Unit:       "lembar",
		LocationID: strPtr("loc-besi-002"),
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "SNG-001", product.Code)
	assert.Equal(t, 40, product.Stock)
	assert.NotEmpty(t, product.ID)

	_, err = svc.CreateProduct(&ProductRequest{Code: "Sng-001", Name: "Other", Unit: "pcs"}, testActor)
	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.Equal(t, "product code already exists", err.Error())

	_, err = svc.CreateProduct(&ProductRequest{Code: "X-1", Name: "X", Unit: "ton"}, testActor)
	assert.ErrorIs(t, err, validator.ErrValidation)

	_, err = svc.CreateProduct(&ProductRequest{Code: "X-1", Name: "X", Unit: "pcs", Price: decimal.NewFromInt(-1)}, testActor)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateProduct(&ProductRequest{Code: "X-1", Name: "X", Unit: "pcs", LocationID: strPtr("loc-nope")}, testActor)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = svc.CreateProduct(&ProductRequest{Code: "X-1", Name: "X", Unit: "pcs", Stock: intPtr(-1)}, testActor)
	assert.ErrorIs(t, err, validator.ErrValidation)

	assert.Contains(t, f.events.Types(), "stock_update")
}

func TestUpdateProductKeepsStock(t *testing.T) {
	f := newFixture(t)
	svc := f.inventoryService()

	updated, err := svc.UpdateProduct("prod-besi-003", &ProductRequest{
		Code:  "pkb-002",
		Name:  "Paku Beton 2 inch (dus)",
		Price: decimal.NewFromInt(47000),
		Stock: intPtr(1),
		Unit:  "kg",
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "PKB-002", updated.Code)
	assert.Nil(t, updated.LocationID)

	stored, err := svc.GetProductByID("prod-besi-003")
	require.NoError(t, err)
	assert.Equal(t, 80, stored.Stock)
	assert.True(t, decimal.NewFromInt(47000).Equal(stored.Price))
	assert.Equal(t, "Paku Beton 2 inch (dus)", stored.Name)

	_, err = svc.UpdateProduct("prod-besi-003", &ProductRequest{Code: "bsi-010", Name: "x", Unit: "kg"}, testActor)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	_, err = svc.UpdateProduct("prod-nope", &ProductRequest{Code: "N-1", Name: "x", Unit: "kg"}, testActor)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestockAndDeleteProduct(t *testing.T) {
	f := newFixture(t)
	svc := f.inventoryService()

	product, err := svc.Restock("prod-besi-001", &RestockRequest{Quantity: 7}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)
	assert.Equal(t, 10, f.stock(t, "prod-besi-001"))

	_, err = svc.Restock("prod-besi-001", &RestockRequest{Quantity: 0}, testActor)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Restock("prod-nope", &RestockRequest{Quantity: 1}, testActor)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteProduct("prod-besi-001", testActor))
	_, err = svc.GetProductByID("prod-besi-001")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct("prod-besi-001", testActor), ErrNotFound)

	products, err := svc.GetAllProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "PKB-002", products[0].Code)
}

func TestMasterDataServices(t *testing.T) {
	f := newFixture(t)

	locations := NewLocationService(f.locations)
	store, err := locations.CreateLocation(&LocationRequest{Code: "tk-01", Name: "Toko Depan"}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "TK-01", store.Code)
	assert.EqualValues(t, "warehouse", store.Type)

	_, err = locations.CreateLocation(&LocationRequest{Code: "TK-01", Name: "Dup"}, testActor)
	assert.ErrorIs(t, err, ErrDuplicateCode)
	_, err = locations.CreateLocation(&LocationRequest{Code: "TK-02", Name: "Bad", Type: "garage"}, testActor)
	assert.ErrorIs(t, err, validator.ErrValidation)

	// deleting a location detaches its products
	require.NoError(t, locations.DeleteLocation("loc-besi-002"))
	p, err := f.products.FindByID("prod-besi-003")
	require.NoError(t, err)
	assert.Nil(t, p.LocationID)

	customers := NewCustomerService(f.customers)
	customer, err := customers.CreateCustomer(&CustomerRequest{Code: "cust-002", Name: "Bengkel Las Sinar"}, testActor)
	require.NoError(t, err)
	assert.EqualValues(t, "active", customer.Status)
	createdAt := customer.CreatedAt

	updated, err := customers.UpdateCustomer(customer.ID, &CustomerRequest{Code: "CUST-002", Name: "Bengkel Las Sinar Jaya", Status: "inactive"}, testActor)
	require.NoError(t, err)
	assert.EqualValues(t, "inactive", updated.Status)
	stored, err := customers.GetCustomerByID(customer.ID)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(stored.CreatedAt))
	assert.Equal(t, "Bengkel Las Sinar Jaya", stored.Name)

	_, err = customers.UpdateCustomer(customer.ID, &CustomerRequest{Code: "cust-001", Name: "x"}, testActor)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	salesmen := NewSalesmanService(f.salesmenRepo())
	budi, err := salesmen.CreateSalesman(&SalesmanRequest{Code: "sls-001", Name: "Budi Santoso", Area: "Jakarta Timur"}, testActor)
	require.NoError(t, err)
	_, err = salesmen.CreateSalesman(&SalesmanRequest{Code: "Sls-001", Name: "Andi"}, testActor)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	all, err := salesmen.GetAllSalesmen()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NoError(t, salesmen.DeleteSalesman(budi.ID))
	_, err = salesmen.GetSalesmanByID(budi.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "salesman not found", err.Error())
}
