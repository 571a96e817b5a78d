package service

import (
	"errors"
	"sync"
	"testing"

	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	sale, err := svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Pak Ahmad",
		Items:        []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 5}},
	}, testActor)
	require.NoError(t, err)

	assert.NotEmpty(t, sale.ID)
	assert.True(t, decimal.NewFromInt(225000).Equal(sale.TotalAmount), sale.TotalAmount.String())
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "PKB-002", sale.Items[0].ProductCode)
	assert.Equal(t, "Paku Beton 2 inch", sale.Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(45000).Equal(sale.Items[0].Price))
	assert.Equal(t, 75, f.stock(t, "prod-besi-003"))

	stored, err := svc.GetSaleByID(sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pak Ahmad", stored.CustomerName)
	assert.Nil(t, stored.CustomerID)
	assert.True(t, decimal.NewFromInt(225000).Equal(stored.TotalAmount))
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 5, stored.Items[0].Quantity)

	assert.Equal(t, []string{"sale_recorded", "stock_update"}, f.events.Types())
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	_, err := svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Pak Ahmad",
		Items:        []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 1000}},
	}, testActor)
	require.Error(t, err)
	assert.Equal(t, "insufficient stock for product PKB-002", err.Error())
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 80, stockErr.Available)
	assert.Equal(t, 1000, stockErr.Requested)

	assert.Equal(t, 80, f.stock(t, "prod-besi-003"))
	count, err := f.sales.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, f.events.Types())
}

func TestRecordSaleIsAtomic(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	_, err := svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Pak Ahmad",
		Items: []SaleItemRequest{
			{ProductID: "prod-besi-003", Quantity: 5},
			{ProductID: "prod-besi-001", Quantity: 4},
		},
	}, testActor)
	require.Error(t, err)
	assert.Equal(t, "insufficient stock for product BSI-010", err.Error())

	assert.Equal(t, 80, f.stock(t, "prod-besi-003"))
	assert.Equal(t, 3, f.stock(t, "prod-besi-001"))
	count, err := f.sales.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordSaleTotalsAndPriceOverride(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	sale, err := svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Pak Ahmad",
		Items: []SaleItemRequest{
			{ProductID: "prod-besi-003", Quantity: 2, Price: price(40000)},
			{ProductID: "prod-besi-001", Quantity: 1, Price: price(-1)},
			{ProductID: "prod-besi-001", Quantity: 1, Price: price(0)},
		},
	}, testActor)
	require.NoError(t, err)

	require.Len(t, sale.Items, 3)
	assert.True(t, decimal.NewFromInt(40000).Equal(sale.Items[0].Price))
	assert.True(t, decimal.NewFromInt(80000).Equal(sale.Items[0].Total))
	assert.True(t, decimal.NewFromInt(85000).Equal(sale.Items[1].Price), "negative price falls back to catalog")
	assert.True(t, decimal.Zero.Equal(sale.Items[2].Price), "zero is a valid override")

	sum := decimal.Zero
	for _, item := range sale.Items {
		assert.True(t, item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Equal(item.Total))
		sum = sum.Add(item.Total)
	}
	assert.True(t, sum.Equal(sale.TotalAmount))
	assert.True(t, decimal.NewFromInt(165000).Equal(sale.TotalAmount))

	// same product on two lines shares the running stock
	assert.Equal(t, 1, f.stock(t, "prod-besi-001"))
	assert.Equal(t, 78, f.stock(t, "prod-besi-003"))
}

func TestRecordSaleRepeatedLinesCannotOversell(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	_, err := svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Pak Ahmad",
		Items: []SaleItemRequest{
			{ProductID: "prod-besi-001", Quantity: 2},
			{ProductID: "prod-besi-001", Quantity: 2},
		},
	}, testActor)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, f.stock(t, "prod-besi-001"))
}

func TestRecordSaleCustomerPrecedence(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	sale, err := svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerID:   "cust-001",
		CustomerName: "Someone Else",
		Items:        []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 1}},
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "Toko Maju Jaya", sale.CustomerName)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, "cust-001", *sale.CustomerID)

	_, err = svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerID:   "cust-missing",
		CustomerName: "Pak Ahmad",
		Items:        []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 1}},
	}, testActor)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, 79, f.stock(t, "prod-besi-003"))
}

func TestRecordSaleValidationOrder(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()
	item := []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 1}}

	tests := []struct {
		name string
		req  *RecordSaleRequest
		want error
	}{
		{"nil request", nil, ErrIncompleteSale},
		{"blank salesman", &RecordSaleRequest{SalesmanName: "  ", CustomerName: "A", Items: item}, ErrIncompleteSale},
		{"no items", &RecordSaleRequest{SalesmanName: "Budi", CustomerName: "A"}, ErrIncompleteSale},
		{"incomplete wins over customer", &RecordSaleRequest{SalesmanName: "", CustomerID: "cust-missing"}, ErrIncompleteSale},
		{"no customer", &RecordSaleRequest{SalesmanName: "Budi", Items: item}, ErrCustomerNameRequired},
		{"blank product id", &RecordSaleRequest{SalesmanName: "Budi", CustomerName: "A", Items: []SaleItemRequest{{ProductID: " ", Quantity: 1}}}, ErrInvalidSaleItem},
		{"zero quantity", &RecordSaleRequest{SalesmanName: "Budi", CustomerName: "A", Items: []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 0}}}, ErrInvalidSaleItem},
		{"negative quantity", &RecordSaleRequest{SalesmanName: "Budi", CustomerName: "A", Items: []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: -2}}}, ErrInvalidSaleItem},
		{"fractional quantity", &RecordSaleRequest{SalesmanName: "Budi", CustomerName: "A", Items: []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 1.5}}}, ErrInvalidSaleItem},
		{"unknown product", &RecordSaleRequest{SalesmanName: "Budi", CustomerName: "A", Items: []SaleItemRequest{{ProductID: "prod-nope", Quantity: 1}}}, ErrProductNotFound},
		{"invalid item before unknown product", &RecordSaleRequest{SalesmanName: "Budi", CustomerName: "A", Items: []SaleItemRequest{
			{ProductID: "prod-besi-003", Quantity: 0},
			{ProductID: "prod-nope", Quantity: 1},
		}}, ErrInvalidSaleItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordSale(tt.req, testActor)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsSaleRejection(err))
		})
	}

	assert.Equal(t, 80, f.stock(t, "prod-besi-003"))
	count, err := f.sales.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordSaleConcurrentNeverOversells(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSale(&RecordSaleRequest{
				SalesmanName: "Budi",
				CustomerName: "Pak Ahmad",
				Items:        []SaleItemRequest{{ProductID: "prod-besi-001", Quantity: 1}},
			}, testActor)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 0, f.stock(t, "prod-besi-001"))
	count, err := f.sales.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestSalesAreImmutable(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	sale, err := svc.RecordSale(&RecordSaleRequest{
		SalesmanName: "Budi",
		CustomerName: "Pak Ahmad",
		Items:        []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: 1}},
	}, testActor)
	require.NoError(t, err)

	stored, err := svc.GetSaleByID(sale.ID)
	require.NoError(t, err)
	stored.CustomerName = "Changed"
	assert.ErrorIs(t, f.db.Save(stored).Error, model.ErrSaleImmutable)
	assert.ErrorIs(t, f.db.Delete(stored).Error, model.ErrSaleImmutable)
	assert.ErrorIs(t, f.db.Delete(&stored.Items[0]).Error, model.ErrSaleImmutable)

	again, err := svc.GetSaleByID(sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pak Ahmad", again.CustomerName)
}

func TestGetSaleByIDNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.saleService().GetSaleByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "sale not found", err.Error())
}

func TestSalesListingAndSummary(t *testing.T) {
	f := newFixture(t)
	svc := f.saleService()

	for i, salesman := range []string{"sm-1", "sm-2", "sm-1"} {
		_, err := svc.RecordSale(&RecordSaleRequest{
			SalesmanName: "Budi",
			SalesmanID:   salesman,
			CustomerName: "Pak Ahmad",
			Items:        []SaleItemRequest{{ProductID: "prod-besi-003", Quantity: float64(i + 1)}},
		}, testActor)
		require.NoError(t, err)
	}

	all, err := svc.GetAllSales(repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.False(t, all[0].Date.Before(all[2].Date), "newest first")

	summary, err := svc.GetSummary(repository.SaleFilter{SalesmanID: "sm-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.Count)
	assert.EqualValues(t, 4, summary.TotalItems)
	assert.True(t, decimal.NewFromInt(180000).Equal(summary.TotalRevenue), summary.TotalRevenue.String())
}
