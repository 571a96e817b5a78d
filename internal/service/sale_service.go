package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go-sales-inventory/internal/metrics"
	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/internal/ws"
	"go-sales-inventory/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Largest quantity a single line may ask for; stock is a 32-bit count in practice.
const maxLineQuantity = math.MaxInt32

// SaleItemRequest is one requested line. Price is optional; a missing or
// negative price falls back to the product's catalog price.
type SaleItemRequest struct {
	ProductID string           `json:"productId" validate:"notblank"`
	Quantity  float64          `json:"quantity" validate:"gt=0"`
	Price     *decimal.Decimal `json:"price"`
}

// RecordSaleRequest is the body of POST /sales.
type RecordSaleRequest struct {
	SalesmanName string            `json:"salesmanName"`
	SalesmanID   string            `json:"salesmanId"`
	CustomerID   string            `json:"customerId"`
	CustomerName string            `json:"customerName"`
	Items        []SaleItemRequest `json:"items"`
}

// Actor is the authenticated user on whose behalf a service call runs.
type Actor struct {
	ID    string
	Name  string
	Email string
}

// EventPublisher receives realtime notifications after commits.
type EventPublisher interface {
	Publish(event ws.Event)
}

type SaleService interface {
	RecordSale(req *RecordSaleRequest, actor Actor) (*model.Sale, error)
	GetAllSales(filter repository.SaleFilter) ([]model.Sale, error)
	GetSaleByID(id string) (*model.Sale, error)
	GetSummary(filter repository.SaleFilter) (*repository.SaleSummary, error)
}

type saleService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	db           *gorm.DB
	locks        *ProductLocks
	events       EventPublisher
	metrics      *metrics.Sales
	log          *zap.Logger
	now          func() time.Time
}

type SaleServiceParams struct {
	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
	SaleRepo     repository.SaleRepository
	DB           *gorm.DB
	Locks        *ProductLocks
	Events       EventPublisher
	Metrics      *metrics.Sales
	Log          *zap.Logger
}

func NewSaleService(p SaleServiceParams) SaleService {
	locks := p.Locks
	if locks == nil {
		locks = NewProductLocks()
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &saleService{
		productRepo:  p.ProductRepo,
		customerRepo: p.CustomerRepo,
		saleRepo:     p.SaleRepo,
		db:           p.DB,
		locks:        locks,
		events:       p.Events,
		metrics:      p.Metrics,
		log:          log.With(zap.String("component", "sale_service")),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RecordSale validates the request and, when every line passes, commits the
// sale and all stock decrements as one transaction. Any failure leaves stock
// and the sale history untouched.
func (s *saleService) RecordSale(req *RecordSaleRequest, actor Actor) (*model.Sale, error) {
	sale, changes, err := s.record(req, actor)
	if err != nil {
		s.metrics.SaleRejected(RejectionReason(err))
		if IsSaleRejection(err) {
			s.log.Info("sale rejected", zap.String("reason", err.Error()), zap.String("user_id", actor.ID))
		} else {
			s.log.Error("record sale", zap.Error(err), zap.String("user_id", actor.ID))
		}
		return nil, err
	}

	s.metrics.SaleRecorded(sale.TotalAmount, len(sale.Items), sale.ItemCount())
	s.log.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.Int("lines", len(sale.Items)),
		zap.String("total", sale.TotalAmount.String()),
		zap.String("user_id", actor.ID),
	)
	s.publishSale(sale, changes, actor)

	return sale, nil
}

func (s *saleService) record(req *RecordSaleRequest, actor Actor) (*model.Sale, []stockChange, error) {
	if req == nil {
		return nil, nil, ErrIncompleteSale
	}

	// 1. Header
	salesmanName := strings.TrimSpace(req.SalesmanName)
	if salesmanName == "" || len(req.Items) == 0 {
		return nil, nil, ErrIncompleteSale
	}

	// 2-3. Customer: a resolved customer's name wins over the literal one
	customerName := strings.TrimSpace(req.CustomerName)
	var customerID *string
	if id := strings.TrimSpace(req.CustomerID); id != "" {
		customer, err := s.customerRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrCustomerNotFound
			}
			return nil, nil, fmt.Errorf("find customer: %w", err)
		}
		customerID = &customer.ID
		customerName = customer.Name
	}
	if customerName == "" {
		return nil, nil, ErrCustomerNameRequired
	}

	// 4. Lines, against one locked snapshot per product
	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, strings.TrimSpace(item.ProductID))
	}
	unlock := s.locks.Lock(productIDs)
	defer unlock()

	var sale *model.Sale
	var changes []stockChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.LockByIDs(tx, uniqueSorted(productIDs))
		if err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		ledger := newStockLedger(products)

		items := make([]model.SaleItem, 0, len(req.Items))
		total := decimal.Zero
		for i, line := range req.Items {
			line.ProductID = strings.TrimSpace(line.ProductID)
			quantity, err := lineQuantity(line)
			if err != nil {
				return err
			}

			product, ok := ledger.Product(line.ProductID)
			if !ok {
				return ErrProductNotFound
			}
			if err := ledger.Reserve(product.ID, quantity); err != nil {
				return err
			}

			price := product.Price
			if line.Price != nil && !line.Price.IsNegative() {
				price = line.Price.Round(2)
			}
			lineTotal := price.Mul(decimal.NewFromInt(int64(quantity)))
			total = total.Add(lineTotal)

			items = append(items, model.SaleItem{
				LineNo:      i + 1,
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductCode: product.Code,
				Quantity:    quantity,
				Price:       price,
				Total:       lineTotal,
			})
		}

		// 5. Commit
		changes = ledger.Changes()
		for _, change := range changes {
			if err := s.productRepo.UpdateStock(tx, change.ProductID, change.NewStock, actor.ID); err != nil {
				return fmt.Errorf("update stock of %s: %w", change.Code, err)
			}
		}

		sale = &model.Sale{
			ID:           model.NewID(),
			SalesmanID:   strings.TrimSpace(req.SalesmanID),
			SalesmanName: salesmanName,
			CustomerID:   customerID,
			CustomerName: customerName,
			Date:         s.now(),
			TotalAmount:  total,
			Items:        items,
			CreatedBy:    actor.ID,
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return fmt.Errorf("save sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return sale, changes, nil
}

// lineQuantity checks one line's shape and returns its quantity as a count.
func lineQuantity(line SaleItemRequest) (int, error) {
	if errs := validator.ValidateStruct(&line); len(errs) > 0 {
		return 0, ErrInvalidSaleItem
	}
	q := line.Quantity
	if math.IsNaN(q) || math.IsInf(q, 0) || q != math.Trunc(q) || q > maxLineQuantity {
		return 0, ErrInvalidSaleItem
	}
	return int(q), nil
}

func (s *saleService) publishSale(sale *model.Sale, changes []stockChange, actor Actor) {
	if s.events == nil {
		return
	}
	user := &ws.Actor{ID: actor.ID, Name: actor.Name, Email: actor.Email}

	s.events.Publish(ws.Event{
		Type:   "sale_recorded",
		Action: "sale_created",
		Data: map[string]interface{}{
			"id":           sale.ID,
			"customerName": sale.CustomerName,
			"salesmanName": sale.SalesmanName,
			"totalAmount":  sale.TotalAmount,
			"date":         sale.Date,
		},
		User:    user,
		Message: fmt.Sprintf("%s recorded a sale to %s (%s)", actor.Name, sale.CustomerName, sale.TotalAmount.StringFixed(0)),
	})

	for _, change := range changes {
		s.events.Publish(ws.Event{
			Type:   "stock_update",
			Action: "sale_recorded",
			Data: map[string]interface{}{
				"id":        change.ProductID,
				"code":      change.Code,
				"name":      change.Name,
				"old_stock": change.OldStock,
				"new_stock": change.NewStock,
			},
			User:    user,
			Message: fmt.Sprintf("%s sold %d units of '%s'", actor.Name, change.OldStock-change.NewStock, change.Name),
		})
	}
}

func (s *saleService) GetAllSales(filter repository.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.FindAll(filter)
}

func (s *saleService) GetSaleByID(id string) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sale %w", ErrNotFound)
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) GetSummary(filter repository.SaleFilter) (*repository.SaleSummary, error) {
	return s.saleRepo.Summary(filter)
}
