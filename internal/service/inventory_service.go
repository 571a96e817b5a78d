package service

import (
	"errors"
	"fmt"
	"strings"

	"go-sales-inventory/internal/metrics"
	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/internal/ws"
	"go-sales-inventory/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidPrice      = errors.New("price must be greater than or equal to 0")
	ErrLocationNotFound  = errors.New("location not found")
	ErrProductIDRequired = errors.New("invalid product id")
)

// ProductRequest is the body of POST/PUT /products. Stock is only read on
// create; afterwards it moves through restocks and sales.
type ProductRequest struct {
	ID         string          `json:"id"`
	Code       string          `json:"code" validate:"notblank,max=50"`
	Name       string          `json:"name" validate:"notblank,max=255"`
	Price      decimal.Decimal `json:"price"`
	Stock      *int            `json:"stock" validate:"omitempty,gte=0"`
	Unit       string          `json:"unit" validate:"notblank,oneof=pcs box karton botol kaleng kg liter batang lembar"`
	LocationID *string         `json:"locationId"`
}

type RestockRequest struct {
	Quantity int    `json:"quantity" validate:"gt=0"`
	Note     string `json:"note" validate:"max=255"`
}

type InventoryService interface {
	CreateProduct(req *ProductRequest, actor Actor) (*model.Product, error)
	UpdateProduct(id string, req *ProductRequest, actor Actor) (*model.Product, error)
	DeleteProduct(id string, actor Actor) error
	Restock(id string, req *RestockRequest, actor Actor) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id string) (*model.Product, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	db           *gorm.DB
	locks        *ProductLocks
	events       EventPublisher
	metrics      *metrics.Sales
	log          *zap.Logger
}

func NewInventoryService(pRepo repository.ProductRepository, lRepo repository.LocationRepository, db *gorm.DB, locks *ProductLocks, events EventPublisher, m *metrics.Sales, log *zap.Logger) InventoryService {
	if locks == nil {
		locks = NewProductLocks()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &inventoryService{
		productRepo:  pRepo,
		locationRepo: lRepo,
		db:           db,
		locks:        locks,
		events:       events,
		metrics:      m,
		log:          log.With(zap.String("component", "inventory_service")),
	}
}

func (s *inventoryService) CreateProduct(req *ProductRequest, actor Actor) (*model.Product, error) {
	// 1. Validasi Struct Dasar
	if err := s.validate(req); err != nil {
		return nil, err
	}

	// 2. Cek Duplikasi Code (Business Logic Validation)
	code := repository.NormalizeCode(req.Code)
	taken, err := s.productRepo.CodeTaken(code, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("product %w", ErrDuplicateCode)
	}

	locationID, err := s.resolveLocation(req.LocationID)
	if err != nil {
		return nil, err
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	product := &model.Product{
		Code:       code,
		Name:       strings.TrimSpace(req.Name),
		Price:      req.Price.Round(2),
		Stock:      stock,
		Unit:       req.Unit,
		LocationID: locationID,
	}
	product.ID = strings.TrimSpace(req.ID)

	// 3. Set Audit Fields
	product.CreatedBy = actor.ID
	product.UpdatedBy = actor.ID

	// 4. Simpan ke Database
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	// 5. Broadcast ke WebSocket dengan user info
	s.publish("product_created", product, actor, fmt.Sprintf("%s created product '%s'", actor.Name, product.Name))

	return product, nil
}

func (s *inventoryService) UpdateProduct(id string, req *ProductRequest, actor Actor) (*model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrProductIDRequired
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	existing, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	code := repository.NormalizeCode(req.Code)
	taken, err := s.productRepo.CodeTaken(code, existing.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("product %w", ErrDuplicateCode)
	}

	locationID, err := s.resolveLocation(req.LocationID)
	if err != nil {
		return nil, err
	}

	existing.Code = code
	existing.Name = strings.TrimSpace(req.Name)
	existing.Price = req.Price.Round(2)
	existing.Unit = req.Unit
	existing.LocationID = locationID
	existing.UpdatedBy = actor.ID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.publish("product_updated", existing, actor, fmt.Sprintf("%s updated product '%s'", actor.Name, existing.Name))

	return existing, nil
}

func (s *inventoryService) DeleteProduct(id string, actor Actor) error {
	if strings.TrimSpace(id) == "" {
		return ErrProductIDRequired
	}
	product, err := s.GetProductByID(id)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock([]string{product.ID})
	defer unlock()
	if err := s.productRepo.Delete(product.ID); err != nil {
		return err
	}

	s.publish("product_deleted", product, actor, fmt.Sprintf("%s deleted product '%s'", actor.Name, product.Name))
	return nil
}

// Restock adds stock under the same per-product locks sales use.
func (s *inventoryService) Restock(id string, req *RestockRequest, actor Actor) (*model.Product, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, ErrInvalidQuantity
	}

	unlock := s.locks.Lock([]string{id})
	defer unlock()

	var updated model.Product
	var oldStock int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.LockByIDs(tx, []string{id})
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return fmt.Errorf("product %w", ErrNotFound)
		}
		updated = products[0]
		oldStock = updated.Stock
		updated.Stock += req.Quantity
		return s.productRepo.UpdateStock(tx, updated.ID, updated.Stock, actor.ID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Restocked(req.Quantity)
	s.log.Info("product restocked",
		zap.String("product_id", updated.ID),
		zap.Int("quantity", req.Quantity),
		zap.Int("new_stock", updated.Stock),
		zap.String("note", req.Note),
		zap.String("user_id", actor.ID),
	)

	if s.events != nil {
		s.events.Publish(ws.Event{
			Type:   "stock_update",
			Action: "product_restocked",
			Data: map[string]interface{}{
				"id":        updated.ID,
				"code":      updated.Code,
				"name":      updated.Name,
				"old_stock": oldStock,
				"new_stock": updated.Stock,
			},
			User:    &ws.Actor{ID: actor.ID, Name: actor.Name, Email: actor.Email},
			Message: fmt.Sprintf("%s added %d units of '%s'", actor.Name, req.Quantity, updated.Name),
		})
	}

	return &updated, nil
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) GetProductByID(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %w", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) validate(req *ProductRequest) error {
	if err := validator.FirstError(req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// resolveLocation treats an empty id as "no location" and rejects unknown ids.
func (s *inventoryService) resolveLocation(id *string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	location, err := s.locationRepo.FindByID(strings.TrimSpace(*id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location.ID, nil
}

func (s *inventoryService) publish(action string, product *model.Product, actor Actor, message string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ws.Event{
		Type:   "stock_update",
		Action: action,
		Data: map[string]interface{}{
			"id":    product.ID,
			"code":  product.Code,
			"name":  product.Name,
			"stock": product.Stock,
			"price": product.Price,
		},
		User:    &ws.Actor{ID: actor.ID, Name: actor.Name, Email: actor.Email},
		Message: message,
	})
}
