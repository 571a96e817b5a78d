package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrSaleImmutable is returned by the GORM hooks when anything tries to
// rewrite or remove a recorded sale.
var ErrSaleImmutable = errors.New("sales are immutable once recorded")

// Sale is a completed transaction. It owns its items; customer and salesman
// are weak references with names snapshotted at creation.
type Sale struct {
	ID           string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	SalesmanID   string          `gorm:"type:varchar(64);index" json:"salesmanId"`
	SalesmanName string          `gorm:"type:varchar(255);not null" json:"salesmanName"`
	CustomerID   *string         `gorm:"type:varchar(64);index" json:"customerId"`
	CustomerName string          `gorm:"type:varchar(255);not null" json:"customerName"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"totalAmount"`
	Items        []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`

	// Audit: the authenticated user that recorded the sale
	CreatedBy string `gorm:"type:varchar(64)" json:"-"`
}

// SaleItem is one product line of a Sale.
type SaleItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID      string          `gorm:"type:varchar(64);not null;index" json:"saleId"`
	LineNo      int             `gorm:"not null" json:"-"`
	ProductID   string          `gorm:"type:varchar(64);not null;index" json:"productId"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"productName"`
	ProductCode string          `gorm:"type:varchar(50);not null" json:"productCode"`
	Quantity    int             `gorm:"not null;check:chk_sale_items_quantity_positive,quantity > 0" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Total       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`
}

func (s *Sale) BeforeUpdate(tx *gorm.DB) error { return ErrSaleImmutable }
func (s *Sale) BeforeDelete(tx *gorm.DB) error { return ErrSaleImmutable }

func (i *SaleItem) BeforeUpdate(tx *gorm.DB) error { return ErrSaleImmutable }
func (i *SaleItem) BeforeDelete(tx *gorm.DB) error { return ErrSaleImmutable }

// ItemCount sums the quantities of every line.
func (s *Sale) ItemCount() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}
