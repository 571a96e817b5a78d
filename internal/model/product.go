package model

import "github.com/shopspring/decimal"

// Units offered by the product form. Display only.
var ProductUnits = []string{"pcs", "box", "karton", "botol", "kaleng", "kg", "liter", "batang", "lembar"}

type Product struct {
	BaseModel
	Code       string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name       string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Price      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"price"`
	Stock      int             `gorm:"not null;default:0;check:chk_products_stock_non_negative,stock >= 0" json:"stock"`
	Unit       string          `gorm:"type:varchar(20)" json:"unit"`
	LocationID *string         `gorm:"type:varchar(64);index" json:"locationId"`
}
