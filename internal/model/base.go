package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Money travels as plain JSON numbers (45000, not "45000").
	decimal.MarshalJSONWithoutQuotes = true
}

// BaseModel handles the string ID and standard audit trail
type BaseModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(64)" json:"-"`
	UpdatedBy string `gorm:"type:varchar(64)" json:"-"`
}

// BeforeCreate assigns a UUID unless the caller supplied an id (seed data does).
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == "" {
		base.ID = NewID()
	}
	return
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.New().String()
}

// Status is shared by customers and salesmen.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
