package model

type LocationType string

const (
	LocationWarehouse LocationType = "warehouse"
	LocationStore     LocationType = "store"
)

// Location is a stock location. Products reference it weakly.
type Location struct {
	BaseModel
	Code    string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name    string       `gorm:"type:varchar(255);not null" json:"name"`
	Address string       `gorm:"type:text" json:"address"`
	Type    LocationType `gorm:"type:varchar(20);not null;default:warehouse" json:"type"`
}
