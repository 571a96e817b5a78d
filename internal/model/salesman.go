package model

type Salesman struct {
	BaseModel
	Code   string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	Phone  string `gorm:"type:varchar(30)" json:"phone"`
	Area   string `gorm:"type:varchar(100)" json:"area"`
	Status Status `gorm:"type:varchar(20);not null;default:active" json:"status"`
}

// TableName keeps the plural used by the API ("salesmen").
func (Salesman) TableName() string {
	return "salesmen"
}
