package model

type Customer struct {
	BaseModel
	Code    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Address string `gorm:"type:text" json:"address"`
	Status  Status `gorm:"type:varchar(20);not null;default:active" json:"status"`
}
