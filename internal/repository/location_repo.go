package repository

import (
	"go-sales-inventory/internal/model"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(location *model.Location) error
	FindAll() ([]model.Location, error)
	FindByID(id string) (*model.Location, error)
	CodeTaken(code, excludeID string) (bool, error)
	Update(location *model.Location) error
	// Delete removes the location and detaches every product that pointed at it.
	Delete(id string) error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) Create(location *model.Location) error {
	return r.db.Create(location).Error
}

func (r *locationRepo) FindAll() ([]model.Location, error) {
	var locations []model.Location
	if err := r.db.Find(&locations).Error; err != nil {
		return nil, err
	}
	sortByName(locations, func(l *model.Location) string { return l.Name })
	return locations, nil
}

func (r *locationRepo) FindByID(id string) (*model.Location, error) {
	var location model.Location
	if err := r.db.First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepo) CodeTaken(code, excludeID string) (bool, error) {
	return codeTaken(r.db, &model.Location{}, code, excludeID)
}

func (r *locationRepo) Update(location *model.Location) error {
	return r.db.Model(location).
		Select("code", "name", "address", "type", "updated_by", "updated_at").
		Updates(location).Error
}

func (r *locationRepo) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("location_id = ?", id).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Location{}, "id = ?", id).Error
	})
}
