package repository

import (
	"go-sales-inventory/internal/model"

	"gorm.io/gorm"
)

type SalesmanRepository interface {
	Create(salesman *model.Salesman) error
	FindAll() ([]model.Salesman, error)
	FindByID(id string) (*model.Salesman, error)
	CodeTaken(code, excludeID string) (bool, error)
	Update(salesman *model.Salesman) error
	Delete(id string) error
}

type salesmanRepo struct {
	db *gorm.DB
}

func NewSalesmanRepo(db *gorm.DB) SalesmanRepository {
	return &salesmanRepo{db}
}

func (r *salesmanRepo) Create(salesman *model.Salesman) error {
	return r.db.Create(salesman).Error
}

func (r *salesmanRepo) FindAll() ([]model.Salesman, error) {
	var salesmen []model.Salesman
	if err := r.db.Find(&salesmen).Error; err != nil {
		return nil, err
	}
	sortByName(salesmen, func(s *model.Salesman) string { return s.Name })
	return salesmen, nil
}

func (r *salesmanRepo) FindByID(id string) (*model.Salesman, error) {
	var salesman model.Salesman
	if err := r.db.First(&salesman, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &salesman, nil
}

func (r *salesmanRepo) CodeTaken(code, excludeID string) (bool, error) {
	return codeTaken(r.db, &model.Salesman{}, code, excludeID)
}

func (r *salesmanRepo) Update(salesman *model.Salesman) error {
	return r.db.Model(salesman).
		Select("code", "name", "phone", "area", "status", "updated_by", "updated_at").
		Updates(salesman).Error
}

func (r *salesmanRepo) Delete(id string) error {
	return r.db.Delete(&model.Salesman{}, "id = ?", id).Error
}
