package repository

import (
	"go-sales-inventory/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id string) (*model.Customer, error)
	CodeTaken(code, excludeID string) (bool, error)
	Update(customer *model.Customer) error
	Delete(id string) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.Find(&customers).Error; err != nil {
		return nil, err
	}
	sortByName(customers, func(c *model.Customer) string { return c.Name })
	return customers, nil
}

func (r *customerRepo) FindByID(id string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) CodeTaken(code, excludeID string) (bool, error) {
	return codeTaken(r.db, &model.Customer{}, code, excludeID)
}

// Update never touches created_at.
func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Model(customer).
		Select("code", "name", "phone", "address", "status", "updated_by", "updated_at").
		Updates(customer).Error
}

func (r *customerRepo) Delete(id string) error {
	return r.db.Delete(&model.Customer{}, "id = ?", id).Error
}
