package repository

import (
	"go-sales-inventory/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	CodeTaken(code, excludeID string) (bool, error)
	Update(product *model.Product) error
	Delete(id string) error

	// LockByIDs loads the given products with a row lock (FOR UPDATE) in id
	// order. Unknown ids are simply absent from the result.
	LockByIDs(tx *gorm.DB, ids []string) ([]model.Product, error)
	UpdateStock(tx *gorm.DB, id string, newStock int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, err
	}
	sortByName(products, func(p *model.Product) string { return p.Name })
	return products, nil
}

func (r *productRepo) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) CodeTaken(code, excludeID string) (bool, error) {
	return codeTaken(r.db, &model.Product{}, code, excludeID)
}

// Update writes the catalog fields only. Stock moves through UpdateStock.
func (r *productRepo) Update(product *model.Product) error {
	return r.db.Model(product).
		Select("code", "name", "price", "unit", "location_id", "updated_by", "updated_at").
		Updates(product).Error
}

func (r *productRepo) Delete(id string) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) LockByIDs(tx *gorm.DB, ids []string) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

// UpdateStock menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
func (r *productRepo) UpdateStock(tx *gorm.DB, id string, newStock int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      newStock,
			"updated_by": updatedBy,
		}).Error
}
