package repository

import (
	"time"

	"go-sales-inventory/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleFilter narrows sale listings. Zero values mean "no bound".
type SaleFilter struct {
	From       *time.Time
	To         *time.Time
	SalesmanID string
}

// SaleSummary aggregates the sales matched by a filter.
type SaleSummary struct {
	Count        int64           `json:"count"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalItems   int64           `json:"totalItems"`
}

// DailySales untuk chart data
type DailySales struct {
	Date    string          `json:"date"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SaleRepository is append-only: there is no update or delete.
type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(filter SaleFilter) ([]model.Sale, error)
	FindByID(id string) (*model.Sale, error)
	Count() (int64, error)
	Summary(filter SaleFilter) (*SaleSummary, error)
	DailySales(from, to time.Time) ([]DailySales, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create inserts the sale header and its lines inside tx.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	if err := tx.Omit("Items").Create(sale).Error; err != nil {
		return err
	}
	if len(sale.Items) == 0 {
		return nil
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}
	return tx.Create(&sale.Items).Error
}

func (r *saleRepo) FindAll(filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.filtered(filter).
		Preload("Items", orderedItems).
		Order("date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id string) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Items", orderedItems).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Count(&count).Error
	return count, err
}

func (r *saleRepo) Summary(filter SaleFilter) (*SaleSummary, error) {
	summary := SaleSummary{TotalRevenue: decimal.Zero}

	var revenue decimal.NullDecimal
	row := r.filtered(filter).Model(&model.Sale{}).
		Select("COUNT(*), SUM(total_amount)").
		Row()
	if err := row.Scan(&summary.Count, &revenue); err != nil {
		return nil, err
	}
	if revenue.Valid {
		summary.TotalRevenue = revenue.Decimal
	}

	sub := r.filtered(filter).Model(&model.Sale{}).Select("id")
	var items *int64
	if err := r.db.Model(&model.SaleItem{}).
		Where("sale_id IN (?)", sub).
		Select("SUM(quantity)").
		Row().Scan(&items); err != nil {
		return nil, err
	}
	if items != nil {
		summary.TotalItems = *items
	}

	return &summary, nil
}

// DailySales groups sales per calendar day. Grouping happens in Go so the
// query stays portable between PostgreSQL and SQLite.
func (r *saleRepo) DailySales(from, to time.Time) ([]DailySales, error) {
	var sales []model.Sale
	if err := r.db.Select("id", "date", "total_amount").
		Where("date BETWEEN ? AND ?", from.UTC(), to.UTC()).
		Order("date ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}

	results := []DailySales{}
	index := map[string]int{}
	for _, sale := range sales {
		day := sale.Date.In(from.Location()).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			results = append(results, DailySales{Date: day, Revenue: decimal.Zero})
			i = len(results) - 1
			index[day] = i
		}
		results[i].Count++
		results[i].Revenue = results[i].Revenue.Add(sale.TotalAmount)
	}
	return results, nil
}

// filtered compares in UTC; sale dates are stored in UTC and SQLite compares
// them as text.
func (r *saleRepo) filtered(filter SaleFilter) *gorm.DB {
	query := r.db
	if filter.From != nil {
		query = query.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To.UTC())
	}
	if filter.SalesmanID != "" {
		query = query.Where("salesman_id = ?", filter.SalesmanID)
	}
	return query
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}
