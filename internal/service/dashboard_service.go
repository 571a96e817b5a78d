package service

import (
	"time"

	"go-sales-inventory/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardStats is the overview card data.
type DashboardStats struct {
	TotalProducts  int             `json:"totalProducts"`
	TotalStock     int             `json:"totalStock"`
	LowStockCount  int             `json:"lowStockCount"`
	StockValuation decimal.Decimal `json:"stockValuation"`
	SalesToday     int64           `json:"salesToday"`
	RevenueToday   decimal.Decimal `json:"revenueToday"`
	TotalSales     int64           `json:"totalSales"`
}

type DashboardService interface {
	GetSalesTrend(days int) ([]repository.DailySales, error)
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	productRepo       repository.ProductRepository
	saleRepo          repository.SaleRepository
	lowStockThreshold int
	loc               *time.Location
	now               func() time.Time
}

func NewDashboardService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, lowStockThreshold int, loc *time.Location) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{
		productRepo:       productRepo,
		saleRepo:          saleRepo,
		lowStockThreshold: lowStockThreshold,
		loc:               loc,
		now:               time.Now,
	}
}

// GetSalesTrend returns one entry per day for the last days days, today
// included. Days without sales are reported with zero values.
func (s *dashboardService) GetSalesTrend(days int) ([]repository.DailySales, error) {
	if days <= 0 {
		days = 7
	}
	today := startOfDay(s.now().In(s.loc))
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1).Add(-time.Nanosecond)

	rows, err := s.saleRepo.DailySales(from, to)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]repository.DailySales, len(rows))
	for _, row := range rows {
		byDay[row.Date] = row
	}

	trend := make([]repository.DailySales, 0, days)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if row, ok := byDay[key]; ok {
			trend = append(trend, row)
			continue
		}
		trend = append(trend, repository.DailySales{Date: key, Revenue: decimal.Zero})
	}
	return trend, nil
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:  len(products),
		StockValuation: decimal.Zero,
		RevenueToday:   decimal.Zero,
	}
	for _, p := range products {
		stats.TotalStock += p.Stock
		if p.Stock < s.lowStockThreshold {
			stats.LowStockCount++
		}
		stats.StockValuation = stats.StockValuation.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	today := startOfDay(s.now().In(s.loc))
	end := today.AddDate(0, 0, 1).Add(-time.Nanosecond)
	summary, err := s.saleRepo.Summary(repository.SaleFilter{From: &today, To: &end})
	if err != nil {
		return nil, err
	}
	stats.SalesToday = summary.Count
	stats.RevenueToday = summary.TotalRevenue

	if stats.TotalSales, err = s.saleRepo.Count(); err != nil {
		return nil, err
	}
	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
