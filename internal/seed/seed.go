// Package seed loads the default admin and the hardware store demo catalog.
package seed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-sales-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Seeder struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func New(db *gorm.DB, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, log: log.With(zap.String("component", "seed")), now: time.Now}
}

// EnsureAdmin creates the admin account unless a user with that email exists.
func (s *Seeder) EnsureAdmin(email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing model.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	admin := &model.User{
		Email:        email,
		Name:         "Admin Toko Besi",
		Role:         model.RoleAdmin,
		TokenVersion: uuid.New().String(),
	}
	if err := admin.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.log.Info("admin account created", zap.String("email", email))
	return admin, nil
}

// DemoData fills an empty catalog. It reports false when products already
// exist. Rows whose id is taken are skipped.
func (s *Seeder) DemoData() (bool, error) {
	var count int64
	if err := s.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	now := s.now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		skip := tx.Clauses(clause.OnConflict{DoNothing: true}).Session(&gorm.Session{})

		locs, prods, sms, custs := locations(), products(), salesmen(), customers()
		if err := skip.Create(&locs).Error; err != nil {
			return fmt.Errorf("seed locations: %w", err)
		}
		if err := skip.Create(&prods).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		if err := skip.Create(&sms).Error; err != nil {
			return fmt.Errorf("seed salesmen: %w", err)
		}
		if err := skip.Create(&custs).Error; err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}

		var sales int64
		if err := tx.Model(&model.Sale{}).Count(&sales).Error; err != nil {
			return err
		}
		if sales > 0 {
			return nil
		}
		for _, sale := range demoSales(now) {
			items := sale.Items
			if err := tx.Omit("Items").Create(&sale).Error; err != nil {
				return fmt.Errorf("seed sale %s: %w", sale.ID, err)
			}
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("seed items of %s: %w", sale.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.log.Info("demo data loaded")
	return true, nil
}

func locations() []model.Location {
	return []model.Location{
		{BaseModel: model.BaseModel{ID: "loc-besi-001"}, Name: "Gudang Besi Utama", Code: "GDG-BESI", Address: "Jl. Industri Baja No. 7", Type: model.LocationWarehouse},
		{BaseModel: model.BaseModel{ID: "loc-besi-002"}, Name: "Toko Besi Pusat", Code: "TOK-BESI", Address: "Jl. Raya Konstruksi No. 12", Type: model.LocationStore},
		{BaseModel: model.BaseModel{ID: "loc-besi-003"}, Name: "Toko Besi Cabang", Code: "TOK-BESI-02", Address: "Jl. Perintis No. 88", Type: model.LocationStore},
	}
}

func products() []model.Product {
	p := func(id, name, code string, price int64, stock int, unit, location string) model.Product {
		return model.Product{
			BaseModel:  model.BaseModel{ID: id},
			Name:       name,
			Code:       code,
			Price:      decimal.NewFromInt(price),
			Stock:      stock,
			Unit:       unit,
			LocationID: &location,
		}
	}
	return []model.Product{
		p("prod-besi-001", "Paku 1 inch", "PKU-001", 28000, 200, "kg", "loc-besi-002"),
		p("prod-besi-002", "Paku 2 inch", "PKU-002", 30000, 180, "kg", "loc-besi-002"),
		p("prod-besi-003", "Paku Beton 2 inch", "PKB-002", 45000, 80, "kg", "loc-besi-002"),
		p("prod-besi-004", "Paku Roofing", "PKR-001", 38000, 90, "kg", "loc-besi-002"),
		p("prod-besi-005", "Paku Bendrat (Kawat Ikat)", "KWB-001", 22000, 300, "kg", "loc-besi-002"),
		p("prod-besi-006", "Sekrup Gypsum 1 inch", "SKG-001", 150, 10000, "pcs", "loc-besi-002"),
		p("prod-besi-007", "Baut Hex M10 x 50", "BHT-010", 2500, 2000, "pcs", "loc-besi-002"),
		p("prod-besi-008", "Mur Hex M10", "MRH-010", 800, 4000, "pcs", "loc-besi-002"),
		p("prod-besi-009", "Dynabolt M10", "DNB-010", 6500, 800, "pcs", "loc-besi-002"),
		p("prod-besi-010", "Besi Siku 40x40x4mm (6m)", "BSK-4040", 175000, 120, "batang", "loc-besi-001"),
		p("prod-besi-011", "Besi Hollow 40x40x1.6mm (6m)", "BHL-4040", 130000, 150, "batang", "loc-besi-001"),
		p("prod-besi-012", "Plat Besi 1.2mm (1.2x2.4m)", "PLT-012", 450000, 35, "lembar", "loc-besi-001"),
		p("prod-besi-013", "Wiremesh M6 (2.1x5.4m)", "WRM-006", 550000, 25, "lembar", "loc-besi-001"),
		p("prod-besi-014", "Mata Gerinda Potong 4 inch", "GRD-004", 15000, 500, "pcs", "loc-besi-003"),
		p("prod-besi-015", "Elektroda Las RB-26 (2.6mm)", "LAS-026", 65000, 120, "kg", "loc-besi-003"),
	}
}

func salesmen() []model.Salesman {
	return []model.Salesman{
		{BaseModel: model.BaseModel{ID: "sm-besi-001"}, Name: "Rizky Firmansyah", Code: "SM-BESI-01", Phone: "0812-1111-2222", Area: "Kota", Status: model.StatusActive},
		{BaseModel: model.BaseModel{ID: "sm-besi-002"}, Name: "Siti Aisyah", Code: "SM-BESI-02", Phone: "0813-3333-4444", Area: "Kabupaten", Status: model.StatusActive},
	}
}

func customers() []model.Customer {
	return []model.Customer{
		{BaseModel: model.BaseModel{ID: "cust-besi-001"}, Code: "CUST-BESI-001", Name: "CV Baja Abadi", Phone: "021-7001001", Address: "Jl. Proyek No. 3", Status: model.StatusActive},
		{BaseModel: model.BaseModel{ID: "cust-besi-002"}, Code: "CUST-BESI-002", Name: "PT Konstruksi Maju", Phone: "021-7001002", Address: "Jl. Beton Raya No. 10", Status: model.StatusActive},
		{BaseModel: model.BaseModel{ID: "cust-besi-003"}, Code: "CUST-BESI-003", Name: "Toko Bangunan Sejahtera", Phone: "021-7001003", Address: "Jl. Perumahan Baru Blok A1", Status: model.StatusActive},
	}
}

type line struct {
	productID, name, code string
	quantity              int
	price                 int64
}

func demoSale(id, salesmanID, salesmanName, customerID, customerName string, date time.Time, lines ...line) model.Sale {
	sale := model.Sale{
		ID:           id,
		SalesmanID:   salesmanID,
		SalesmanName: salesmanName,
		CustomerID:   &customerID,
		CustomerName: customerName,
		Date:         date,
		TotalAmount:  decimal.Zero,
		CreatedBy:    "seed",
	}
	for i, l := range lines {
		price := decimal.NewFromInt(l.price)
		total := price.Mul(decimal.NewFromInt(int64(l.quantity)))
		sale.Items = append(sale.Items, model.SaleItem{
			SaleID:      id,
			LineNo:      i + 1,
			ProductID:   l.productID,
			ProductName: l.name,
			ProductCode: l.code,
			Quantity:    l.quantity,
			Price:       price,
			Total:       total,
		})
		sale.TotalAmount = sale.TotalAmount.Add(total)
	}
	return sale
}

func demoSales(now time.Time) []model.Sale {
	return []model.Sale{
		demoSale("sale-besi-001", "sm-besi-001", "Rizky Firmansyah", "cust-besi-001", "CV Baja Abadi", now.Add(-3*24*time.Hour),
			line{"prod-besi-003", "Paku Beton 2 inch", "PKB-002", 5, 45000},
			line{"prod-besi-005", "Paku Bendrat (Kawat Ikat)", "KWB-001", 10, 22000},
			line{"prod-besi-009", "Dynabolt M10", "DNB-010", 50, 6500},
		),
		demoSale("sale-besi-002", "sm-besi-002", "Siti Aisyah", "cust-besi-002", "PT Konstruksi Maju", now.Add(-24*time.Hour),
			line{"prod-besi-010", "Besi Siku 40x40x4mm (6m)", "BSK-4040", 20, 175000},
			line{"prod-besi-011", "Besi Hollow 40x40x1.6mm (6m)", "BHL-4040", 30, 130000},
		),
		demoSale("sale-besi-003", "sm-besi-001", "Rizky Firmansyah", "cust-besi-003", "Toko Bangunan Sejahtera", now.Add(-10*time.Hour),
			line{"prod-besi-006", "Sekrup Gypsum 1 inch", "SKG-001", 2000, 150},
			line{"prod-besi-008", "Mur Hex M10", "MRH-010", 500, 800},
			line{"prod-besi-007", "Baut Hex M10 x 50", "BHT-010", 500, 2500},
		),
	}
}
