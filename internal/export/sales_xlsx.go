package export

import (
	"fmt"
	"io"
	"time"

	"go-sales-inventory/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	salesSheet = "Sales"
	itemsSheet = "Items"
)

var (
	salesHeader = []interface{}{"Sale ID", "Date", "Salesman", "Customer", "Items", "Total"}
	itemsHeader = []interface{}{"Sale ID", "Date", "Product Code", "Product", "Quantity", "Price", "Total"}
)

// WriteSales renders one row per sale on the "Sales" sheet and one row per
// line on the "Items" sheet. Dates are shown in loc.
func WriteSales(w io.Writer, sales []model.Sale, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", salesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := file.NewSheet(itemsSheet); err != nil {
		return fmt.Errorf("create items sheet: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	money, err := file.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	if err := writeHeader(file, salesSheet, salesHeader, bold); err != nil {
		return err
	}
	if err := writeHeader(file, itemsSheet, itemsHeader, bold); err != nil {
		return err
	}

	itemRow := 2
	for i, sale := range sales {
		row := i + 2
		date := sale.Date.In(loc).Format("2006-01-02 15:04")
		total, _ := sale.TotalAmount.Float64()

		if err := setRow(file, salesSheet, row, []interface{}{
			sale.ID, date, sale.SalesmanName, sale.CustomerName, sale.ItemCount(), total,
		}); err != nil {
			return err
		}
		if err := file.SetCellStyle(salesSheet, cellName(6, row), cellName(6, row), money); err != nil {
			return fmt.Errorf("style sales row %d: %w", row, err)
		}

		for _, item := range sale.Items {
			price, _ := item.Price.Float64()
			lineTotal, _ := item.Total.Float64()
			if err := setRow(file, itemsSheet, itemRow, []interface{}{
				sale.ID, date, item.ProductCode, item.ProductName, item.Quantity, price, lineTotal,
			}); err != nil {
				return err
			}
			if err := file.SetCellStyle(itemsSheet, cellName(6, itemRow), cellName(7, itemRow), money); err != nil {
				return fmt.Errorf("style items row %d: %w", itemRow, err)
			}
			itemRow++
		}
	}

	_ = file.SetColWidth(salesSheet, "A", "A", 38)
	_ = file.SetColWidth(salesSheet, "B", "D", 22)
	_ = file.SetColWidth(itemsSheet, "A", "A", 38)
	_ = file.SetColWidth(itemsSheet, "B", "D", 22)

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeHeader(file *excelize.File, sheet string, header []interface{}, style int) error {
	if err := setRow(file, sheet, 1, header); err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, cellName(1, 1), cellName(len(header), 1), style); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}

func setRow(file *excelize.File, sheet string, row int, values []interface{}) error {
	if err := file.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
