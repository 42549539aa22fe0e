package infra

// excel.go — period-report export to XLSX using excelize.
// One sheet of sales rows with a header style and a totals row, mirroring
// the PDF report layout.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"

	"github.com/xuri/excelize/v2"
)

// GenerateSalesReportXLSX writes the period sales report as a spreadsheet and
// returns the path of the written file.
func GenerateSalesReportXLSX(report *dto.SalesReportResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("xlsx: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("sales_%s_%s.xlsx", report.From, report.To)
	filePath := filepath.Join(storagePath, fileName)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", err
	}

	title := fmt.Sprintf("Sales Report %s to %s", report.From, report.To)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return "", err
	}
	if err := f.MergeCell(sheet, "A1", "E1"); err != nil {
		return "", err
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Date", "Seller", "Payment", "Installments", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", err
		}
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 4
	for _, sale := range report.Sales {
		created := sale.CreatedAt
		if t, err := time.Parse(time.RFC3339, sale.CreatedAt); err == nil {
			created = t.Format("02/01/2006 15:04")
		}
		total, _ := sale.Total.Float64()
		values := []interface{}{created, sale.Seller, sale.PaymentMethod, sale.Installments, total}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
		}
		row++
	}

	row++
	revenue, _ := report.Revenue.Float64()
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Sales: %d", report.TotalCount))
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Revenue")
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), revenue)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), headerStyle)

	for i, width := range []float64{20, 28, 14, 14, 14} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, width)
	}

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("xlsx: write file: %w", err)
	}
	return filePath, nil
}
