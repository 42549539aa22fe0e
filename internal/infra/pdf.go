package infra

// pdf.go — receipt and period-report rendering with go-pdf/fpdf.
// Receipts are A7-size thermal-style tickets; reports are A4 tables.
// Output files land under the configured export directory.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// GenerateReceiptPDF renders a printable receipt for a completed sale.
// storagePath is created if needed. Returns the path of the written file.
func GenerateReceiptPDF(sale *model.Sale, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Sistema Loja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sales Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Sale %s", shortID(sale.ID.String())), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if sale.User != nil {
		pdf.CellFormat(contentW, 4, "Seller: "+sale.User.Name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		subtotal := item.UnitPrice.Mul(decimalFromInt(item.Quantity))
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	payment := sale.PaymentMethod
	if sale.PaymentMethod == model.PaymentCredit && sale.Installments > 1 {
		payment = fmt.Sprintf("%s (%dx)", sale.PaymentMethod, sale.Installments)
	}
	pdf.CellFormat(contentW, 4, "Payment: "+payment, "", 1, "L", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateSalesReportPDF renders the period sales report as an A4 table.
func GenerateSalesReportPDF(report *dto.SalesReportResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("sales_%s_%s.pdf", report.From, report.To)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("Sales Report  %s to %s", report.From, report.To), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Generated at "+time.Now().Format("02/01/2006 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	cols := []struct {
		label string
		width float64
		align string
	}{
		{"Date", 0.20, "L"},
		{"Seller", 0.28, "L"},
		{"Payment", 0.18, "L"},
		{"Inst.", 0.10, "C"},
		{"Total", 0.24, "R"},
	}

	pdf.SetFont("Helvetica", "B", 9)
	for _, c := range cols {
		pdf.CellFormat(contentW*c.width, 6, c.label, "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, sale := range report.Sales {
		created := sale.CreatedAt
		if t, err := time.Parse(time.RFC3339, sale.CreatedAt); err == nil {
			created = t.Format("02/01/2006 15:04")
		}
		row := []string{
			created,
			sale.Seller,
			sale.PaymentMethod,
			fmt.Sprintf("%d", sale.Installments),
			"$" + sale.Total.StringFixed(2),
		}
		for i, c := range cols {
			pdf.CellFormat(contentW*c.width, 5, row[i], "", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.76, 7, fmt.Sprintf("Sales: %d", report.TotalCount), "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.24, 7, "Revenue: $"+report.Revenue.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
