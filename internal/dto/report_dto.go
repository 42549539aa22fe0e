package dto

import "github.com/shopspring/decimal"

// ReportFilter selects an inclusive date range (YYYY-MM-DD). The end date
// covers the whole day.
type ReportFilter struct {
	From string `form:"from" validate:"required"`
	To   string `form:"to"   validate:"required"`
}

// TopProductEntry is one row of the best-sellers ranking.
type TopProductEntry struct {
	Name      string `json:"name"`
	TotalSold int    `json:"total_sold"`
}

// SalesReportResponse aggregates a period's sales for the report viewer and
// the PDF/Excel exporters.
type SalesReportResponse struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Sales      []SaleResponse  `json:"sales"`
	TotalCount int             `json:"total_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type TopProductsResponse struct {
	From string            `json:"from"`
	To   string            `json:"to"`
	Data []TopProductEntry `json:"data"`
}
