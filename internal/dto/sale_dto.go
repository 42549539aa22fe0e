package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaleItemRequest carries the unit price the cashier charged, which may differ
// from the current catalog price; it is stored verbatim on the line item.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

type RegisterSaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash debit credit"`
	Installments  int               `json:"installments"   validate:"omitempty,min=1"`
	Total         decimal.Decimal   `json:"total"          validate:"required"`
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
// From/To are inclusive dates (YYYY-MM-DD); To covers the whole day.
type SaleFilter struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	Seller        string             `json:"seller"`
	PaymentMethod string             `json:"payment_method"`
	Installments  int                `json:"installments"`
	Total         decimal.Decimal    `json:"total"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
