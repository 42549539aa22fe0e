package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Barcode      *string         `json:"barcode"       validate:"omitempty,max=18"`
	Name         string          `json:"name"          validate:"required,min=2,max=120"`
	CostPrice    decimal.Decimal `json:"cost_price"    validate:"min=0"`
	SalePrice    decimal.Decimal `json:"sale_price"    validate:"required,gt=0"`
	InitialStock int             `json:"initial_stock" validate:"min=0"`
	Supplier     *string         `json:"supplier"`
	MinStock     *int            `json:"min_stock"     validate:"omitempty,min=0"`
}

// UpdateProductRequest deliberately has no stock field: quantity changes are
// routed through the stock ledger, never through a catalog edit.
type UpdateProductRequest struct {
	Barcode   *string          `json:"barcode"    validate:"omitempty,max=18"`
	Name      *string          `json:"name"       validate:"omitempty,min=2,max=120"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	Supplier  *string          `json:"supplier"`
	MinStock  *int             `json:"min_stock"  validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
// Search matches a substring of either name or barcode.
type ProductFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID        string          `json:"id"`
	Barcode   *string         `json:"barcode"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int             `json:"stock"`
	Supplier  *string         `json:"supplier"`
	MinStock  int             `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceCheckResponse is returned by the public barcode price lookup.
type PriceCheckResponse struct {
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int             `json:"stock"`
}
