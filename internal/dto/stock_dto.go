package dto

// RecordMovementRequest registers a manual ledger event. Quantity is always
// positive; the kind encodes the direction. Only "in" movements mutate the
// product's cached stock — "adjustment" is a record-only correction note.
type RecordMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Kind      string `json:"kind"       validate:"required,oneof=in adjustment"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Reason    string `json:"reason"     validate:"required,min=3"`
}

// MovementFilter is bound from the query string of GET /v1/stock/movements.
type MovementFilter struct {
	From      string `form:"from"`
	To        string `form:"to"`
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovementResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Product   string  `json:"product"`
	Kind      string  `json:"kind"`
	Quantity  int     `json:"quantity"`
	Reason    string  `json:"reason"`
	User      *string `json:"user"`
	CreatedAt string  `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// StockAlertResponse flags products at or below their minimum threshold.
type StockAlertResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}
