package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry plus its cached on-hand stock.
// Stock is set once at creation and afterwards only changes through
// ledger-backed operations (sales, manual entries); the invariant is
// stock == initial + sum(in) - sum(out) over the product's movements.
type Product struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Barcode is optional; non-null values are unique. Empty strings are
	// normalized to NULL before insert so the unique index ignores them.
	Barcode   *string         `gorm:"uniqueIndex"`
	Name      string          `gorm:"index;not null"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2)"`
	SalePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0;check:stock >= 0"`
	Supplier  *string
	// MinStock is a low-stock flagging threshold only — never enforced.
	MinStock  int `gorm:"not null;default:5"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
