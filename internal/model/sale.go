package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentCash   = "cash"
	PaymentDebit  = "debit"
	PaymentCredit = "credit"
)

// Sale is an immutable checkout record. There is no edit or void path:
// a sale either exists with all its items and stock effects, or not at all.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	// Installments is always 1 except for credit payments.
	Installments int             `gorm:"not null;default:1"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time       `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
	// Deleting a sale would cascade to its items, but no delete path exists.
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is one product/quantity/price line within a sale. UnitPrice is
// captured at sale time, so later catalog price edits never change history.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// RESTRICT keeps products deletable only while no sale references them.
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}
