package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement kinds. Quantity is always positive; direction is encoded by
// the kind: "initial" and "in" increase stock, "out" decreases it.
// "adjustment" is a manual correction note and does not mutate stock.
const (
	MovementInitial    = "initial"
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// StockMovement is one row of the append-only stock ledger. Rows are never
// updated or deleted individually; they only disappear when their product
// is deleted (cascade).
type StockMovement struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind      string     `gorm:"type:varchar(20);not null"`
	Quantity  int        `gorm:"not null"`
	Reason    string
	UserID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"index"`

	// Movements die with their product; the deletion-safety rule lives on
	// sale_items, not here.
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	User    *User    `gorm:"foreignKey:UserID"`
}
