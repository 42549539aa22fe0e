package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors returned by services. Handlers map these to HTTP statuses;
// anything not in this taxonomy is treated as a storage failure.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateBarcode = errors.New("barcode already registered to another product")
	ErrProductInUse     = errors.New("product is referenced by a sale and cannot be deleted")
	ErrInvalidInput     = errors.New("invalid input")
)

// InsufficientStockError is returned when a sale requests more units than are
// on hand at commit time. It names the offending product and both quantities
// so the caller can re-prompt.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// validationError wraps ErrInvalidInput with a caller-facing message so that
// errors.Is(err, ErrInvalidInput) keeps working.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}
