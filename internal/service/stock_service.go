package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/model"
	"github.com/Michelteixeiradev/sistema-loja/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the stock ledger: the authoritative, append-only history of
// inventory change events, and the keeper of each product's cached stock.
//
// Direction is encoded by the movement kind, never by the sign of the
// quantity. Only "in" movements mutate the cached stock here: "initial" is
// recorded by product creation after the quantity was already stored on the
// row, and the decrement for "out" movements is owned by the sale
// transaction. Both stay consistent because they share one atomic unit with
// the ledger append. "adjustment" is a record-only correction note.
type StockService interface {
	// RecordMovement runs as its own transaction: it commits on success and
	// leaves no partial row on any failure.
	RecordMovement(ctx context.Context, userID *uuid.UUID, req dto.RecordMovementRequest) (*dto.MovementResponse, error)
	// RecordMovementTx appends within a caller-owned transaction. The caller
	// owns commit/rollback; this call never ends the transaction on its own.
	RecordMovementTx(tx *gorm.DB, m *model.StockMovement) error
	// CurrentStock returns 0 for an unknown product; it never errors on a
	// missing id in this query path.
	CurrentStock(ctx context.Context, productID uuid.UUID) int
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	Alerts(ctx context.Context) ([]dto.StockAlertResponse, error)
}

type stockService struct {
	movements   repository.StockMovementRepository
	productRepo repository.ProductRepository
}

func NewStockService(movements repository.StockMovementRepository, productRepo repository.ProductRepository) StockService {
	return &stockService{movements: movements, productRepo: productRepo}
}

func validKind(kind string) bool {
	switch kind {
	case model.MovementInitial, model.MovementIn, model.MovementOut, model.MovementAdjustment:
		return true
	}
	return false
}

func (s *stockService) RecordMovement(ctx context.Context, userID *uuid.UUID, req dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, validationError("product_id: %v", err)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
		}
		return nil, err
	}

	mov := &model.StockMovement{
		ProductID: productID,
		Kind:      req.Kind,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		UserID:    userID,
	}
	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		return s.RecordMovementTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movementToResponse(mov)
	resp.Product = product.Name
	return resp, nil
}

func (s *stockService) RecordMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	if m.Quantity <= 0 {
		return validationError("movement quantity must be positive, got %d", m.Quantity)
	}
	if !validKind(m.Kind) {
		return validationError("unknown movement kind %q", m.Kind)
	}

	if err := s.movements.CreateTx(tx, m); err != nil {
		return err
	}

	// Only manual entries move the cached stock from here. Sales decrement it
	// themselves and product creation stored the initial quantity on insert.
	if m.Kind == model.MovementIn {
		return s.productRepo.UpdateStockTx(tx, m.ProductID, m.Quantity)
	}
	return nil
}

func (s *stockService) CurrentStock(ctx context.Context, productID uuid.UUID) int {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return 0
	}
	return p.Stock
}

func (s *stockService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	from, to, err := parsePeriod(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}

	periodFilter := repository.MovementPeriodFilter{
		From:  from,
		To:    to,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if filter.ProductID != "" {
		pid, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, validationError("product_id: %v", err)
		}
		periodFilter.ProductID = &pid
	}

	movements, total, err := s.movements.ListByPeriod(ctx, periodFilter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, *movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *stockService) Alerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	products, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertResponse, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, dto.StockAlertResponse{
			ProductID: p.ID.String(),
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
		})
	}
	return alerts, nil
}

func movementToResponse(m *model.StockMovement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:        m.ID.String(),
		ProductID: m.ProductID.String(),
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.Product != nil {
		resp.Product = m.Product.Name
	}
	if m.User != nil {
		name := m.User.Name
		resp.User = &name
	}
	return resp
}

// parsePeriod turns inclusive YYYY-MM-DD bounds into a half-open time range.
// An empty "from" means the beginning of time; an empty "to" means today.
func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	var from time.Time
	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, validationError("from: %v", err)
		}
		from = parsed
	}

	to := time.Now()
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, validationError("to: %v", err)
		}
		to = parsed
	}
	// End bound covers the whole closing day. Built from calendar components
	// rather than Truncate, which rounds on UTC day boundaries.
	y, m, d := to.Date()
	to = time.Date(y, m, d, 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	if !from.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, validationError("period end %s precedes start %s", toStr, fromStr)
	}
	return from, to, nil
}
