package repository

import (
	"context"
	"time"

	"github.com/Michelteixeiradev/sistema-loja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementPeriodFilter selects ledger rows by time range, optionally narrowed
// to one product.
type MovementPeriodFilter struct {
	From      time.Time
	To        time.Time
	ProductID *uuid.UUID
	Page      int
	Limit     int
}

type StockMovementRepository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	// CreateTx appends inside a caller-owned transaction; it never commits.
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	ListByPeriod(ctx context.Context, filter MovementPeriodFilter) ([]model.StockMovement, int64, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) ListByPeriod(ctx context.Context, filter MovementPeriodFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Where("created_at >= ? AND created_at < ?", filter.From, filter.To)
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit

	var movements []model.StockMovement
	err := q.Preload("Product").Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movements).Error
	return movements, total, err
}
