package repository

import (
	"context"
	"time"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TopProductRow is the aggregate produced by the best-sellers query.
type TopProductRow struct {
	Name      string
	TotalSold int
}

type SaleRepository interface {
	// CreateTx / CreateItemTx write inside the caller-owned sale transaction.
	// Line items are inserted one by one, in input order, after each stock check.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	CreateItemTx(tx *gorm.DB, item *model.SaleItem) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	ListByPeriod(ctx context.Context, from, to time.Time, filter dto.SaleFilter) ([]model.Sale, int64, error)
	// CountItemsByProduct backs the deletion-safety rule: a product that ever
	// appeared in a sale cannot be removed.
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error)

	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) CreateItemTx(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("User").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) ListByPeriod(ctx context.Context, from, to time.Time, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("created_at >= ? AND created_at < ?", from, to)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *saleRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error) {
	var rows []TopProductRow
	err := r.db.WithContext(ctx).
		Table("sale_items").
		Select("products.name AS name, SUM(sale_items.quantity) AS total_sold").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sales.created_at >= ? AND sales.created_at < ?", from, to).
		Group("products.id, products.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
