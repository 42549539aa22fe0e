package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/model"
	"github.com/Michelteixeiradev/sistema-loja/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultMinStock = 5

// ProductService is the catalog manager: product CRUD with barcode
// uniqueness and deletion-safety rules. Stock is set once at creation;
// afterwards every quantity change goes through the stock ledger.
type ProductService interface {
	Create(ctx context.Context, userID *uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo     repository.ProductRepository
	saleRepo repository.SaleRepository
	stock    StockService
}

func NewProductService(repo repository.ProductRepository, saleRepo repository.SaleRepository, stock StockService) ProductService {
	return &productService{repo: repo, saleRepo: saleRepo, stock: stock}
}

// normalizeBarcode maps empty/whitespace barcodes to nil so the unique index
// only applies to real values.
func normalizeBarcode(barcode *string) *string {
	if barcode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*barcode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *productService) barcodeTaken(ctx context.Context, barcode string, selfID uuid.UUID) (bool, error) {
	existing, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != selfID, nil
}

func (s *productService) Create(ctx context.Context, userID *uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.SalePrice.LessThanOrEqual(decimal.Zero) {
		return nil, validationError("sale price must be positive")
	}
	if req.CostPrice.IsNegative() {
		return nil, validationError("cost price cannot be negative")
	}
	if req.InitialStock < 0 {
		return nil, validationError("initial stock cannot be negative")
	}

	barcode := normalizeBarcode(req.Barcode)
	if barcode != nil {
		taken, err := s.barcodeTaken(ctx, *barcode, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateBarcode
		}
	}

	minStock := defaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	product := model.Product{
		Barcode:   barcode,
		Name:      req.Name,
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		Stock:     req.InitialStock,
		Supplier:  req.Supplier,
		MinStock:  minStock,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &product); err != nil {
			// Backstop for a concurrent insert racing past the pre-check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateBarcode
			}
			return err
		}
		if req.InitialStock > 0 {
			// Record-only: the quantity is already stored on the row, this
			// entry just seeds the ledger history.
			return s.stock.RecordMovementTx(tx, &model.StockMovement{
				ProductID: product.ID,
				Kind:      model.MovementInitial,
				Quantity:  req.InitialStock,
				Reason:    "initial registration",
				UserID:    userID,
			})
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return productToResponse(&product), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("barcode %s: %w", barcode, ErrNotFound)
		}
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if req.Barcode != nil {
		barcode := normalizeBarcode(req.Barcode)
		if barcode != nil {
			taken, err := s.barcodeTaken(ctx, *barcode, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrDuplicateBarcode
			}
		}
		product.Barcode = barcode
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, validationError("cost price cannot be negative")
		}
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		if req.SalePrice.LessThanOrEqual(decimal.Zero) {
			return nil, validationError("sale price must be positive")
		}
		product.SalePrice = *req.SalePrice
	}
	if req.Supplier != nil {
		product.Supplier = req.Supplier
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, validationError("min stock cannot be negative")
		}
		product.MinStock = *req.MinStock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateBarcode
		}
		return nil, err
	}
	return productToResponse(product), nil
}

// Delete removes a product and, through the FK cascade, its stock-movement
// history. A product that ever appeared in a sale line item is protected by
// the restrict constraint and reported as in-use with no side effects.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.saleRepo.CountItemsByProduct(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductInUse
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				// A sale slipped in between the count and the delete.
				return ErrProductInUse
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", id, ErrNotFound)
			}
			return err
		}
		return nil
	})
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID.String(),
		Barcode:   p.Barcode,
		Name:      p.Name,
		CostPrice: p.CostPrice,
		SalePrice: p.SalePrice,
		Stock:     p.Stock,
		Supplier:  p.Supplier,
		MinStock:  p.MinStock,
		LowStock:  p.Stock <= p.MinStock,
	}
}
