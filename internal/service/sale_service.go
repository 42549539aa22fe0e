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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService orchestrates checkout: the sale header, its line items, the
// stock decrements and the ledger debits are written as one atomic unit.
type SaleService interface {
	RegisterSale(ctx context.Context, userID uuid.UUID, req dto.RegisterSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	stock       StockService
}

func NewSaleService(repo repository.SaleRepository, productRepo repository.ProductRepository, stock StockService) SaleService {
	return &saleService{repo: repo, productRepo: productRepo, stock: stock}
}

// ── RegisterSale ──────────────────────────────────────────────────────────────
// Single atomic transaction:
//  1. Insert the sale header and obtain its id.
//  2. For each line item, in input order: re-read the product under a row
//     lock (never trusting the caller's earlier stock view), verify
//     quantity <= on-hand, insert the item with the supplied unit price,
//     decrement the cached stock, append an "out" ledger entry tagged with
//     the sale id and acting user.
//  3. Commit. Any failure rolls back every write — the sale fully exists or
//     does not exist at all.
//
// The re-read under lock is the only race-protection point: two concurrent
// sales competing for the same units serialize here, so at most one passes
// the check for the last unit of inventory.

func (s *saleService) RegisterSale(ctx context.Context, userID uuid.UUID, req dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, validationError("a sale needs at least one line item")
	}
	if req.Installments == 0 {
		req.Installments = 1
	}
	if req.Installments < 1 {
		return nil, validationError("installments must be >= 1, got %d", req.Installments)
	}
	if req.PaymentMethod != model.PaymentCredit && req.Installments != 1 {
		return nil, validationError("installments are only allowed for credit payments")
	}
	switch req.PaymentMethod {
	case model.PaymentCash, model.PaymentDebit, model.PaymentCredit:
	default:
		return nil, validationError("unknown payment method %q", req.PaymentMethod)
	}

	// Pre-parse ids and verify the charged total against the line items
	// before touching the store.
	type parsedItem struct {
		productID uuid.UUID
		quantity  int
		unitPrice decimal.Decimal
	}
	parsed := make([]parsedItem, 0, len(req.Items))
	computed := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, validationError("product_id %q: %v", item.ProductID, err)
		}
		if item.Quantity <= 0 {
			return nil, validationError("quantity must be positive, got %d", item.Quantity)
		}
		parsed = append(parsed, parsedItem{productID: pid, quantity: item.Quantity, unitPrice: item.UnitPrice})
		computed = computed.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !computed.Equal(req.Total) {
		return nil, validationError("total %s does not match line items (%s)", req.Total, computed)
	}

	sale := model.Sale{
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
		Installments:  req.Installments,
		Total:         req.Total,
	}
	productNames := make([]string, len(parsed))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		for i, item := range parsed {
			product, err := s.productRepo.FindByIDForUpdateTx(tx, item.productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", item.productID, ErrNotFound)
				}
				return err
			}
			productNames[i] = product.Name

			if item.quantity > product.Stock {
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.quantity,
					Available:   product.Stock,
				}
			}

			if err := s.repo.CreateItemTx(tx, &model.SaleItem{
				SaleID:    sale.ID,
				ProductID: item.productID,
				Quantity:  item.quantity,
				UnitPrice: item.unitPrice,
			}); err != nil {
				return err
			}

			if err := s.productRepo.UpdateStockTx(tx, item.productID, -item.quantity); err != nil {
				return err
			}

			uid := userID
			if err := s.stock.RecordMovementTx(tx, &model.StockMovement{
				ProductID: item.productID,
				Kind:      model.MovementOut,
				Quantity:  item.quantity,
				Reason:    fmt.Sprintf("Sale #%s", sale.ID),
				UserID:    &uid,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.SaleResponse{
		ID:            sale.ID.String(),
		UserID:        userID.String(),
		PaymentMethod: sale.PaymentMethod,
		Installments:  sale.Installments,
		Total:         sale.Total,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}
	for i, item := range parsed {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID: item.productID.String(),
			Product:   productNames[i],
			Quantity:  item.quantity,
			UnitPrice: item.unitPrice,
			Subtotal:  item.unitPrice.Mul(decimal.NewFromInt(int64(item.quantity))),
		})
	}
	return resp, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sale %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	from, to, err := parsePeriod(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	sales, total, err := s.repo.ListByPeriod(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID.String(),
		UserID:        s.UserID.String(),
		PaymentMethod: s.PaymentMethod,
		Installments:  s.Installments,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
	if s.User != nil {
		resp.Seller = s.User.Name
	}
	for _, item := range s.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID: item.ProductID.String(),
			Product:   name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return resp
}
