package service_test

import (
	"context"
	"testing"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/model"
	"github.com/Michelteixeiradev/sistema-loja/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStockSvc() (service.StockService, *stubProductRepo, *stubMovementRepo) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	return service.NewStockService(movementRepo, productRepo), productRepo, movementRepo
}

func TestRecordMovement_InIncrementsStock(t *testing.T) {
	svc, productRepo, movementRepo := buildStockSvc()
	p := seedProduct(productRepo, "Beans 1kg", "7892000200017", 5, 2, 9)
	userID := uuid.New()

	resp, err := svc.RecordMovement(context.Background(), &userID, dto.RecordMovementRequest{
		ProductID: p.ID.String(),
		Kind:      model.MovementIn,
		Quantity:  7,
		Reason:    "supplier delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MovementIn, resp.Kind)
	assert.Equal(t, "Beans 1kg", resp.Product)

	assert.Equal(t, 12, productRepo.products[p.ID].Stock)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, "supplier delivery", movementRepo.movements[0].Reason)
}

func TestRecordMovement_AdjustmentIsRecordOnly(t *testing.T) {
	svc, productRepo, movementRepo := buildStockSvc()
	p := seedProduct(productRepo, "Flour 1kg", "7892000200024", 5, 2, 4)

	_, err := svc.RecordMovement(context.Background(), nil, dto.RecordMovementRequest{
		ProductID: p.ID.String(),
		Kind:      model.MovementAdjustment,
		Quantity:  3,
		Reason:    "count correction after audit",
	})
	require.NoError(t, err)

	// The note lands in the ledger but the cached stock does not move
	assert.Equal(t, 5, productRepo.products[p.ID].Stock)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, model.MovementAdjustment, movementRepo.movements[0].Kind)
}

func TestRecordMovement_RejectsNonPositiveQuantity(t *testing.T) {
	svc, productRepo, movementRepo := buildStockSvc()
	p := seedProduct(productRepo, "Salt", "7892000200031", 5, 2, 2)

	for _, qty := range []int{0, -4} {
		_, err := svc.RecordMovement(context.Background(), nil, dto.RecordMovementRequest{
			ProductID: p.ID.String(),
			Kind:      model.MovementIn,
			Quantity:  qty,
			Reason:    "bad quantity",
		})
		require.ErrorIs(t, err, service.ErrInvalidInput)
	}
	assert.Empty(t, movementRepo.movements)
	assert.Equal(t, 5, productRepo.products[p.ID].Stock)
}

func TestRecordMovement_RejectsUnknownKind(t *testing.T) {
	svc, productRepo, _ := buildStockSvc()
	p := seedProduct(productRepo, "Oil", "7892000200048", 5, 2, 7)

	_, err := svc.RecordMovement(context.Background(), nil, dto.RecordMovementRequest{
		ProductID: p.ID.String(),
		Kind:      "restock",
		Quantity:  1,
		Reason:    "typo in kind",
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestRecordMovement_UnknownProduct(t *testing.T) {
	svc, _, _ := buildStockSvc()
	_, err := svc.RecordMovement(context.Background(), nil, dto.RecordMovementRequest{
		ProductID: uuid.NewString(),
		Kind:      model.MovementIn,
		Quantity:  1,
		Reason:    "no such product",
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCurrentStock_UnknownProductIsZero(t *testing.T) {
	svc, productRepo, _ := buildStockSvc()
	p := seedProduct(productRepo, "Eggs", "7892000200055", 30, 6, 5)

	assert.Equal(t, 30, svc.CurrentStock(context.Background(), p.ID))
	assert.Equal(t, 0, svc.CurrentStock(context.Background(), uuid.New()))
}

func TestListMovements_RejectsInvertedPeriod(t *testing.T) {
	svc, _, _ := buildStockSvc()
	_, err := svc.ListMovements(context.Background(), dto.MovementFilter{
		From: "2026-03-01",
		To:   "2026-02-01",
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestListMovements_FiltersByProduct(t *testing.T) {
	svc, productRepo, _ := buildStockSvc()
	a := seedProduct(productRepo, "A", "7892000200062", 5, 2, 1)
	b := seedProduct(productRepo, "B", "7892000200079", 5, 2, 1)

	for _, p := range []uuid.UUID{a.ID, a.ID, b.ID} {
		_, err := svc.RecordMovement(context.Background(), nil, dto.RecordMovementRequest{
			ProductID: p.String(),
			Kind:      model.MovementIn,
			Quantity:  1,
			Reason:    "restock run",
		})
		require.NoError(t, err)
	}

	list, err := svc.ListMovements(context.Background(), dto.MovementFilter{ProductID: a.ID.String(), Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
}

func TestListMovements_NormalizesPagination(t *testing.T) {
	svc, productRepo, _ := buildStockSvc()
	p := seedProduct(productRepo, "C", "7892000200093", 5, 2, 1)

	_, err := svc.RecordMovement(context.Background(), nil, dto.RecordMovementRequest{
		ProductID: p.ID.String(),
		Kind:      model.MovementIn,
		Quantity:  1,
		Reason:    "restock run",
	})
	require.NoError(t, err)

	// Zero-value paging means first page with the default size, and the
	// response reports the values actually used
	list, err := svc.ListMovements(context.Background(), dto.MovementFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 100, list.Limit)
}

func TestAlerts_ListsAtOrBelowThreshold(t *testing.T) {
	svc, productRepo, _ := buildStockSvc()
	seedProduct(productRepo, "At threshold", "7892000200086", 5, 5, 1)
	seedProduct(productRepo, "Below", "7892000200093", 1, 5, 1)
	seedProduct(productRepo, "Healthy", "7892000200109", 50, 5, 1)

	alerts, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	for _, a := range alerts {
		assert.LessOrEqual(t, a.Stock, a.MinStock)
	}
}
