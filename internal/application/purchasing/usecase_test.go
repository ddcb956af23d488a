package purchasing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/application/purchasing"
	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/repository"
	"github.com/fardsis/fsis-api/pkg/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks de repositorios
// ──────────────────────────────────────────────────────────────────────────────

type MockPurchaseRepo struct{ mock.Mock }

func (m *MockPurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Purchase), args.Error(1)
}
func (m *MockPurchaseRepo) List(ctx context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Purchase), args.Int(1), args.Error(2)
}
func (m *MockPurchaseRepo) UpdateStatus(ctx context.Context, id string, status entity.PurchaseStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockMovementRepo struct{ mock.Mock }

func (m *MockMovementRepo) Create(ctx context.Context, mv *entity.StockMovement) error {
	return m.Called(ctx, mv).Error(0)
}
func (m *MockMovementRepo) ListByTransaction(ctx context.Context, id string) ([]*entity.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.StockMovement), args.Error(1)
}

type MockItemRepo struct{ mock.Mock }

func (m *MockItemRepo) Create(ctx context.Context, it *entity.Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Item), args.Error(1)
}
func (m *MockItemRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entity.Item), args.Error(1)
}
func (m *MockItemRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Item, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, it *entity.Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *MockItemRepo) IncrementStock(ctx context.Context, itemID string, delta decimal.Decimal) error {
	return m.Called(ctx, itemID, delta).Error(0)
}

type MockDistributorRepo struct{ mock.Mock }

func (m *MockDistributorRepo) Create(ctx context.Context, d *entity.Distributor) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDistributorRepo) GetByID(ctx context.Context, id string) (*entity.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Distributor), args.Error(1)
}
func (m *MockDistributorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Distributor, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Distributor), args.Error(1)
}

// fakeTxRunner ejecuta el callback con los mocks; no hay DB real, así que la
// "transacción" solo propaga el error del callback como haría un rollback.
type fakeTxRunner struct {
	purchases *MockPurchaseRepo
	movements *MockMovementRepo
	items     *MockItemRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.PurchaseRepository,
	repository.StockMovementRepository,
	repository.ItemRepository,
) error) error {
	return fn(r.purchases, r.movements, r.items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

const (
	distributorID = "11111111-1111-1111-1111-111111111111"
	itemID        = "22222222-2222-2222-2222-222222222222"
	userID        = "33333333-3333-3333-3333-333333333333"
)

func newUseCase(tx *fakeTxRunner, purchases *MockPurchaseRepo, distributors *MockDistributorRepo, items *MockItemRepo) *purchasing.PurchaseUseCase {
	return purchasing.NewPurchaseUseCase(tx, purchases, distributors, items, tx.movements, d("0.12"), money.NewFormatter("PHP"))
}

func validRequest() dto.CreatePurchaseRequest {
	cost := d("10")
	return dto.CreatePurchaseRequest{
		DistributorID: distributorID,
		Items: []dto.CreatePurchaseItem{
			{ItemID: itemID, Quantity: d("2"), UnitCost: &cost},
		},
	}
}

func catalogFixture() map[string]*entity.Item {
	return map[string]*entity.Item{
		itemID: {ID: itemID, Name: "Bond Paper A4", BasePrice: d("8.50")},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_RegistraCabeceraMovimientoYStock(t *testing.T) {
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	movements := new(MockMovementRepo)
	items := new(MockItemRepo)
	distributors := new(MockDistributorRepo)
	tx := &fakeTxRunner{purchases, movements, items}
	uc := newUseCase(tx, purchases, distributors, items)

	distributors.On("GetByID", ctx, distributorID).Return(&entity.Distributor{ID: distributorID, Name: "National Bookstore Supply"}, nil)
	items.On("GetByIDs", ctx, []string{itemID}).Return(catalogFixture(), nil)
	purchases.On("Create", ctx, mock.AnythingOfType("*entity.Purchase")).Return(nil)
	movements.On("Create", ctx, mock.MatchedBy(func(mv *entity.StockMovement) bool {
		return mv.Type == entity.MovementTypeIN && mv.ItemID == itemID && mv.Quantity.Equal(d("2")) && mv.UserID == userID
	})).Return(nil)
	items.On("IncrementStock", ctx, itemID, d("2")).Return(nil)

	out, err := uc.CreatePurchase(ctx, userID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "National Bookstore Supply", out.DistributorName)
	// 2 × 10 = 20; tax 12% = 2.4; total 22.4
	assert.True(t, out.Subtotal.Equal(d("20")), "subtotal fue %s", out.Subtotal)
	assert.True(t, out.Total.Equal(d("22.4")), "total fue %s", out.Total)
	purchases.AssertExpectations(t)
	movements.AssertExpectations(t)
	items.AssertExpectations(t)
}

func TestCreatePurchase_FallaEnStock_PropagaElError(t *testing.T) {
	// El incremento de stock falla: el error sube por el runner y la compra
	// entera se reporta fallida (en la DB real el rollback deshace el resto).
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	movements := new(MockMovementRepo)
	items := new(MockItemRepo)
	distributors := new(MockDistributorRepo)
	tx := &fakeTxRunner{purchases, movements, items}
	uc := newUseCase(tx, purchases, distributors, items)

	boom := errors.New("deadlock detected")
	distributors.On("GetByID", ctx, distributorID).Return(&entity.Distributor{ID: distributorID, Name: "X"}, nil)
	items.On("GetByIDs", ctx, []string{itemID}).Return(catalogFixture(), nil)
	purchases.On("Create", ctx, mock.Anything).Return(nil)
	movements.On("Create", ctx, mock.Anything).Return(nil)
	items.On("IncrementStock", ctx, itemID, d("2")).Return(boom)

	_, err := uc.CreatePurchase(ctx, userID, validRequest())
	assert.ErrorIs(t, err, boom)
}

func TestCreatePurchase_ValidaEntrada(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(&fakeTxRunner{}, new(MockPurchaseRepo), new(MockDistributorRepo), new(MockItemRepo))

	// sin líneas
	_, err := uc.CreatePurchase(ctx, userID, dto.CreatePurchaseRequest{DistributorID: distributorID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cantidad no positiva
	in := validRequest()
	in.Items[0].Quantity = decimal.Zero
	_, err = uc.CreatePurchase(ctx, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// costo unitario negativo
	in = validRequest()
	neg := d("-1")
	in.Items[0].UnitCost = &neg
	_, err = uc.CreatePurchase(ctx, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePurchase_DistribuidorInexistente(t *testing.T) {
	ctx := context.Background()
	distributors := new(MockDistributorRepo)
	uc := newUseCase(&fakeTxRunner{}, new(MockPurchaseRepo), distributors, new(MockItemRepo))

	distributors.On("GetByID", ctx, distributorID).Return(nil, nil)

	_, err := uc.CreatePurchase(ctx, userID, validRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePurchase_ArticuloInexistente(t *testing.T) {
	ctx := context.Background()
	distributors := new(MockDistributorRepo)
	items := new(MockItemRepo)
	uc := newUseCase(&fakeTxRunner{}, new(MockPurchaseRepo), distributors, items)

	distributors.On("GetByID", ctx, distributorID).Return(&entity.Distributor{ID: distributorID}, nil)
	items.On("GetByIDs", ctx, []string{itemID}).Return(map[string]*entity.Item{}, nil)

	_, err := uc.CreatePurchase(ctx, userID, validRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangeStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_TransicionPermitida(t *testing.T) {
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	uc := newUseCase(&fakeTxRunner{}, purchases, new(MockDistributorRepo), new(MockItemRepo))

	purchases.On("GetByID", ctx, "p1").Return(&entity.Purchase{ID: "p1", Status: entity.PurchasePending}, nil)
	purchases.On("UpdateStatus", ctx, "p1", entity.PurchaseApproved).Return(nil)

	out, err := uc.ChangeStatus(ctx, "p1", entity.PurchaseApproved)
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)
	purchases.AssertExpectations(t)
}

func TestChangeStatus_TransicionNoPermitida(t *testing.T) {
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	uc := newUseCase(&fakeTxRunner{}, purchases, new(MockDistributorRepo), new(MockItemRepo))

	// pending no puede saltar directo a completed
	purchases.On("GetByID", ctx, "p1").Return(&entity.Purchase{ID: "p1", Status: entity.PurchasePending}, nil)

	_, err := uc.ChangeStatus(ctx, "p1", entity.PurchaseCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	purchases.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatus_CompraInexistente(t *testing.T) {
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	uc := newUseCase(&fakeTxRunner{}, purchases, new(MockDistributorRepo), new(MockItemRepo))

	purchases.On("GetByID", ctx, "nope").Return(nil, nil)

	_, err := uc.ChangeStatus(ctx, "nope", entity.PurchaseApproved)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListPurchases — validación de filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestListPurchases_EstadoDesconocidoEs400(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(&fakeTxRunner{}, new(MockPurchaseRepo), new(MockDistributorRepo), new(MockItemRepo))

	_, err := uc.ListPurchases(ctx, dto.PurchaseListRequest{Status: "paid"})
	assert.ErrorIs(t, err, domain.ErrUnknownStatus,
		"un estado fuera del conjunto cerrado se rechaza, no se compara texto libre")
}

func TestListPurchases_FechaInvalida(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(&fakeTxRunner{}, new(MockPurchaseRepo), new(MockDistributorRepo), new(MockItemRepo))

	_, err := uc.ListPurchases(ctx, dto.PurchaseListRequest{StartDate: "31/12/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListPurchases_FallbackDeCostoEnTotales(t *testing.T) {
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	uc := newUseCase(&fakeTxRunner{}, purchases, new(MockDistributorRepo), new(MockItemRepo))

	// Línea sin costo unitario: el total usa el precio base del catálogo.
	stored := []*entity.Purchase{{
		ID:     "p1",
		Status: entity.PurchaseCompleted,
		Items: []*entity.PurchaseItem{
			{ItemID: itemID, Quantity: d("4"), UnitCost: nil, ItemBasePrice: d("8.50")},
		},
	}}
	purchases.On("List", ctx, mock.Anything).Return(stored, 1, nil)

	out, err := uc.ListPurchases(ctx, dto.PurchaseListRequest{})
	require.NoError(t, err)
	require.Len(t, out.Purchases, 1)
	// 4 × 8.50 = 34; tax 12% = 4.08; total 38.08
	assert.True(t, out.Purchases[0].Subtotal.Equal(d("34")), "subtotal fue %s", out.Purchases[0].Subtotal)
	assert.True(t, out.Purchases[0].Total.Equal(d("38.08")), "total fue %s", out.Purchases[0].Total)
	assert.Equal(t, 1, out.Page.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetPurchase — detalle con movimientos del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestGetPurchase_IncluyeMovimientosDelLedger(t *testing.T) {
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	movements := new(MockMovementRepo)
	uc := newUseCase(&fakeTxRunner{movements: movements}, purchases, new(MockDistributorRepo), new(MockItemRepo))

	cost := d("10")
	purchases.On("GetByID", ctx, "p1").Return(&entity.Purchase{
		ID:     "p1",
		Status: entity.PurchasePending,
		Items: []*entity.PurchaseItem{
			{ItemID: itemID, Quantity: d("2"), UnitCost: &cost},
		},
	}, nil)
	movements.On("ListByTransaction", ctx, "p1").Return([]*entity.StockMovement{
		{ID: "m1", TransactionID: "p1", ItemID: itemID, Type: entity.MovementTypeIN, Quantity: d("2"), UnitCost: d("10")},
	}, nil)

	out, err := uc.GetPurchase(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, entity.MovementTypeIN, out.Movements[0].Type)
	assert.True(t, out.Movements[0].Quantity.Equal(d("2")))
}

func TestGetPurchase_SinMovimientosNoFalla(t *testing.T) {
	ctx := context.Background()
	purchases := new(MockPurchaseRepo)
	movements := new(MockMovementRepo)
	uc := newUseCase(&fakeTxRunner{movements: movements}, purchases, new(MockDistributorRepo), new(MockItemRepo))

	purchases.On("GetByID", ctx, "p1").Return(&entity.Purchase{ID: "p1", Status: entity.PurchasePending}, nil)
	movements.On("ListByTransaction", ctx, "p1").Return(nil, nil)

	out, err := uc.GetPurchase(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, out.Movements)
}
