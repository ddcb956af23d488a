package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fardsis/fsis-api/internal/application/analytics"
	"github.com/fardsis/fsis-api/internal/domain/repository"
	"github.com/fardsis/fsis-api/pkg/money"
)

type MockAnalyticsRepo struct{ mock.Mock }

func (m *MockAnalyticsRepo) ItemsMoved(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockAnalyticsRepo) NewPurchases(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}
func (m *MockAnalyticsRepo) TopCategories(ctx context.Context, since time.Time, limit int) ([]repository.CategoryVolume, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryVolume), args.Error(1)
}
func (m *MockAnalyticsRepo) TopCustomers(ctx context.Context, since time.Time, limit int) ([]repository.CustomerSpend, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CustomerSpend), args.Error(1)
}

func TestGetSummary_AgregaLasCuatroConsultas(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnalyticsRepo)
	uc := analytics.NewDashboardUseCase(repo, money.NewFormatter("PHP"))

	repo.On("ItemsMoved", ctx, mock.Anything).Return(decimal.NewFromInt(420), nil)
	repo.On("NewPurchases", ctx, mock.Anything).Return(17, nil)
	repo.On("TopCategories", ctx, mock.Anything, 5).Return([]repository.CategoryVolume{
		{Category: "Paper", Quantity: decimal.NewFromInt(300)},
	}, nil)
	repo.On("TopCustomers", ctx, mock.Anything, 5).Return([]repository.CustomerSpend{
		{CustomerID: "c1", CustomerName: "DepEd Region IV", Total: decimal.NewFromInt(15250)},
	}, nil)

	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.True(t, out.ItemsMoved.Equal(decimal.NewFromInt(420)))
	assert.Equal(t, 17, out.NewPurchases)
	require.Len(t, out.TopCustomers, 1)
	assert.Equal(t, "₱15,250.00", out.TopCustomers[0].TotalDisplay)
}

func TestGetSummary_PropagaErrorDeCualquierConsulta(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnalyticsRepo)
	uc := analytics.NewDashboardUseCase(repo, money.NewFormatter("PHP"))

	boom := errors.New("connection reset")
	repo.On("ItemsMoved", ctx, mock.Anything).Return(decimal.Zero, nil)
	repo.On("NewPurchases", ctx, mock.Anything).Return(0, nil)
	repo.On("TopCategories", ctx, mock.Anything, 5).Return(nil, boom)
	repo.On("TopCustomers", ctx, mock.Anything, 5).Return(nil, nil)

	_, err := uc.GetSummary(ctx)
	assert.ErrorIs(t, err, boom)
}
