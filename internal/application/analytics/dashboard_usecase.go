// Package analytics contiene el caso de uso del dashboard de actividad.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/domain/repository"
	"github.com/fardsis/fsis-api/pkg/money"
)

const (
	dashboardWindow = 30 * 24 * time.Hour // ventana de actividad del dashboard
	dashboardTopN   = 5                   // filas en los widgets de ranking
)

// DashboardUseCase genera el resumen de actividad de los últimos 30 días.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	formatter     *money.Formatter
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, formatter *money.Formatter) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, formatter: formatter}
}

// GetSummary construye el DashboardResponse.
//
// Cuatro llamadas en paralelo:
//  1. ItemsMoved(30d)       → volumen del ledger
//  2. NewPurchases(30d)     → compras registradas
//  3. TopCategories(30d, 5) → categorías más movidas
//  4. TopCustomers(30d, 5)  → clientes con más gasto
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	since := time.Now().Add(-dashboardWindow)

	type movedResult struct {
		total decimal.Decimal
		err   error
	}
	type purchasesResult struct {
		count int
		err   error
	}
	type categoriesResult struct {
		rows []repository.CategoryVolume
		err  error
	}
	type customersResult struct {
		rows []repository.CustomerSpend
		err  error
	}

	movedCh := make(chan movedResult, 1)
	purchasesCh := make(chan purchasesResult, 1)
	categoriesCh := make(chan categoriesResult, 1)
	customersCh := make(chan customersResult, 1)

	go func() {
		total, err := uc.analyticsRepo.ItemsMoved(ctx, since)
		movedCh <- movedResult{total, err}
	}()
	go func() {
		count, err := uc.analyticsRepo.NewPurchases(ctx, since)
		purchasesCh <- purchasesResult{count, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopCategories(ctx, since, dashboardTopN)
		categoriesCh <- categoriesResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopCustomers(ctx, since, dashboardTopN)
		customersCh <- customersResult{rows, err}
	}()

	moved := <-movedCh
	purchases := <-purchasesCh
	categories := <-categoriesCh
	customers := <-customersCh

	if moved.err != nil {
		return nil, fmt.Errorf("dashboard: volumen movido: %w", moved.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: compras nuevas: %w", purchases.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: top categorías: %w", categories.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: top clientes: %w", customers.err)
	}

	out := &dto.DashboardResponse{
		ItemsMoved:    moved.total,
		NewPurchases:  purchases.count,
		TopCategories: make([]dto.CategoryVolumeDTO, 0, len(categories.rows)),
		TopCustomers:  make([]dto.CustomerSpendDTO, 0, len(customers.rows)),
	}
	for _, row := range categories.rows {
		out.TopCategories = append(out.TopCategories, dto.CategoryVolumeDTO{
			Category: row.Category,
			Quantity: row.Quantity,
		})
	}
	for _, row := range customers.rows {
		out.TopCustomers = append(out.TopCustomers, dto.CustomerSpendDTO{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Total:        row.Total,
			TotalDisplay: uc.formatter.Format(row.Total),
		})
	}
	return out, nil
}
