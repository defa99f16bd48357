package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
)

const (
	defaultProductSalesLimit = 50
	maxProductSalesLimit     = 500
)

// ReportStore defines the DB methods needed by sales reports.
// Satisfied by *database.Queries.
type ReportStore interface {
	GetProductSales(ctx context.Context, arg database.GetProductSalesParams) ([]database.GetProductSalesRow, error)
}

// NewReportStore creates a ReportStore from a DBTX (pool or tx).
type NewReportStore func(db database.DBTX) ReportStore

// RecipeCoster prices saved recipes. Satisfied by *CostService.
type RecipeCoster interface {
	ListRecipeCosts(ctx context.Context) ([]RecipeCost, error)
}

// ProductSales is one product's sales over a date range with an estimated
// margin. UnitCost is nil when the product has no recipe.
type ProductSales struct {
	ProductName   string
	QuantitySold  int64
	Revenue       decimal.Decimal
	UnitCost      *decimal.Decimal
	EstimatedCost decimal.Decimal
	GrossMargin   decimal.Decimal
}

// ReportService builds sales reports.
type ReportService struct {
	db       database.DBTX
	newStore NewReportStore
	costs    RecipeCoster
}

// NewReportService creates a new ReportService.
func NewReportService(db database.DBTX, newStore NewReportStore, costs RecipeCoster) *ReportService {
	return &ReportService{db: db, newStore: newStore, costs: costs}
}

// ProductSales totals the items of closed orders dated from start through end.
// Partial-payment tickets are skipped since their items are still on the parent.
func (s *ReportService) ProductSales(ctx context.Context, start, end BusinessDay, limit int) ([]ProductSales, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	if limit <= 0 {
		limit = defaultProductSalesLimit
	}
	if limit > maxProductSalesLimit {
		limit = maxProductSalesLimit
	}

	rows, err := s.newStore(s.db).GetProductSales(ctx, database.GetProductSalesParams{
		StartDate: start.Start(),
		EndDate:   end.End(),
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("get product sales: %w", err)
	}

	recipes, err := s.costs.ListRecipeCosts(ctx)
	if err != nil {
		return nil, err
	}
	unitCosts := make(map[string]decimal.Decimal, len(recipes))
	for _, r := range recipes {
		unitCosts[r.ProductName] = r.TotalCost
	}

	out := make([]ProductSales, len(rows))
	for i, r := range rows {
		ps := ProductSales{
			ProductName:  r.ProductName,
			QuantitySold: r.QuantitySold,
			Revenue:      numericToDecimal(r.TotalRevenue),
		}
		if c, ok := unitCosts[r.ProductName]; ok {
			ps.UnitCost = &c
			ps.EstimatedCost = c.Mul(decimal.NewFromInt(r.QuantitySold)).Round(2)
		}
		ps.GrossMargin = ps.Revenue.Sub(ps.EstimatedCost)
		out[i] = ps
	}
	return out, nil
}
