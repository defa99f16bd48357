package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
)

var (
	ErrStockItemNotFound  = errors.New("stock item not found")
	ErrStockCodeRequired  = errors.New("code is required")
	ErrStockNameRequired  = errors.New("name is required")
	ErrDuplicateStockCode = errors.New("a stock item with this code already exists")
	ErrInvalidPurchase    = errors.New("quantity must be > 0 and unit_price must be >= 0")
)

// StockStore defines the DB methods needed for stock items and purchases.
// Satisfied by *database.Queries (and its WithTx variant).
type StockStore interface {
	GetStockItem(ctx context.Context, id uuid.UUID) (database.StockItem, error)
	CreateStockItem(ctx context.Context, arg database.CreateStockItemParams) (database.StockItem, error)
	CreateStockPurchase(ctx context.Context, arg database.CreateStockPurchaseParams) (database.StockPurchase, error)
	RefreshStockItemAveragePrice(ctx context.Context, id uuid.UUID) (database.StockItem, error)
	ListStockPurchases(ctx context.Context, stockItemID uuid.UUID) ([]database.StockPurchase, error)
}

// NewStockStore creates a StockStore from a DBTX (pool or tx).
type NewStockStore func(db database.DBTX) StockStore

// CreateStockItemRequest registers a stock code. AveragePrice is a manual
// starting price, replaced by the purchase average once purchases exist.
type CreateStockItemRequest struct {
	Code         string
	Name         string
	Unit         string
	AveragePrice *decimal.Decimal
}

// RecordPurchaseRequest is one purchase of a stock item.
// An empty PurchaseDate means today.
type RecordPurchaseRequest struct {
	Quantity     *decimal.Decimal
	UnitPrice    *decimal.Decimal
	PurchaseDate string
}

// PurchaseResult is the stored purchase and the item with its new average price.
type PurchaseResult struct {
	Purchase database.StockPurchase
	Item     database.StockItem
}

// StockService manages stock codes and the purchases that price them.
type StockService struct {
	db       DB
	newStore NewStockStore
	cal      *Calendar
}

// NewStockService creates a new StockService.
func NewStockService(db DB, newStore NewStockStore, cal *Calendar) *StockService {
	return &StockService{db: db, newStore: newStore, cal: cal}
}

// CreateStockItem registers a new stock code. Codes are unique.
func (s *StockService) CreateStockItem(ctx context.Context, req CreateStockItemRequest) (database.StockItem, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return database.StockItem{}, ErrStockCodeRequired
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return database.StockItem{}, ErrStockNameRequired
	}
	if req.AveragePrice != nil && req.AveragePrice.IsNegative() {
		return database.StockItem{}, ErrNegativeAmount
	}

	item, err := s.newStore(s.db).CreateStockItem(ctx, database.CreateStockItemParams{
		Code:         code,
		Name:         name,
		Unit:         strings.TrimSpace(req.Unit),
		AveragePrice: optionalNumeric(req.AveragePrice),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return database.StockItem{}, ErrDuplicateStockCode
		}
		return database.StockItem{}, fmt.Errorf("create stock item: %w", err)
	}
	return item, nil
}

// RecordPurchase stores a purchase and refreshes the item's quantity-weighted
// average price in the same transaction.
func (s *StockService) RecordPurchase(ctx context.Context, stockItemID uuid.UUID, req RecordPurchaseRequest) (*PurchaseResult, error) {
	if req.Quantity == nil || !req.Quantity.IsPositive() {
		return nil, ErrInvalidPurchase
	}
	if req.UnitPrice == nil || req.UnitPrice.IsNegative() {
		return nil, ErrInvalidPurchase
	}

	day := s.cal.Today()
	if req.PurchaseDate != "" {
		d, err := s.cal.ParseDay(req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		day = d
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := store.GetStockItem(ctx, stockItemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}

	purchase, err := store.CreateStockPurchase(ctx, database.CreateStockPurchaseParams{
		StockItemID:  stockItemID,
		Quantity:     decimalToNumeric(*req.Quantity),
		UnitPrice:    decimalToNumeric(*req.UnitPrice),
		PurchaseDate: day.PgDate(),
	})
	if err != nil {
		return nil, fmt.Errorf("create stock purchase: %w", err)
	}

	item, err := store.RefreshStockItemAveragePrice(ctx, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("refresh average price: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &PurchaseResult{Purchase: purchase, Item: item}, nil
}

// ListPurchases returns an item's purchases, most recent first.
func (s *StockService) ListPurchases(ctx context.Context, stockItemID uuid.UUID) ([]database.StockPurchase, error) {
	store := s.newStore(s.db)
	if _, err := store.GetStockItem(ctx, stockItemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	purchases, err := store.ListStockPurchases(ctx, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("list stock purchases: %w", err)
	}
	return purchases, nil
}

// isUniqueViolation reports a unique constraint violation (pgconn error code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
