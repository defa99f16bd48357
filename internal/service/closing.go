package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
)

var (
	ErrClosingNotFound = errors.New("daily closing not found")
	ErrInvalidRange    = errors.New("start date must not be after end date")
	ErrClosingConflict = errors.New("orders changed while the day was being closed, run end of day again")
)

// ClosingStore defines the DB methods needed by end-of-day accounting.
// Satisfied by *database.Queries (and its WithTx variant).
type ClosingStore interface {
	LockBusinessDay(ctx context.Context, pgAdvisoryXactLock int64) error
	ForceCloseOpenOrders(ctx context.Context, arg database.ForceCloseOpenOrdersParams) (int64, error)
	SumUnaccountedOrders(ctx context.Context, arg database.SumUnaccountedOrdersParams) (database.SumUnaccountedOrdersRow, error)
	CreateDailyClosing(ctx context.Context, arg database.CreateDailyClosingParams) (database.DailyClosing, error)
	MarkOrdersAccounted(ctx context.Context, arg database.MarkOrdersAccountedParams) (int64, error)
	GetDailyRevenue(ctx context.Context, arg database.GetDailyRevenueParams) (pgtype.Numeric, error)
	ListDailyClosings(ctx context.Context, arg database.ListDailyClosingsParams) ([]database.DailyClosing, error)
	DeleteDailyClosing(ctx context.Context, id uuid.UUID) (int64, error)
}

// NewClosingStore creates a ClosingStore from a DBTX (pool or tx).
type NewClosingStore func(db database.DBTX) ClosingStore

// EndOfDayResult summarizes one end-of-day run.
type EndOfDayResult struct {
	Closing        database.DailyClosing
	ArchivedAmount decimal.Decimal
	OrderCount     int64
	ForceClosed    int64
}

// ClosingService runs end-of-day and answers revenue queries.
type ClosingService struct {
	db       DB
	newStore NewClosingStore
}

// NewClosingService creates a new ClosingService.
func NewClosingService(db DB, newStore NewClosingStore) *ClosingService {
	return &ClosingService{db: db, newStore: newStore}
}

// RunEndOfDay closes out day in a single transaction:
//
//  1. force-close the day's open orders, assuming exact payment
//  2. sum total_amount over the day's unaccounted orders
//  3. archive that sum as a daily closing
//  4. mark every order of the day accounted
//
// Either every step is applied or none is. A run on a day with no
// unaccounted orders still records a zero closing.
//
// The run reads one snapshot (REPEATABLE READ), so the orders it marks are
// exactly the orders it summed. A concurrent change to one of them aborts
// the run with ErrClosingConflict instead of archiving a stale total.
func (s *ClosingService) RunEndOfDay(ctx context.Context, day BusinessDay) (*EndOfDayResult, error) {
	res, err := s.runEndOfDay(ctx, day)
	if isSerializationFailure(err) {
		return nil, fmt.Errorf("end of day %s: %w", day, ErrClosingConflict)
	}
	return res, err
}

func (s *ClosingService) runEndOfDay(ctx context.Context, day BusinessDay) (*EndOfDayResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if err := store.LockBusinessDay(ctx, day.LockKey()); err != nil {
		return nil, fmt.Errorf("lock business day: %w", err)
	}

	forced, err := store.ForceCloseOpenOrders(ctx, database.ForceCloseOpenOrdersParams{
		StartDate: day.Start(),
		EndDate:   day.End(),
	})
	if err != nil {
		return nil, fmt.Errorf("force close open orders: %w", err)
	}

	sum, err := store.SumUnaccountedOrders(ctx, database.SumUnaccountedOrdersParams{
		StartDate: day.Start(),
		EndDate:   day.End(),
	})
	if err != nil {
		return nil, fmt.Errorf("sum unaccounted orders: %w", err)
	}
	archived := numericToDecimal(sum.TotalAmount)

	closing, err := store.CreateDailyClosing(ctx, database.CreateDailyClosingParams{
		ClosingDate: day.PgDate(),
		TotalAmount: decimalToNumeric(archived),
		OrderCount:  int32(sum.OrderCount),
	})
	if err != nil {
		return nil, fmt.Errorf("create daily closing: %w", err)
	}

	marked, err := store.MarkOrdersAccounted(ctx, database.MarkOrdersAccountedParams{
		StartDate: day.Start(),
		EndDate:   day.End(),
	})
	if err != nil {
		return nil, fmt.Errorf("mark orders accounted: %w", err)
	}
	if marked != sum.OrderCount {
		return nil, fmt.Errorf("end of day %s: summed %d orders but marked %d: %w", day, sum.OrderCount, marked, ErrClosingConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &EndOfDayResult{
		Closing:        closing,
		ArchivedAmount: archived,
		OrderCount:     sum.OrderCount,
		ForceClosed:    forced,
	}, nil
}

// DailyRevenue is the live takings for day before it is closed out:
// payment_received minus change_given over closed, unaccounted orders, with
// each order's net clamped at zero.
func (s *ClosingService) DailyRevenue(ctx context.Context, day BusinessDay) (decimal.Decimal, error) {
	rev, err := s.newStore(s.db).GetDailyRevenue(ctx, database.GetDailyRevenueParams{
		StartDate: day.Start(),
		EndDate:   day.End(),
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("get daily revenue: %w", err)
	}
	return numericToDecimal(rev), nil
}

// ListDailyClosings returns closings dated from start through end inclusive.
func (s *ClosingService) ListDailyClosings(ctx context.Context, start, end BusinessDay) ([]database.DailyClosing, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	closings, err := s.newStore(s.db).ListDailyClosings(ctx, database.ListDailyClosingsParams{
		StartDate: start.PgDate(),
		EndDate:   end.PgDate(),
	})
	if err != nil {
		return nil, fmt.Errorf("list daily closings: %w", err)
	}
	return closings, nil
}

// DeleteDailyClosing removes an archived closing. Orders it accounted stay accounted.
func (s *ClosingService) DeleteDailyClosing(ctx context.Context, id uuid.UUID) error {
	n, err := s.newStore(s.db).DeleteDailyClosing(ctx, id)
	if err != nil {
		return fmt.Errorf("delete daily closing: %w", err)
	}
	if n == 0 {
		return ErrClosingNotFound
	}
	return nil
}

// isSerializationFailure reports a REPEATABLE READ update conflict (SQLSTATE 40001).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}
