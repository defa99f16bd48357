package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/snackcounter/api/internal/database"
)

// SequenceStore defines the DB methods needed to hand out takeaway numbers.
// Satisfied by *database.Queries.
type SequenceStore interface {
	LockBusinessDay(ctx context.Context, pgAdvisoryXactLock int64) error
	CountDailyClosingsByDate(ctx context.Context, closingDate pgtype.Date) (int64, error)
	NextTakeawaySeq(ctx context.Context, arg database.NextTakeawaySeqParams) (int32, error)
}

// TakeawaySequencer numbers takeaway orders 1, 2, 3... per business day.
// The count restarts after every end-of-day run on the same date: each
// closing recorded for the day opens a new counter epoch.
type TakeawaySequencer struct{}

// Next returns the next takeaway number for day. store must be bound to an
// open transaction; the business-day lock it takes is held until that
// transaction ends, which keeps an end-of-day run from interleaving.
// Numbers of deleted orders are not reused.
func (TakeawaySequencer) Next(ctx context.Context, store SequenceStore, day BusinessDay) (int32, error) {
	if err := store.LockBusinessDay(ctx, day.LockKey()); err != nil {
		return 0, fmt.Errorf("lock business day: %w", err)
	}

	epoch, err := store.CountDailyClosingsByDate(ctx, day.PgDate())
	if err != nil {
		return 0, fmt.Errorf("count daily closings: %w", err)
	}

	seq, err := store.NextTakeawaySeq(ctx, database.NextTakeawaySeqParams{
		BusinessDate: day.PgDate(),
		Epoch:        int32(epoch),
	})
	if err != nil {
		return 0, fmt.Errorf("next takeaway seq: %w", err)
	}
	return seq, nil
}
