package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
	"github.com/snackcounter/api/internal/enum"
)

var (
	ErrPaymentItemsRequired = errors.New("items are required")
	ErrNoValidPaymentItems  = errors.New("no valid items: each item needs a product_name and a quantity > 0")
)

// PaymentStore defines the DB methods needed to split a partial payment off an order.
// Satisfied by *database.Queries (and its WithTx variant).
type PaymentStore interface {
	LockBusinessDay(ctx context.Context, pgAdvisoryXactLock int64) error
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error)
	CreatePartialOrder(ctx context.Context, arg database.CreatePartialOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	AddOrderPayment(ctx context.Context, arg database.AddOrderPaymentParams) (int64, error)
}

// NewPaymentStore creates a PaymentStore from a DBTX (pool or tx).
type NewPaymentStore func(db database.DBTX) PaymentStore

// PartialPaymentItem is one line being settled. Nil numbers were absent.
type PartialPaymentItem struct {
	ProductName string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// PartialPaymentRequest settles a subset of an order's items.
type PartialPaymentRequest struct {
	Items       []PartialPaymentItem
	Amount      *decimal.Decimal
	Payment     *decimal.Decimal
	Change      *decimal.Decimal
	TableNumber *int32
	OrderType   string
	Description string
}

// PartialPaymentResult is the closed ticket created for the settlement.
type PartialPaymentResult struct {
	Order database.Order
	Items []database.OrderItem
}

// PaymentService records partial payments.
type PaymentService struct {
	pool     TxBeginner
	newStore NewPaymentStore
	cal      *Calendar
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(pool TxBeginner, newStore NewPaymentStore, cal *Calendar) *PaymentService {
	return &PaymentService{pool: pool, newStore: newStore, cal: cal}
}

type paymentLine struct {
	name      string
	quantity  int32
	unitPrice decimal.Decimal
}

// RecordPartialPayment creates a closed ticket for the given items and adds
// its total to the parent order's payment_received. The parent's own items
// are left untouched.
//
// Amount and Payment are used only when positive; otherwise the total is the
// item sum and the payment equals the total. Change defaults to payment
// minus total.
func (s *PaymentService) RecordPartialPayment(ctx context.Context, parentID uuid.UUID, req PartialPaymentRequest) (*PartialPaymentResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrPaymentItemsRequired
	}

	var lines []paymentLine
	computed := decimal.Zero
	for _, it := range req.Items {
		name := strings.TrimSpace(it.ProductName)
		if name == "" || it.Quantity == nil {
			continue
		}
		q, err := wholeQuantity(*it.Quantity)
		if err != nil || q <= 0 {
			continue
		}
		price := decimal.Zero
		if it.UnitPrice != nil && !it.UnitPrice.IsNegative() {
			price = it.UnitPrice.Round(2)
		}
		lines = append(lines, paymentLine{name: name, quantity: q, unitPrice: price})
		computed = computed.Add(price.Mul(decimal.NewFromInt32(q)))
	}
	if len(lines) == 0 {
		return nil, ErrNoValidPaymentItems
	}

	total := computed.Round(2)
	if req.Amount != nil && req.Amount.IsPositive() {
		total = req.Amount.Round(2)
	}
	payment := total
	if req.Payment != nil && req.Payment.IsPositive() {
		payment = req.Payment.Round(2)
	}
	change := payment.Sub(total)
	if req.Change != nil {
		change = req.Change.Round(2)
	}

	var orderType string
	if req.OrderType != "" {
		t, err := resolveOrderType(req.OrderType, nil)
		if err != nil {
			return nil, err
		}
		orderType = t
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	now := s.cal.Now()

	// Day lock before the row lock, in the same order as end-of-day.
	if err := store.LockBusinessDay(ctx, s.cal.DayOf(now).LockKey()); err != nil {
		return nil, fmt.Errorf("lock business day: %w", err)
	}

	parent, err := lockUnaccountedOrder(ctx, store, parentID)
	if err != nil {
		return nil, err
	}

	if orderType == "" {
		orderType = parent.OrderType
	}
	tableNumber := parent.TableNumber
	if req.TableNumber != nil {
		tableNumber = pgtype.Int4{Int32: *req.TableNumber, Valid: true}
	}
	var takeawaySeq pgtype.Int4
	if orderType == enum.OrderTypeTakeaway {
		tableNumber = pgtype.Int4{}
		takeawaySeq = parent.TakeawaySeq
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = orderLabel(parent) + " - partial payment"
	}

	ticket, err := store.CreatePartialOrder(ctx, database.CreatePartialOrderParams{
		TableNumber:     tableNumber,
		OrderType:       orderType,
		Description:     description,
		TakeawaySeq:     takeawaySeq,
		OrderDate:       now,
		TotalAmount:     decimalToNumeric(total),
		PaymentReceived: decimalToNumeric(payment),
		ChangeGiven:     decimalToNumeric(change),
		ParentOrderID:   pgtype.UUID{Bytes: parentID, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create partial order: %w", err)
	}

	items := make([]database.OrderItem, 0, len(lines))
	for _, l := range lines {
		item, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:     ticket.ID,
			ProductName: l.name,
			Quantity:    l.quantity,
			UnitPrice:   decimalToNumeric(l.unitPrice),
			TotalPrice:  decimalToNumeric(l.unitPrice.Mul(decimal.NewFromInt32(l.quantity))),
		})
		if err != nil {
			return nil, fmt.Errorf("create partial order item: %w", err)
		}
		items = append(items, item)
	}

	if _, err := store.AddOrderPayment(ctx, database.AddOrderPaymentParams{
		ID:     parentID,
		Amount: decimalToNumeric(total),
	}); err != nil {
		return nil, fmt.Errorf("add order payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &PartialPaymentResult{Order: ticket, Items: items}, nil
}

// orderLabel is how staff refer to an order: "Table 4" or "Takeaway #12".
func orderLabel(o database.Order) string {
	if o.OrderType == enum.OrderTypeTakeaway {
		if o.TakeawaySeq.Valid {
			return fmt.Sprintf("Takeaway #%d", o.TakeawaySeq.Int32)
		}
		return "Takeaway"
	}
	if o.TableNumber.Valid {
		return fmt.Sprintf("Table %d", o.TableNumber.Int32)
	}
	return "Table"
}
