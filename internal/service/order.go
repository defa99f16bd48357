package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
	"github.com/snackcounter/api/internal/enum"
)

// maxItemQuantity keeps quantities well inside the INTEGER column.
const maxItemQuantity = 100000

// Errors returned by the order service.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrItemNotFound        = errors.New("order item not found")
	ErrInvalidOrderType    = errors.New("order_type must be 'table' or 'takeaway'")
	ErrTableNumberRequired = errors.New("table_number must be a positive number for table orders")
	ErrProductNameRequired = errors.New("product_name is required")
	ErrInvalidQuantity     = errors.New("quantity must be a whole number > 0")
	ErrOrderAccounted      = errors.New("order is already included in a daily closing")
	ErrNegativeAmount      = errors.New("amounts must not be negative")
	ErrInvalidStatusFilter = errors.New("status must be 'open' or 'closed'")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// DB is a connection pool that can both run queries and start transactions.
// Satisfied by *pgxpool.Pool.
type DB interface {
	database.DBTX
	TxBeginner
}

// OrderStore defines the DB methods needed by the order lifecycle.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	SequenceStore
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	SumOrderItems(ctx context.Context, orderID uuid.UUID) (pgtype.Numeric, error)
	RecomputeOrderTotal(ctx context.Context, id uuid.UUID) (database.Order, error)
	CloseOrder(ctx context.Context, arg database.CloseOrderParams) (database.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	UpdateOrderItemQuantity(ctx context.Context, arg database.UpdateOrderItemQuantityParams) (database.OrderItem, error)
	DeleteOrderItem(ctx context.Context, arg database.DeleteOrderItemParams) (int64, error)
	DeleteOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListChildOrders(ctx context.Context, parentOrderID pgtype.UUID) ([]database.Order, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the input for opening a new order.
type CreateOrderRequest struct {
	OrderType   string
	TableNumber *int32
	Description string
}

// AddItemRequest is a line appended to an open order.
// Nil fields were absent (or not numeric) in the request.
type AddItemRequest struct {
	ProductName string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// CloseOrderRequest settles an order. Nil fields fall back to computed values.
type CloseOrderRequest struct {
	TotalAmount     *decimal.Decimal
	PaymentReceived *decimal.Decimal
	ChangeGiven     *decimal.Decimal
	IsClosed        *bool
}

// ListOrdersFilter narrows GET /orders. Empty Status means all orders.
type ListOrdersFilter struct {
	Status string
	Day    *BusinessDay
}

// OrderDetail is an order with its line items. PartialPayments lists the
// partial-payment tickets split off the order and is only loaded by GetOrder.
type OrderDetail struct {
	Order           database.Order
	Items           []database.OrderItem
	PartialPayments []database.Order
}

// OrderService handles the order lifecycle: creation, item edits and checkout.
type OrderService struct {
	db       DB
	newStore NewOrderStore
	cal      *Calendar
	seq      TakeawaySequencer
}

// NewOrderService creates a new OrderService.
func NewOrderService(db DB, newStore NewOrderStore, cal *Calendar) *OrderService {
	return &OrderService{db: db, newStore: newStore, cal: cal}
}

// CreateOrder opens an order. Takeaway orders are numbered in the same
// transaction that inserts them.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (database.Order, error) {
	orderType, err := resolveOrderType(req.OrderType, req.TableNumber)
	if err != nil {
		return database.Order{}, err
	}

	tableNumber := req.TableNumber
	if orderType == enum.OrderTypeTable {
		if tableNumber == nil || *tableNumber <= 0 {
			return database.Order{}, ErrTableNumberRequired
		}
	} else {
		tableNumber = nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	now := s.cal.Now()

	day := s.cal.DayOf(now)

	// Inserts hold the business-day lock so an end-of-day run never sees
	// half of them. The sequencer takes it for takeaway orders.
	var takeawaySeq pgtype.Int4
	if orderType == enum.OrderTypeTakeaway {
		seq, err := s.seq.Next(ctx, store, day)
		if err != nil {
			return database.Order{}, err
		}
		takeawaySeq = pgtype.Int4{Int32: seq, Valid: true}
	} else if err := store.LockBusinessDay(ctx, day.LockKey()); err != nil {
		return database.Order{}, fmt.Errorf("lock business day: %w", err)
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		TableNumber: int4(tableNumber),
		OrderType:   orderType,
		Description: strings.TrimSpace(req.Description),
		TakeawaySeq: takeawaySeq,
		OrderDate:   now,
	})
	if err != nil {
		return database.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return order, nil
}

// GetOrder returns an order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	store := s.newStore(s.db)
	order, err := store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := store.ListOrderItemsByOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	children, err := store.ListChildOrders(ctx, pgtype.UUID{Bytes: id, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("list partial payments: %w", err)
	}
	return &OrderDetail{Order: order, Items: items, PartialPayments: children}, nil
}

// ListOrders returns orders newest first.
func (s *OrderService) ListOrders(ctx context.Context, f ListOrdersFilter) ([]database.Order, error) {
	var params database.ListOrdersParams
	switch f.Status {
	case "":
	case enum.OrderStatusOpen:
		params.IsClosed = pgtype.Bool{Bool: false, Valid: true}
	case enum.OrderStatusClosed:
		params.IsClosed = pgtype.Bool{Bool: true, Valid: true}
	default:
		return nil, ErrInvalidStatusFilter
	}
	if f.Day != nil {
		params.StartDate = pgtype.Timestamptz{Time: f.Day.Start(), Valid: true}
		params.EndDate = pgtype.Timestamptz{Time: f.Day.End(), Valid: true}
	}

	orders, err := s.newStore(s.db).ListOrders(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// AddItem appends a line to an order and refreshes the order total.
// An absent quantity means 1 and an absent unit price means 0.
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddItemRequest) (*OrderDetail, error) {
	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		return nil, ErrProductNameRequired
	}

	quantity := int32(1)
	if req.Quantity != nil {
		q, err := wholeQuantity(*req.Quantity)
		if err != nil {
			return nil, err
		}
		if q <= 0 {
			return nil, ErrInvalidQuantity
		}
		quantity = q
	}

	unitPrice := decimal.Zero
	if req.UnitPrice != nil {
		unitPrice = req.UnitPrice.Round(2)
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativeAmount
	}

	return s.mutateOrder(ctx, orderID, func(store OrderStore) error {
		_, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:     orderID,
			ProductName: name,
			Quantity:    quantity,
			UnitPrice:   decimalToNumeric(unitPrice),
			TotalPrice:  decimalToNumeric(unitPrice.Mul(decimal.NewFromInt32(quantity))),
		})
		if err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
		return nil
	})
}

// UpdateItemQuantity changes a line's quantity, keeping its unit price.
// A quantity of zero or less removes the line; an absent one counts as 0.
func (s *OrderService) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity *decimal.Decimal) (*OrderDetail, error) {
	var q int32
	if quantity != nil {
		var err error
		if q, err = wholeQuantity(*quantity); err != nil {
			return nil, err
		}
	}

	return s.mutateOrder(ctx, orderID, func(store OrderStore) error {
		if q <= 0 {
			return deleteItem(ctx, store, orderID, itemID)
		}
		_, err := store.UpdateOrderItemQuantity(ctx, database.UpdateOrderItemQuantityParams{
			ID:       itemID,
			OrderID:  orderID,
			Quantity: q,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrItemNotFound
			}
			return fmt.Errorf("update order item: %w", err)
		}
		return nil
	})
}

// DeleteItem removes a line from an order.
func (s *OrderService) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderDetail, error) {
	return s.mutateOrder(ctx, orderID, func(store OrderStore) error {
		return deleteItem(ctx, store, orderID, itemID)
	})
}

func deleteItem(ctx context.Context, store OrderStore, orderID, itemID uuid.UUID) error {
	n, err := store.DeleteOrderItem(ctx, database.DeleteOrderItemParams{ID: itemID, OrderID: orderID})
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// mutateOrder locks the order row, applies fn, recomputes the order total
// from its items and commits.
func (s *OrderService) mutateOrder(ctx context.Context, orderID uuid.UUID, fn func(store OrderStore) error) (*OrderDetail, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := lockUnaccountedOrder(ctx, store, orderID); err != nil {
		return nil, err
	}

	if err := fn(store); err != nil {
		return nil, err
	}

	order, err := store.RecomputeOrderTotal(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("recompute order total: %w", err)
	}

	items, err := store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &OrderDetail{Order: order, Items: items}, nil
}

// DeleteOrder removes an order and its items.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := lockOrder(ctx, store, orderID); err != nil {
		return err
	}
	if err := store.DeleteOrderItemsByOrder(ctx, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	n, err := store.DeleteOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// CloseOrder settles an order, overwriting its total, payment and change.
//
// A missing total falls back to the sum of the items, a missing payment to
// the total and a missing change to payment minus total. A total that
// differs from the item sum is kept but flagged as overridden.
func (s *OrderService) CloseOrder(ctx context.Context, orderID uuid.UUID, req CloseOrderRequest) (database.Order, error) {
	for _, v := range []*decimal.Decimal{req.TotalAmount, req.PaymentReceived} {
		if v != nil && v.IsNegative() {
			return database.Order{}, ErrNegativeAmount
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := lockUnaccountedOrder(ctx, store, orderID); err != nil {
		return database.Order{}, err
	}

	sum, err := store.SumOrderItems(ctx, orderID)
	if err != nil {
		return database.Order{}, fmt.Errorf("sum order items: %w", err)
	}
	itemTotal := numericToDecimal(sum)

	total := itemTotal
	if req.TotalAmount != nil {
		total = req.TotalAmount.Round(2)
	}
	payment := total
	if req.PaymentReceived != nil {
		payment = req.PaymentReceived.Round(2)
	}
	change := payment.Sub(total)
	if req.ChangeGiven != nil {
		change = req.ChangeGiven.Round(2)
	}
	isClosed := true
	if req.IsClosed != nil {
		isClosed = *req.IsClosed
	}

	overridden := !total.Equal(itemTotal)
	if overridden {
		log.Printf("WARN: order %s settled at %s, item total is %s", orderID, total.StringFixed(2), itemTotal.StringFixed(2))
	}

	order, err := store.CloseOrder(ctx, database.CloseOrderParams{
		ID:              orderID,
		IsClosed:        isClosed,
		TotalAmount:     decimalToNumeric(total),
		TotalOverridden: overridden,
		PaymentReceived: decimalToNumeric(payment),
		ChangeGiven:     decimalToNumeric(change),
	})
	if err != nil {
		return database.Order{}, fmt.Errorf("close order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return order, nil
}

// --- Helpers ---

type orderLocker interface {
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error)
}

// lockOrder takes the order row lock used to serialize mutations of one order.
func lockOrder(ctx context.Context, store orderLocker, orderID uuid.UUID) (database.Order, error) {
	order, err := store.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// lockUnaccountedOrder locks an order that may still change. Orders already
// archived by a daily closing are frozen.
func lockUnaccountedOrder(ctx context.Context, store orderLocker, orderID uuid.UUID) (database.Order, error) {
	order, err := lockOrder(ctx, store, orderID)
	if err != nil {
		return database.Order{}, err
	}
	if order.Accounted {
		return database.Order{}, ErrOrderAccounted
	}
	return order, nil
}

// resolveOrderType validates an explicit type or infers one from the table number.
func resolveOrderType(s string, tableNumber *int32) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case enum.OrderTypeTable:
		return enum.OrderTypeTable, nil
	case enum.OrderTypeTakeaway:
		return enum.OrderTypeTakeaway, nil
	case "":
		if tableNumber != nil {
			return enum.OrderTypeTable, nil
		}
		return enum.OrderTypeTakeaway, nil
	}
	return "", ErrInvalidOrderType
}

// wholeQuantity converts q to an item quantity. Anything at or below zero,
// fractions included, comes back as 0 for callers that treat it as deletion.
func wholeQuantity(q decimal.Decimal) (int32, error) {
	if q.Sign() <= 0 {
		return 0, nil
	}
	if !q.IsInteger() || q.GreaterThan(decimal.NewFromInt(maxItemQuantity)) {
		return 0, ErrInvalidQuantity
	}
	return int32(q.IntPart()), nil
}
