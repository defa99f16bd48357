package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/enum"
)

// =====================
// Totals
// =====================

func TestOrderTotal_TracksItemMutations(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, err := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "table", TableNumber: i32(4)})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	assertNumeric(t, "initial total", order.TotalAmount, "0")

	first, err := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Toast", Quantity: decPtr("2"), UnitPrice: decPtr("10")})
	if err != nil {
		t.Fatalf("add first item: %v", err)
	}
	detail, err := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Ayran", Quantity: decPtr("3"), UnitPrice: decPtr("5")})
	if err != nil {
		t.Fatalf("add second item: %v", err)
	}
	assertNumeric(t, "total after adds", detail.Order.TotalAmount, "35")
	if len(detail.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(detail.Items))
	}

	toastID := first.Items[0].ID
	detail, err = h.orders.UpdateItemQuantity(ctx, order.ID, toastID, decPtr("0"))
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	assertNumeric(t, "total after zeroing", detail.Order.TotalAmount, "15")
	if len(detail.Items) != 1 || detail.Items[0].ProductName != "Ayran" {
		t.Errorf("expected only Ayran to remain, got %+v", detail.Items)
	}
}

func TestUpdateItemQuantity_RepricesFromUnitPrice(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	detail, _ := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", Quantity: decPtr("1"), UnitPrice: decPtr("42.50")})

	detail, err := h.orders.UpdateItemQuantity(ctx, order.ID, detail.Items[0].ID, decPtr("3"))
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if detail.Items[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", detail.Items[0].Quantity)
	}
	assertNumeric(t, "line total", detail.Items[0].TotalPrice, "127.50")
	assertNumeric(t, "order total", detail.Order.TotalAmount, "127.50")
}

func TestUpdateItemQuantity_Errors(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})

	tests := []struct {
		name     string
		orderID  uuid.UUID
		quantity string
		wantErr  error
	}{
		{"unknown item", order.ID, "2", ErrItemNotFound},
		{"unknown item zero quantity", order.ID, "0", ErrItemNotFound},
		{"unknown order", uuid.New(), "2", ErrOrderNotFound},
		{"fractional", order.ID, "1.5", ErrInvalidQuantity},
		{"unknown item negative fraction", order.ID, "-0.5", ErrItemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.orders.UpdateItemQuantity(ctx, tt.orderID, uuid.New(), decPtr(tt.quantity))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateItemQuantity_NonPositiveDeletes(t *testing.T) {
	for _, qty := range []*decimal.Decimal{nil, decPtr("0"), decPtr("-2"), decPtr("-0.5")} {
		h := newHarness()
		ctx := context.Background()

		order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
		h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Cay", UnitPrice: decPtr("10")})
		detail, _ := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("40")})

		detail, err := h.orders.UpdateItemQuantity(ctx, order.ID, detail.Items[1].ID, qty)
		if err != nil {
			t.Fatalf("quantity %v: %v", qty, err)
		}
		if len(detail.Items) != 1 || detail.Items[0].ProductName != "Cay" {
			t.Errorf("quantity %v: expected only Cay to remain, got %+v", qty, detail.Items)
		}
		assertNumeric(t, "total", detail.Order.TotalAmount, "10")
	}
}

func TestAccountedOrderIsFrozen(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	detail, _ := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("40")})
	itemID := detail.Items[0].ID
	if _, err := h.closings.RunEndOfDay(ctx, h.today()); err != nil {
		t.Fatalf("end of day: %v", err)
	}

	if _, err := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Cay", UnitPrice: decPtr("10")}); !errors.Is(err, ErrOrderAccounted) {
		t.Errorf("add item: got %v, want %v", err, ErrOrderAccounted)
	}
	if _, err := h.orders.UpdateItemQuantity(ctx, order.ID, itemID, decPtr("3")); !errors.Is(err, ErrOrderAccounted) {
		t.Errorf("update item: got %v, want %v", err, ErrOrderAccounted)
	}
	if _, err := h.orders.DeleteItem(ctx, order.ID, itemID); !errors.Is(err, ErrOrderAccounted) {
		t.Errorf("delete item: got %v, want %v", err, ErrOrderAccounted)
	}
	if _, err := h.orders.CloseOrder(ctx, order.ID, CloseOrderRequest{TotalAmount: decPtr("1")}); !errors.Is(err, ErrOrderAccounted) {
		t.Errorf("close: got %v, want %v", err, ErrOrderAccounted)
	}

	got := h.db.orders[order.ID]
	assertNumeric(t, "archived order total", got.TotalAmount, "40")
	if len(h.db.items) != 1 {
		t.Errorf("items: got %d, want 1", len(h.db.items))
	}
}

func TestDeleteItem(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("40")})
	detail, _ := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Cay", UnitPrice: decPtr("10")})

	detail, err := h.orders.DeleteItem(ctx, order.ID, detail.Items[0].ID)
	if err != nil {
		t.Fatalf("delete item: %v", err)
	}
	assertNumeric(t, "total", detail.Order.TotalAmount, "10")

	if _, err := h.orders.DeleteItem(ctx, order.ID, uuid.New()); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("got %v, want %v", err, ErrItemNotFound)
	}
}

// =====================
// AddItem validation
// =====================

func TestAddItem_Defaults(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})

	detail, err := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "  Water  "})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	item := detail.Items[0]
	if item.ProductName != "Water" {
		t.Errorf("product name: got %q, want %q", item.ProductName, "Water")
	}
	if item.Quantity != 1 {
		t.Errorf("quantity: got %d, want 1", item.Quantity)
	}
	assertNumeric(t, "unit price", item.UnitPrice, "0")
	assertNumeric(t, "total", detail.Order.TotalAmount, "0")
}

func TestAddItem_Validation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})

	tests := []struct {
		name    string
		orderID uuid.UUID
		req     AddItemRequest
		wantErr error
	}{
		{"missing name", order.ID, AddItemRequest{ProductName: " ", Quantity: decPtr("1")}, ErrProductNameRequired},
		{"zero quantity", order.ID, AddItemRequest{ProductName: "Tost", Quantity: decPtr("0")}, ErrInvalidQuantity},
		{"negative quantity", order.ID, AddItemRequest{ProductName: "Tost", Quantity: decPtr("-2")}, ErrInvalidQuantity},
		{"fractional quantity", order.ID, AddItemRequest{ProductName: "Tost", Quantity: decPtr("2.5")}, ErrInvalidQuantity},
		{"huge quantity", order.ID, AddItemRequest{ProductName: "Tost", Quantity: decPtr("1000000")}, ErrInvalidQuantity},
		{"negative price", order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("-1")}, ErrNegativeAmount},
		{"unknown order", uuid.New(), AddItemRequest{ProductName: "Tost"}, ErrOrderNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := h.tx.commits
			_, err := h.orders.AddItem(ctx, tt.orderID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if h.tx.commits != commits {
				t.Error("expected no commit on error")
			}
		})
	}
}

// =====================
// CreateOrder
// =====================

func TestCreateOrder_TakeawaySequence(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	for want := int32(1); want <= 4; want++ {
		order, err := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
		if err != nil {
			t.Fatalf("create takeaway %d: %v", want, err)
		}
		if !order.TakeawaySeq.Valid || order.TakeawaySeq.Int32 != want {
			t.Errorf("takeaway_seq: got %+v, want %d", order.TakeawaySeq, want)
		}
		if order.TableNumber.Valid {
			t.Error("takeaway order should have no table number")
		}
	}

	for _, key := range h.db.locks {
		if key != 20240315 {
			t.Errorf("lock key: got %d, want 20240315", key)
		}
	}
	if len(h.db.locks) != 4 {
		t.Errorf("locks taken: got %d, want 4", len(h.db.locks))
	}
}

func TestCreateOrder_SequenceIsPerBusinessDay(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	h.now = time.Date(2024, 3, 15, 23, 30, 0, 0, testZone)
	h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})

	// 21:30 UTC on the 15th is already the 16th locally.
	h.now = time.Date(2024, 3, 15, 21, 30, 0, 0, time.UTC)
	order, err := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TakeawaySeq.Int32 != 1 {
		t.Errorf("takeaway_seq on new day: got %d, want 1", order.TakeawaySeq.Int32)
	}
}

func TestCreateOrder_TableOrders(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, err := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "table", TableNumber: i32(7), Description: " window "})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.OrderType != enum.OrderTypeTable {
		t.Errorf("order type: got %q", order.OrderType)
	}
	if !order.TableNumber.Valid || order.TableNumber.Int32 != 7 {
		t.Errorf("table number: got %+v, want 7", order.TableNumber)
	}
	if order.TakeawaySeq.Valid {
		t.Error("table order should not get a takeaway number")
	}
	if order.Description != "window" {
		t.Errorf("description: got %q", order.Description)
	}
	if order.IsClosed || order.Accounted {
		t.Error("new order should be open and unaccounted")
	}
	if len(h.db.locks) != 1 || h.db.locks[0] != 20240315 {
		t.Errorf("table orders should take the business-day lock, got %v", h.db.locks)
	}
}

func TestCreateOrder_TypeInference(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	withTable, err := h.orders.CreateOrder(ctx, CreateOrderRequest{TableNumber: i32(3)})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if withTable.OrderType != enum.OrderTypeTable {
		t.Errorf("with table: got %q, want table", withTable.OrderType)
	}

	without, err := h.orders.CreateOrder(ctx, CreateOrderRequest{})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if without.OrderType != enum.OrderTypeTakeaway {
		t.Errorf("without table: got %q, want takeaway", without.OrderType)
	}

	upper, err := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "TAKEAWAY", TableNumber: i32(5)})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if upper.OrderType != enum.OrderTypeTakeaway || upper.TableNumber.Valid {
		t.Errorf("takeaway should drop table number, got %+v", upper)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateOrderRequest
		wantErr error
	}{
		{"unknown type", CreateOrderRequest{OrderType: "delivery"}, ErrInvalidOrderType},
		{"table without number", CreateOrderRequest{OrderType: "table"}, ErrTableNumberRequired},
		{"table zero", CreateOrderRequest{OrderType: "table", TableNumber: i32(0)}, ErrTableNumberRequired},
		{"table inferred negative", CreateOrderRequest{TableNumber: i32(-1)}, ErrTableNumberRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.orders.CreateOrder(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
	if len(h.db.orders) != 0 {
		t.Errorf("expected no orders, got %d", len(h.db.orders))
	}
}

func TestCreateOrder_BeginError(t *testing.T) {
	h := newHarness()
	h.pool.err = errors.New("pool exhausted")

	_, err := h.orders.CreateOrder(context.Background(), CreateOrderRequest{OrderType: "takeaway"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateOrder_SequencerFailureRollsBack(t *testing.T) {
	h := newHarness()
	h.db.failOn["NextTakeawaySeq"] = errors.New("deadlock detected")

	_, err := h.orders.CreateOrder(context.Background(), CreateOrderRequest{OrderType: "takeaway"})
	if err == nil {
		t.Fatal("expected error")
	}
	if h.tx.commits != 0 {
		t.Errorf("commits: got %d, want 0", h.tx.commits)
	}
	if h.tx.rollbacks == 0 {
		t.Error("expected rollback")
	}
	if len(h.db.orders) != 0 {
		t.Error("order should not be inserted")
	}
}

func TestCreateOrder_CommitError(t *testing.T) {
	h := newHarness()
	h.tx.commitErr = errors.New("connection reset")

	_, err := h.orders.CreateOrder(context.Background(), CreateOrderRequest{OrderType: "takeaway"})
	if err == nil {
		t.Fatal("expected error")
	}
}

// =====================
// Reads
// =====================

func TestListOrders_Filters(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	open, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	closed, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	if _, err := h.orders.CloseOrder(ctx, closed.ID, CloseOrderRequest{}); err != nil {
		t.Fatalf("close: %v", err)
	}

	h.now = h.now.AddDate(0, 0, -1)
	h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	h.now = h.now.AddDate(0, 0, 1)

	all, err := h.orders.ListOrders(ctx, ListOrdersFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all: got %d, want 3", len(all))
	}

	today := h.today()
	openToday, _ := h.orders.ListOrders(ctx, ListOrdersFilter{Status: "open", Day: &today})
	if len(openToday) != 1 || openToday[0].ID != open.ID {
		t.Errorf("open today: got %+v", openToday)
	}

	closedAll, _ := h.orders.ListOrders(ctx, ListOrdersFilter{Status: "closed"})
	if len(closedAll) != 1 || closedAll[0].ID != closed.ID {
		t.Errorf("closed: got %+v", closedAll)
	}

	if _, err := h.orders.ListOrders(ctx, ListOrdersFilter{Status: "paid"}); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Errorf("got %v, want %v", err, ErrInvalidStatusFilter)
	}
}

func TestGetOrder(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "table", TableNumber: i32(2)})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("40")})

	detail, err := h.orders.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Errorf("items: got %d, want 1", len(detail.Items))
	}

	if _, err := h.orders.GetOrder(ctx, uuid.New()); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("got %v, want %v", err, ErrOrderNotFound)
	}
}

// =====================
// DeleteOrder
// =====================

func TestDeleteOrder_RemovesItems(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost"})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Cay"})

	if err := h.orders.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := h.db.orders[order.ID]; ok {
		t.Error("order still present")
	}
	if len(h.db.items) != 0 {
		t.Errorf("items left: %d", len(h.db.items))
	}

	if err := h.orders.DeleteOrder(ctx, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("second delete: got %v, want %v", err, ErrOrderNotFound)
	}
}

func TestDeleteOrder_DoesNotFreeTakeawayNumber(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	first, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	if err := h.orders.DeleteOrder(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	next, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	if next.TakeawaySeq.Int32 != 2 {
		t.Errorf("takeaway_seq: got %d, want 2", next.TakeawaySeq.Int32)
	}
}

// =====================
// CloseOrder
// =====================

func TestCloseOrder_Defaults(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "table", TableNumber: i32(1)})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", Quantity: decPtr("2"), UnitPrice: decPtr("17.50")})

	closed, err := h.orders.CloseOrder(ctx, order.ID, CloseOrderRequest{})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !closed.IsClosed {
		t.Error("expected order closed")
	}
	if closed.TotalOverridden {
		t.Error("total should not be flagged as overridden")
	}
	assertNumeric(t, "total", closed.TotalAmount, "35")
	assertNumeric(t, "payment", closed.PaymentReceived, "35")
	assertNumeric(t, "change", closed.ChangeGiven, "0")
}

func TestCloseOrder_ComputesChange(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("35")})

	closed, err := h.orders.CloseOrder(ctx, order.ID, CloseOrderRequest{PaymentReceived: decPtr("50")})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	assertNumeric(t, "payment", closed.PaymentReceived, "50")
	assertNumeric(t, "change", closed.ChangeGiven, "15")
}

func TestCloseOrder_ClientTotalIsFlagged(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("35")})

	closed, err := h.orders.CloseOrder(ctx, order.ID, CloseOrderRequest{
		TotalAmount:     decPtr("30"),
		PaymentReceived: decPtr("50"),
		ChangeGiven:     decPtr("20"),
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	assertNumeric(t, "total", closed.TotalAmount, "30")
	if !closed.TotalOverridden {
		t.Error("expected total_overridden")
	}

	// Editing items afterwards brings the total back in line with the items.
	detail, err := h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Cay", UnitPrice: decPtr("5")})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	assertNumeric(t, "recomputed total", detail.Order.TotalAmount, "40")
	if detail.Order.TotalOverridden {
		t.Error("override flag should clear on recompute")
	}
}

func TestCloseOrder_MatchingTotalIsNotFlagged(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	h.orders.AddItem(ctx, order.ID, AddItemRequest{ProductName: "Tost", UnitPrice: decPtr("35")})

	closed, _ := h.orders.CloseOrder(ctx, order.ID, CloseOrderRequest{TotalAmount: decPtr("35.00")})
	if closed.TotalOverridden {
		t.Error("equal total should not be flagged")
	}
}

func TestCloseOrder_KeepOpen(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	updated, err := h.orders.CloseOrder(ctx, order.ID, CloseOrderRequest{IsClosed: boolPtr(false), PaymentReceived: decPtr("10")})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if updated.IsClosed {
		t.Error("is_closed=false should leave the order open")
	}
}

func TestCloseOrder_Errors(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	if _, err := h.orders.CloseOrder(ctx, uuid.New(), CloseOrderRequest{}); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("unknown order: got %v, want %v", err, ErrOrderNotFound)
	}

	order, _ := h.orders.CreateOrder(ctx, CreateOrderRequest{OrderType: "takeaway"})
	if _, err := h.orders.CloseOrder(ctx, order.ID, CloseOrderRequest{TotalAmount: decPtr("-5")}); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("negative total: got %v, want %v", err, ErrNegativeAmount)
	}
}
