package service

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
)

// testZone stands in for the shop's location (UTC+3, no DST).
var testZone = time.FixedZone("TRT", 3*60*60)

// harness wires every service to one fakeDB and a calendar pinned to h.now.
type harness struct {
	db   *fakeDB
	tx   *mockTx
	pool *mockPool
	cal  *Calendar
	now  time.Time

	orders   *OrderService
	payments *PaymentService
	closings *ClosingService
	costs    *CostService
	stock    *StockService
	reports  *ReportService
}

func newHarness() *harness {
	h := &harness{db: newFakeDB(), tx: &mockTx{}}
	h.pool = &mockPool{tx: h.tx}
	h.now = time.Date(2024, 3, 15, 12, 0, 0, 0, testZone)
	h.cal = NewCalendar(testZone).WithClock(func() time.Time { return h.now })

	h.orders = NewOrderService(h.pool, func(database.DBTX) OrderStore { return h.db }, h.cal)
	h.payments = NewPaymentService(h.pool, func(database.DBTX) PaymentStore { return h.db }, h.cal)
	h.closings = NewClosingService(h.pool, func(database.DBTX) ClosingStore { return h.db })
	h.costs = NewCostService(h.pool, func(database.DBTX) CostStore { return h.db })
	h.stock = NewStockService(h.pool, func(database.DBTX) StockStore { return h.db }, h.cal)
	h.reports = NewReportService(h.pool, func(database.DBTX) ReportStore { return h.db }, h.costs)
	return h
}

func (h *harness) today() BusinessDay { return h.cal.Today() }

// --- Test helpers ---

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func i32(v int32) *int32 { return &v }

func boolPtr(v bool) *bool { return &v }

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: got %s, want %s", label, got, want)
	}
}

func assertNumeric(t *testing.T, label string, got pgtype.Numeric, want string) {
	t.Helper()
	if !got.Valid {
		t.Errorf("%s: got NULL, want %s", label, want)
		return
	}
	assertDecimal(t, label, numericToDecimal(got), want)
}

func dailyClosingParams(day BusinessDay) database.CreateDailyClosingParams {
	return database.CreateDailyClosingParams{
		ClosingDate: day.PgDate(),
		TotalAmount: decimalToNumeric(decimal.Zero),
	}
}
