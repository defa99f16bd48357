package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
)

// --- Transaction mocks ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitErr   error
	rollbackErr error
	commits     int
	rollbacks   int
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	m.commits++
	return m.commitErr
}
func (m *mockTx) Rollback(ctx context.Context) error {
	m.rollbacks++
	return m.rollbackErr
}
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockPool implements DB. Store factories in tests ignore the DBTX they are
// given, so the query methods are never reached.
type mockPool struct {
	tx     *mockTx
	err    error
	txOpts []pgx.TxOptions
}

func (m *mockPool) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.BeginTx(ctx, pgx.TxOptions{})
}

func (m *mockPool) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.txOpts = append(m.txOpts, opts)
	return m.tx, nil
}
func (m *mockPool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	panic("not implemented")
}

// --- In-memory store ---

type counterKey struct {
	date  time.Time
	epoch int32
}

// fakeDB is an in-memory stand-in for *database.Queries. It satisfies every
// store interface in this package. Writes are applied immediately; tests that
// care about atomicity assert on the mockTx commit count instead.
type fakeDB struct {
	orders     map[uuid.UUID]*database.Order
	orderIDs   []uuid.UUID
	items      map[uuid.UUID]*database.OrderItem
	itemIDs    []uuid.UUID
	counters   map[counterKey]int32
	closings   []database.DailyClosing
	stock      map[uuid.UUID]*database.StockItem
	purchases  []database.StockPurchase
	recipes    map[string]*database.ProductRecipe
	recipeIngs []database.RecipeIngredient
	locks      []int64
	failOn     map[string]error
	beforeMark func()
	clock      time.Time
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		orders:   map[uuid.UUID]*database.Order{},
		items:    map[uuid.UUID]*database.OrderItem{},
		counters: map[counterKey]int32{},
		stock:    map[uuid.UUID]*database.StockItem{},
		recipes:  map[string]*database.ProductRecipe{},
		failOn:   map[string]error{},
		clock:    time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeDB) fail(method string) error {
	return f.failOn[method]
}

// tick returns a strictly increasing timestamp for created_at columns.
func (f *fakeDB) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// --- Sequencing ---

func (f *fakeDB) LockBusinessDay(ctx context.Context, key int64) error {
	if err := f.fail("LockBusinessDay"); err != nil {
		return err
	}
	f.locks = append(f.locks, key)
	return nil
}

func (f *fakeDB) CountDailyClosingsByDate(ctx context.Context, closingDate pgtype.Date) (int64, error) {
	var n int64
	for _, c := range f.closings {
		if c.ClosingDate.Time.Equal(closingDate.Time) {
			n++
		}
	}
	return n, nil
}

func (f *fakeDB) NextTakeawaySeq(ctx context.Context, arg database.NextTakeawaySeqParams) (int32, error) {
	if err := f.fail("NextTakeawaySeq"); err != nil {
		return 0, err
	}
	k := counterKey{date: arg.BusinessDate.Time, epoch: arg.Epoch}
	f.counters[k]++
	return f.counters[k], nil
}

// --- Orders ---

func (f *fakeDB) insertOrder(o database.Order) database.Order {
	o.ID = uuid.New()
	o.UpdatedAt = f.tick()
	if !o.TotalAmount.Valid {
		o.TotalAmount = decimalToNumeric(decimal.Zero)
	}
	f.orders[o.ID] = &o
	f.orderIDs = append(f.orderIDs, o.ID)
	return o
}

func (f *fakeDB) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	if err := f.fail("CreateOrder"); err != nil {
		return database.Order{}, err
	}
	return f.insertOrder(database.Order{
		TableNumber: arg.TableNumber,
		OrderType:   arg.OrderType,
		Description: arg.Description,
		TakeawaySeq: arg.TakeawaySeq,
		OrderDate:   arg.OrderDate,
	}), nil
}

func (f *fakeDB) CreatePartialOrder(ctx context.Context, arg database.CreatePartialOrderParams) (database.Order, error) {
	if err := f.fail("CreatePartialOrder"); err != nil {
		return database.Order{}, err
	}
	return f.insertOrder(database.Order{
		TableNumber:     arg.TableNumber,
		OrderType:       arg.OrderType,
		Description:     arg.Description,
		TakeawaySeq:     arg.TakeawaySeq,
		OrderDate:       arg.OrderDate,
		TotalAmount:     arg.TotalAmount,
		PaymentReceived: arg.PaymentReceived,
		ChangeGiven:     arg.ChangeGiven,
		IsClosed:        true,
		ParentOrderID:   arg.ParentOrderID,
	}), nil
}

func (f *fakeDB) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	return *o, nil
}

func (f *fakeDB) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error) {
	return f.GetOrder(ctx, id)
}

func (f *fakeDB) ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
	var out []database.Order
	for i := len(f.orderIDs) - 1; i >= 0; i-- {
		o, ok := f.orders[f.orderIDs[i]]
		if !ok {
			continue
		}
		if arg.IsClosed.Valid && o.IsClosed != arg.IsClosed.Bool {
			continue
		}
		if arg.StartDate.Valid && o.OrderDate.Before(arg.StartDate.Time) {
			continue
		}
		if arg.EndDate.Valid && !o.OrderDate.Before(arg.EndDate.Time) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeDB) itemSum(orderID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, id := range f.itemIDs {
		if it, ok := f.items[id]; ok && it.OrderID == orderID {
			sum = sum.Add(numericToDecimal(it.TotalPrice))
		}
	}
	return sum
}

func (f *fakeDB) SumOrderItems(ctx context.Context, orderID uuid.UUID) (pgtype.Numeric, error) {
	return decimalToNumeric(f.itemSum(orderID)), nil
}

func (f *fakeDB) RecomputeOrderTotal(ctx context.Context, id uuid.UUID) (database.Order, error) {
	if err := f.fail("RecomputeOrderTotal"); err != nil {
		return database.Order{}, err
	}
	o, ok := f.orders[id]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	o.TotalAmount = decimalToNumeric(f.itemSum(id))
	o.TotalOverridden = false
	o.UpdatedAt = f.tick()
	return *o, nil
}

func (f *fakeDB) CloseOrder(ctx context.Context, arg database.CloseOrderParams) (database.Order, error) {
	if err := f.fail("CloseOrder"); err != nil {
		return database.Order{}, err
	}
	o, ok := f.orders[arg.ID]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	o.IsClosed = arg.IsClosed
	o.TotalAmount = arg.TotalAmount
	o.TotalOverridden = arg.TotalOverridden
	o.PaymentReceived = arg.PaymentReceived
	o.ChangeGiven = arg.ChangeGiven
	o.UpdatedAt = f.tick()
	return *o, nil
}

func (f *fakeDB) AddOrderPayment(ctx context.Context, arg database.AddOrderPaymentParams) (int64, error) {
	if err := f.fail("AddOrderPayment"); err != nil {
		return 0, err
	}
	o, ok := f.orders[arg.ID]
	if !ok {
		return 0, nil
	}
	o.PaymentReceived = decimalToNumeric(numericToDecimal(o.PaymentReceived).Add(numericToDecimal(arg.Amount)))
	return 1, nil
}

func (f *fakeDB) DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.orders[id]; !ok {
		return 0, nil
	}
	delete(f.orders, id)
	return 1, nil
}

func (f *fakeDB) ListChildOrders(ctx context.Context, parentOrderID pgtype.UUID) ([]database.Order, error) {
	var out []database.Order
	for _, id := range f.orderIDs {
		o, ok := f.orders[id]
		if ok && o.ParentOrderID.Valid && o.ParentOrderID.Bytes == parentOrderID.Bytes {
			out = append(out, *o)
		}
	}
	return out, nil
}

// --- Order items ---

func (f *fakeDB) CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
	if err := f.fail("CreateOrderItem"); err != nil {
		return database.OrderItem{}, err
	}
	it := database.OrderItem{
		ID:          uuid.New(),
		OrderID:     arg.OrderID,
		ProductName: arg.ProductName,
		Quantity:    arg.Quantity,
		UnitPrice:   arg.UnitPrice,
		TotalPrice:  arg.TotalPrice,
		CreatedAt:   f.tick(),
	}
	f.items[it.ID] = &it
	f.itemIDs = append(f.itemIDs, it.ID)
	return it, nil
}

func (f *fakeDB) UpdateOrderItemQuantity(ctx context.Context, arg database.UpdateOrderItemQuantityParams) (database.OrderItem, error) {
	it, ok := f.items[arg.ID]
	if !ok || it.OrderID != arg.OrderID {
		return database.OrderItem{}, pgx.ErrNoRows
	}
	it.Quantity = arg.Quantity
	it.TotalPrice = decimalToNumeric(numericToDecimal(it.UnitPrice).Mul(decimal.NewFromInt32(arg.Quantity)))
	return *it, nil
}

func (f *fakeDB) DeleteOrderItem(ctx context.Context, arg database.DeleteOrderItemParams) (int64, error) {
	it, ok := f.items[arg.ID]
	if !ok || it.OrderID != arg.OrderID {
		return 0, nil
	}
	delete(f.items, arg.ID)
	return 1, nil
}

func (f *fakeDB) DeleteOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error {
	for id, it := range f.items {
		if it.OrderID == orderID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeDB) ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error) {
	var out []database.OrderItem
	for _, id := range f.itemIDs {
		if it, ok := f.items[id]; ok && it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	return out, nil
}

// --- End of day ---

func (f *fakeDB) ordersBetween(start, end time.Time) []*database.Order {
	var out []*database.Order
	for _, id := range f.orderIDs {
		if o, ok := f.orders[id]; ok && inRange(o.OrderDate, start, end) {
			out = append(out, o)
		}
	}
	return out
}

func settleDefaults(o *database.Order) {
	if !o.PaymentReceived.Valid {
		o.PaymentReceived = o.TotalAmount
	}
	if !o.ChangeGiven.Valid {
		o.ChangeGiven = decimalToNumeric(decimal.Zero)
	}
}

func (f *fakeDB) ForceCloseOpenOrders(ctx context.Context, arg database.ForceCloseOpenOrdersParams) (int64, error) {
	if err := f.fail("ForceCloseOpenOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, o := range f.ordersBetween(arg.StartDate, arg.EndDate) {
		if o.IsClosed {
			continue
		}
		o.IsClosed = true
		settleDefaults(o)
		n++
	}
	return n, nil
}

func (f *fakeDB) SumUnaccountedOrders(ctx context.Context, arg database.SumUnaccountedOrdersParams) (database.SumUnaccountedOrdersRow, error) {
	sum := decimal.Zero
	var n int64
	for _, o := range f.ordersBetween(arg.StartDate, arg.EndDate) {
		if o.Accounted {
			continue
		}
		sum = sum.Add(numericToDecimal(o.TotalAmount))
		n++
	}
	return database.SumUnaccountedOrdersRow{TotalAmount: decimalToNumeric(sum), OrderCount: n}, nil
}

func (f *fakeDB) CreateDailyClosing(ctx context.Context, arg database.CreateDailyClosingParams) (database.DailyClosing, error) {
	if err := f.fail("CreateDailyClosing"); err != nil {
		return database.DailyClosing{}, err
	}
	c := database.DailyClosing{
		ID:          uuid.New(),
		ClosingDate: arg.ClosingDate,
		TotalAmount: arg.TotalAmount,
		OrderCount:  arg.OrderCount,
		CreatedAt:   f.tick(),
	}
	f.closings = append(f.closings, c)
	return c, nil
}

func (f *fakeDB) MarkOrdersAccounted(ctx context.Context, arg database.MarkOrdersAccountedParams) (int64, error) {
	if err := f.fail("MarkOrdersAccounted"); err != nil {
		return 0, err
	}
	if f.beforeMark != nil {
		f.beforeMark()
	}
	var n int64
	for _, o := range f.ordersBetween(arg.StartDate, arg.EndDate) {
		if o.Accounted {
			continue
		}
		o.Accounted = true
		o.IsClosed = true
		settleDefaults(o)
		n++
	}
	return n, nil
}

func (f *fakeDB) GetDailyRevenue(ctx context.Context, arg database.GetDailyRevenueParams) (pgtype.Numeric, error) {
	sum := decimal.Zero
	for _, o := range f.ordersBetween(arg.StartDate, arg.EndDate) {
		if !o.IsClosed || o.Accounted {
			continue
		}
		net := numericToDecimal(o.PaymentReceived).Sub(numericToDecimal(o.ChangeGiven))
		if net.IsPositive() {
			sum = sum.Add(net)
		}
	}
	return decimalToNumeric(sum), nil
}

func (f *fakeDB) ListDailyClosings(ctx context.Context, arg database.ListDailyClosingsParams) ([]database.DailyClosing, error) {
	var out []database.DailyClosing
	for _, c := range f.closings {
		d := c.ClosingDate.Time
		if d.Before(arg.StartDate.Time) || d.After(arg.EndDate.Time) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeDB) DeleteDailyClosing(ctx context.Context, id uuid.UUID) (int64, error) {
	for i, c := range f.closings {
		if c.ID == id {
			f.closings = append(f.closings[:i], f.closings[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// --- Stock ---

func (f *fakeDB) addStockItem(code, name string, average *decimal.Decimal) database.StockItem {
	it := database.StockItem{
		ID:           uuid.New(),
		Code:         code,
		Name:         name,
		Unit:         "pcs",
		AveragePrice: optionalNumeric(average),
		IsActive:     true,
		CreatedAt:    f.tick(),
	}
	f.stock[it.ID] = &it
	return it
}

func (f *fakeDB) addPurchase(stockItemID uuid.UUID, qty, price string, date time.Time) {
	f.purchases = append(f.purchases, database.StockPurchase{
		ID:           uuid.New(),
		StockItemID:  stockItemID,
		Quantity:     decimalToNumeric(decimal.RequireFromString(qty)),
		UnitPrice:    decimalToNumeric(decimal.RequireFromString(price)),
		PurchaseDate: pgtype.Date{Time: date, Valid: true},
		CreatedAt:    f.tick(),
	})
}

// purchasesOf returns an item's purchases, most recent first.
func (f *fakeDB) purchasesOf(stockItemID uuid.UUID) []database.StockPurchase {
	var out []database.StockPurchase
	for _, p := range f.purchases {
		if p.StockItemID == stockItemID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Time.Equal(out[j].PurchaseDate.Time) {
			return out[i].PurchaseDate.Time.After(out[j].PurchaseDate.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeDB) ListStockItemCosts(ctx context.Context) ([]database.ListStockItemCostsRow, error) {
	if err := f.fail("ListStockItemCosts"); err != nil {
		return nil, err
	}
	var out []database.ListStockItemCostsRow
	for _, it := range f.stock {
		if !it.IsActive {
			continue
		}
		row := database.ListStockItemCostsRow{
			ID:           it.ID,
			Code:         it.Code,
			Name:         it.Name,
			Unit:         it.Unit,
			AveragePrice: it.AveragePrice,
		}
		if ps := f.purchasesOf(it.ID); len(ps) > 0 {
			row.LatestPrice = ps[0].UnitPrice
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeDB) GetStockItem(ctx context.Context, id uuid.UUID) (database.StockItem, error) {
	it, ok := f.stock[id]
	if !ok {
		return database.StockItem{}, pgx.ErrNoRows
	}
	return *it, nil
}

func (f *fakeDB) CreateStockItem(ctx context.Context, arg database.CreateStockItemParams) (database.StockItem, error) {
	for _, it := range f.stock {
		if it.Code == arg.Code {
			return database.StockItem{}, &pgconn.PgError{Code: "23505", ConstraintName: "stock_items_code_key"}
		}
	}
	it := database.StockItem{
		ID:           uuid.New(),
		Code:         arg.Code,
		Name:         arg.Name,
		Unit:         arg.Unit,
		AveragePrice: arg.AveragePrice,
		IsActive:     true,
		CreatedAt:    f.tick(),
	}
	f.stock[it.ID] = &it
	return it, nil
}

func (f *fakeDB) CreateStockPurchase(ctx context.Context, arg database.CreateStockPurchaseParams) (database.StockPurchase, error) {
	p := database.StockPurchase{
		ID:           uuid.New(),
		StockItemID:  arg.StockItemID,
		Quantity:     arg.Quantity,
		UnitPrice:    arg.UnitPrice,
		PurchaseDate: arg.PurchaseDate,
		CreatedAt:    f.tick(),
	}
	f.purchases = append(f.purchases, p)
	return p, nil
}

func (f *fakeDB) RefreshStockItemAveragePrice(ctx context.Context, id uuid.UUID) (database.StockItem, error) {
	it, ok := f.stock[id]
	if !ok {
		return database.StockItem{}, pgx.ErrNoRows
	}
	qty, cost := decimal.Zero, decimal.Zero
	for _, p := range f.purchasesOf(id) {
		q := numericToDecimal(p.Quantity)
		qty = qty.Add(q)
		cost = cost.Add(q.Mul(numericToDecimal(p.UnitPrice)))
	}
	if qty.IsZero() {
		it.AveragePrice = pgtype.Numeric{}
	} else {
		it.AveragePrice = decimalToNumeric(cost.DivRound(qty, 4))
	}
	return *it, nil
}

func (f *fakeDB) ListStockPurchases(ctx context.Context, stockItemID uuid.UUID) ([]database.StockPurchase, error) {
	return f.purchasesOf(stockItemID), nil
}

// --- Recipes ---

func (f *fakeDB) UpsertProductRecipe(ctx context.Context, arg database.UpsertProductRecipeParams) (database.ProductRecipe, error) {
	if err := f.fail("UpsertProductRecipe"); err != nil {
		return database.ProductRecipe{}, err
	}
	now := f.tick()
	r, ok := f.recipes[arg.ProductName]
	if !ok {
		r = &database.ProductRecipe{ID: uuid.New(), ProductName: arg.ProductName, CreatedAt: now}
		f.recipes[arg.ProductName] = r
	}
	r.Notes = arg.Notes
	r.UpdatedAt = now
	return *r, nil
}

func (f *fakeDB) GetProductRecipeByName(ctx context.Context, productName string) (database.ProductRecipe, error) {
	r, ok := f.recipes[productName]
	if !ok {
		return database.ProductRecipe{}, pgx.ErrNoRows
	}
	return *r, nil
}

func (f *fakeDB) ListProductRecipes(ctx context.Context) ([]database.ProductRecipe, error) {
	var out []database.ProductRecipe
	for _, r := range f.recipes {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (f *fakeDB) DeleteRecipeIngredients(ctx context.Context, recipeID uuid.UUID) error {
	kept := f.recipeIngs[:0]
	for _, ri := range f.recipeIngs {
		if ri.RecipeID != recipeID {
			kept = append(kept, ri)
		}
	}
	f.recipeIngs = kept
	return nil
}

func (f *fakeDB) CreateRecipeIngredient(ctx context.Context, arg database.CreateRecipeIngredientParams) (database.RecipeIngredient, error) {
	ri := database.RecipeIngredient{
		ID:               uuid.New(),
		RecipeID:         arg.RecipeID,
		StockItemID:      arg.StockItemID,
		Quantity:         arg.Quantity,
		UnitCostOverride: arg.UnitCostOverride,
		Position:         arg.Position,
	}
	f.recipeIngs = append(f.recipeIngs, ri)
	return ri, nil
}

func (f *fakeDB) ListRecipeIngredients(ctx context.Context, recipeID uuid.UUID) ([]database.RecipeIngredient, error) {
	var out []database.RecipeIngredient
	for _, ri := range f.recipeIngs {
		if ri.RecipeID == recipeID {
			out = append(out, ri)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// --- Reports ---

func (f *fakeDB) GetProductSales(ctx context.Context, arg database.GetProductSalesParams) ([]database.GetProductSalesRow, error) {
	agg := map[string]*database.GetProductSalesRow{}
	var names []string
	for _, o := range f.ordersBetween(arg.StartDate, arg.EndDate) {
		if !o.IsClosed || o.ParentOrderID.Valid {
			continue
		}
		for _, id := range f.itemIDs {
			it, ok := f.items[id]
			if !ok || it.OrderID != o.ID {
				continue
			}
			row, ok := agg[it.ProductName]
			if !ok {
				row = &database.GetProductSalesRow{ProductName: it.ProductName, TotalRevenue: decimalToNumeric(decimal.Zero)}
				agg[it.ProductName] = row
				names = append(names, it.ProductName)
			}
			row.QuantitySold += int64(it.Quantity)
			row.TotalRevenue = decimalToNumeric(numericToDecimal(row.TotalRevenue).Add(numericToDecimal(it.TotalPrice)))
		}
	}
	out := make([]database.GetProductSalesRow, 0, len(names))
	for _, n := range names {
		out = append(out, *agg[n])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return strings.Compare(out[i].ProductName, out[j].ProductName) < 0
	})
	if int(arg.Limit) < len(out) {
		out = out[:arg.Limit]
	}
	return out, nil
}
