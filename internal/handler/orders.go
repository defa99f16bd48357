package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
	"github.com/snackcounter/api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*service.OrderDetail, error)
	ListOrders(ctx context.Context, f service.ListOrdersFilter) ([]database.Order, error)
	AddItem(ctx context.Context, orderID uuid.UUID, req service.AddItemRequest) (*service.OrderDetail, error)
	UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity *decimal.Decimal) (*service.OrderDetail, error)
	DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) (*service.OrderDetail, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	CloseOrder(ctx context.Context, orderID uuid.UUID, req service.CloseOrderRequest) (database.Order, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
	cal *service.Calendar
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, cal *service.Calendar) *OrderHandler {
	return &OrderHandler{svc: svc, cal: cal}
}

// RegisterRoutes registers the till-facing order endpoints, which need no token.
// Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Close)
	r.Post("/{id}/items", h.AddItem)
	r.Put("/{id}/items/{itemID}", h.UpdateItem)
	r.Delete("/{id}/items/{itemID}", h.DeleteItem)
}

// RegisterProtectedRoutes registers order endpoints that require a token.
func (h *OrderHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type createOrderRequest struct {
	OrderType   string     `json:"order_type"`
	TableNumber flexNumber `json:"table_number"`
	Description string     `json:"description"`
}

type addItemRequest struct {
	ProductName string     `json:"product_name"`
	Quantity    flexNumber `json:"quantity"`
	UnitPrice   flexNumber `json:"unit_price"`
}

type updateItemRequest struct {
	Quantity flexNumber `json:"quantity"`
}

type closeOrderRequest struct {
	TotalAmount     flexNumber `json:"total_amount"`
	PaymentReceived flexNumber `json:"payment_received"`
	ChangeGiven     flexNumber `json:"change_given"`
	IsClosed        *bool      `json:"is_closed"`
}

type orderResponse struct {
	ID              uuid.UUID  `json:"id"`
	TableNumber     *int32     `json:"table_number"`
	OrderType       string     `json:"order_type"`
	Description     string     `json:"description"`
	TakeawaySeq     *int32     `json:"takeaway_seq"`
	OrderDate       time.Time  `json:"order_date"`
	TotalAmount     string     `json:"total_amount"`
	TotalOverridden bool       `json:"total_overridden"`
	PaymentReceived *string    `json:"payment_received"`
	ChangeGiven     *string    `json:"change_given"`
	IsClosed        bool       `json:"is_closed"`
	Accounted       bool       `json:"accounted"`
	ParentOrderID   *uuid.UUID `json:"parent_order_id"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type orderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductName string    `json:"product_name"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	TotalPrice  string    `json:"total_price"`
}

// orderDetailResponse extends orderResponse with items, and on GET with the
// partial-payment tickets split off the order.
type orderDetailResponse struct {
	orderResponse
	Items           []orderItemResponse `json:"items"`
	PartialPayments []orderResponse     `json:"partial_payments,omitempty"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		OrderType:   req.OrderType,
		TableNumber: req.TableNumber.Int32(),
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, "create order", err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.ListOrdersFilter{Status: r.URL.Query().Get("status")}
	if s := r.URL.Query().Get("date"); s != "" {
		day, err := h.cal.ParseDay(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Day = &day
	}

	orders, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, "list orders", err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, r, "id", "invalid order ID")
	if !ok {
		return
	}

	detail, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, "get order", err)
		return
	}

	resp := toOrderDetailResponse(detail)
	resp.PartialPayments = make([]orderResponse, len(detail.PartialPayments))
	for i, p := range detail.PartialPayments {
		resp.PartialPayments[i] = toOrderResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Close handles PUT /orders/{id}: settle the order, overwriting its totals.
func (h *OrderHandler) Close(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, r, "id", "invalid order ID")
	if !ok {
		return
	}

	var req closeOrderRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.CloseOrder(r.Context(), orderID, service.CloseOrderRequest{
		TotalAmount:     req.TotalAmount.Decimal(),
		PaymentReceived: req.PaymentReceived.Decimal(),
		ChangeGiven:     req.ChangeGiven.Decimal(),
		IsClosed:        req.IsClosed,
	})
	if err != nil {
		writeServiceError(w, "close order", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, r, "id", "invalid order ID")
	if !ok {
		return
	}

	if err := h.svc.DeleteOrder(r.Context(), orderID); err != nil {
		writeServiceError(w, "delete order", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /orders/{id}/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, r, "id", "invalid order ID")
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.svc.AddItem(r.Context(), orderID, service.AddItemRequest{
		ProductName: req.ProductName,
		Quantity:    req.Quantity.Decimal(),
		UnitPrice:   req.UnitPrice.Decimal(),
	})
	if err != nil {
		writeServiceError(w, "add order item", err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderDetailResponse(detail))
}

// UpdateItem handles PUT /orders/{id}/items/{itemID}.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, r, "id", "invalid order ID")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(w, r, "itemID", "invalid item ID")
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.svc.UpdateItemQuantity(r.Context(), orderID, itemID, req.Quantity.Decimal())
	if err != nil {
		writeServiceError(w, "update order item", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderDetailResponse(detail))
}

// DeleteItem handles DELETE /orders/{id}/items/{itemID}.
func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, r, "id", "invalid order ID")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(w, r, "itemID", "invalid item ID")
	if !ok {
		return
	}

	detail, err := h.svc.DeleteItem(r.Context(), orderID, itemID)
	if err != nil {
		writeServiceError(w, "delete order item", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderDetailResponse(detail))
}

// --- Helpers ---

// parseUUIDParam reads a UUID URL parameter, writing a 400 when it is malformed.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, msg)
		return uuid.Nil, false
	}
	return id, true
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		TableNumber:     optionalInt(o.TableNumber),
		OrderType:       o.OrderType,
		Description:     o.Description,
		TakeawaySeq:     optionalInt(o.TakeawaySeq),
		OrderDate:       o.OrderDate,
		TotalAmount:     numericToString(o.TotalAmount),
		TotalOverridden: o.TotalOverridden,
		PaymentReceived: optionalNumericString(o.PaymentReceived),
		ChangeGiven:     optionalNumericString(o.ChangeGiven),
		IsClosed:        o.IsClosed,
		Accounted:       o.Accounted,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.ParentOrderID.Valid {
		id := uuid.UUID(o.ParentOrderID.Bytes)
		resp.ParentOrderID = &id
	}
	return resp
}

func toOrderItemResponses(items []database.OrderItem) []orderItemResponse {
	resp := make([]orderItemResponse, len(items))
	for i, it := range items {
		resp[i] = orderItemResponse{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   numericToString(it.UnitPrice),
			TotalPrice:  numericToString(it.TotalPrice),
		}
	}
	return resp
}

func toOrderDetailResponse(d *service.OrderDetail) orderDetailResponse {
	return orderDetailResponse{
		orderResponse: toOrderResponse(d.Order),
		Items:         toOrderItemResponses(d.Items),
	}
}
