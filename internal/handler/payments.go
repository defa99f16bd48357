package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/snackcounter/api/internal/service"
)

// PaymentServicer defines the service method the partial-payment endpoint needs.
// Satisfied by *service.PaymentService.
type PaymentServicer interface {
	RecordPartialPayment(ctx context.Context, parentID uuid.UUID, req service.PartialPaymentRequest) (*service.PartialPaymentResult, error)
}

// PaymentHandler settles a subset of an order's items as a separate ticket.
type PaymentHandler struct {
	svc PaymentServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc PaymentServicer) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// RegisterRoutes registers the partial-payment endpoint.
// Expected to be mounted at /orders/{id}/partial-payment
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Record)
}

// --- Request / Response types ---

// partialPaymentItem accepts both the register's field names and the short
// aliases older clients send.
type partialPaymentItem struct {
	ProductName string     `json:"product_name"`
	Name        string     `json:"name"`
	Quantity    flexNumber `json:"quantity"`
	UnitPrice   flexNumber `json:"unit_price"`
	Price       flexNumber `json:"price"`
}

func (it partialPaymentItem) toService() service.PartialPaymentItem {
	name := it.ProductName
	if name == "" {
		name = it.Name
	}
	price := it.UnitPrice.Decimal()
	if price == nil {
		price = it.Price.Decimal()
	}
	return service.PartialPaymentItem{
		ProductName: name,
		Quantity:    it.Quantity.Decimal(),
		UnitPrice:   price,
	}
}

type partialPaymentRequest struct {
	Items       []partialPaymentItem `json:"items"`
	Amount      flexNumber           `json:"amount"`
	Payment     flexNumber           `json:"payment"`
	Change      flexNumber           `json:"change"`
	TableNumber flexNumber           `json:"table_number"`
	OrderType   string               `json:"order_type"`
	Description string               `json:"description"`
}

type partialPaymentResponse struct {
	PartialOrderID  uuid.UUID           `json:"partial_order_id"`
	TotalAmount     string              `json:"total_amount"`
	PaymentReceived string              `json:"payment_received"`
	ChangeGiven     string              `json:"change_given"`
	Order           orderResponse       `json:"order"`
	Items           []orderItemResponse `json:"items"`
}

// --- Handlers ---

// Record handles POST /orders/{id}/partial-payment.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	parentID, ok := parseUUIDParam(w, r, "id", "invalid order ID")
	if !ok {
		return
	}

	var req partialPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]service.PartialPaymentItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = it.toService()
	}

	result, err := h.svc.RecordPartialPayment(r.Context(), parentID, service.PartialPaymentRequest{
		Items:       items,
		Amount:      req.Amount.Decimal(),
		Payment:     req.Payment.Decimal(),
		Change:      req.Change.Decimal(),
		TableNumber: req.TableNumber.Int32(),
		OrderType:   req.OrderType,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, "record partial payment", err)
		return
	}

	writeJSON(w, http.StatusCreated, partialPaymentResponse{
		PartialOrderID:  result.Order.ID,
		TotalAmount:     numericToString(result.Order.TotalAmount),
		PaymentReceived: numericToString(result.Order.PaymentReceived),
		ChangeGiven:     numericToString(result.Order.ChangeGiven),
		Order:           toOrderResponse(result.Order),
		Items:           toOrderItemResponses(result.Items),
	})
}
