package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/snackcounter/api/internal/database"
	"github.com/snackcounter/api/internal/service"
)

// StockServicer defines the service methods needed by stock endpoints.
// Satisfied by *service.StockService.
type StockServicer interface {
	CreateStockItem(ctx context.Context, req service.CreateStockItemRequest) (database.StockItem, error)
	RecordPurchase(ctx context.Context, stockItemID uuid.UUID, req service.RecordPurchaseRequest) (*service.PurchaseResult, error)
	ListPurchases(ctx context.Context, stockItemID uuid.UUID) ([]database.StockPurchase, error)
}

// IngredientLister lists stock items with their effective unit cost.
// Satisfied by *service.CostService.
type IngredientLister interface {
	ListIngredientCosts(ctx context.Context) ([]service.IngredientCost, error)
}

// StockHandler handles stock code and purchase endpoints.
type StockHandler struct {
	svc   StockServicer
	costs IngredientLister
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(svc StockServicer, costs IngredientLister) *StockHandler {
	return &StockHandler{svc: svc, costs: costs}
}

// RegisterRoutes registers read endpoints.
// Expected to be mounted at /stock-items
func (h *StockHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}/purchases", h.ListPurchases)
}

// RegisterProtectedRoutes registers write endpoints.
func (h *StockHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Post("/{id}/purchases", h.RecordPurchase)
}

// --- Request / Response types ---

type createStockItemRequest struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Unit         string     `json:"unit"`
	AveragePrice flexNumber `json:"average_price"`
}

type recordPurchaseRequest struct {
	Quantity     flexNumber `json:"quantity"`
	UnitPrice    flexNumber `json:"unit_price"`
	PurchaseDate string     `json:"purchase_date"`
}

type stockItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	AveragePrice *string   `json:"average_price"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type purchaseResponse struct {
	ID           uuid.UUID `json:"id"`
	StockItemID  uuid.UUID `json:"stock_item_id"`
	Quantity     string    `json:"quantity"`
	UnitPrice    string    `json:"unit_price"`
	PurchaseDate string    `json:"purchase_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type recordPurchaseResponse struct {
	Purchase purchaseResponse  `json:"purchase"`
	Item     stockItemResponse `json:"item"`
}

// --- Handlers ---

// List handles GET /stock-items. Items carry their effective unit cost.
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.costs.ListIngredientCosts(r.Context())
	if err != nil {
		writeServiceError(w, "list stock items", err)
		return
	}
	writeJSON(w, http.StatusOK, toIngredientCostResponses(items))
}

// Create handles POST /stock-items.
func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStockItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateStockItem(r.Context(), service.CreateStockItemRequest{
		Code:         req.Code,
		Name:         req.Name,
		Unit:         req.Unit,
		AveragePrice: req.AveragePrice.Decimal(),
	})
	if err != nil {
		writeServiceError(w, "create stock item", err)
		return
	}
	writeJSON(w, http.StatusCreated, toStockItemResponse(item))
}

// ListPurchases handles GET /stock-items/{id}/purchases.
func (h *StockHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "invalid stock item ID")
	if !ok {
		return
	}

	purchases, err := h.svc.ListPurchases(r.Context(), id)
	if err != nil {
		writeServiceError(w, "list purchases", err)
		return
	}

	resp := make([]purchaseResponse, len(purchases))
	for i, p := range purchases {
		resp[i] = toPurchaseResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// RecordPurchase handles POST /stock-items/{id}/purchases.
func (h *StockHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "invalid stock item ID")
	if !ok {
		return
	}

	var req recordPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RecordPurchase(r.Context(), id, service.RecordPurchaseRequest{
		Quantity:     req.Quantity.Decimal(),
		UnitPrice:    req.UnitPrice.Decimal(),
		PurchaseDate: req.PurchaseDate,
	})
	if err != nil {
		writeServiceError(w, "record purchase", err)
		return
	}

	writeJSON(w, http.StatusCreated, recordPurchaseResponse{
		Purchase: toPurchaseResponse(result.Purchase),
		Item:     toStockItemResponse(result.Item),
	})
}

// --- Helpers ---

func toStockItemResponse(it database.StockItem) stockItemResponse {
	var avg *string
	if it.AveragePrice.Valid {
		s := numericToFixed(it.AveragePrice, 4)
		avg = &s
	}
	return stockItemResponse{
		ID:           it.ID,
		Code:         it.Code,
		Name:         it.Name,
		Unit:         it.Unit,
		AveragePrice: avg,
		IsActive:     it.IsActive,
		CreatedAt:    it.CreatedAt,
	}
}

func toPurchaseResponse(p database.StockPurchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		StockItemID:  p.StockItemID,
		Quantity:     numericToFixed(p.Quantity, 4),
		UnitPrice:    numericToFixed(p.UnitPrice, 4),
		PurchaseDate: service.FormatDate(p.PurchaseDate),
		CreatedAt:    p.CreatedAt,
	}
}
