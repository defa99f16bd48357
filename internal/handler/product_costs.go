package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/snackcounter/api/internal/service"
)

// CostServicer defines the service methods needed by the recipe cost endpoints.
// Satisfied by *service.CostService.
type CostServicer interface {
	SaveRecipe(ctx context.Context, productName, notes string, ingredients []service.RecipeIngredientInput) (*service.RecipeCost, error)
	GetRecipeCost(ctx context.Context, productName string) (*service.RecipeCost, error)
	ListRecipeCosts(ctx context.Context) ([]service.RecipeCost, error)
	ListIngredientCosts(ctx context.Context) ([]service.IngredientCost, error)
}

// ProductCostHandler serves product recipes and their rolled-up costs.
type ProductCostHandler struct {
	svc CostServicer
}

// NewProductCostHandler creates a new ProductCostHandler.
func NewProductCostHandler(svc CostServicer) *ProductCostHandler {
	return &ProductCostHandler{svc: svc}
}

// RegisterRoutes registers the read endpoints.
// Expected to be mounted at /product-costs
func (h *ProductCostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/ingredients", h.ListIngredients)
	r.Get("/{productName}", h.Get)
}

// RegisterProtectedRoutes registers the recipe editor's write endpoint.
func (h *ProductCostHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Put("/{productName}", h.Save)
}

// --- Request / Response types ---

// recipeIngredientRequest identifies the stock item by stock_ref, or by
// stock_item_id / stock_code for clients that send one explicitly.
type recipeIngredientRequest struct {
	StockRef         string     `json:"stock_ref"`
	StockItemID      string     `json:"stock_item_id"`
	StockCode        string     `json:"stock_code"`
	Quantity         flexNumber `json:"quantity"`
	UnitCostOverride flexNumber `json:"unit_cost_override"`
}

func (in recipeIngredientRequest) ref() string {
	for _, s := range []string{in.StockRef, in.StockItemID, in.StockCode} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

type saveRecipeRequest struct {
	Notes       string                    `json:"notes"`
	Ingredients []recipeIngredientRequest `json:"ingredients"`
}

type recipeLineResponse struct {
	StockItemID      uuid.UUID `json:"stock_item_id"`
	StockCode        string    `json:"stock_code"`
	Name             string    `json:"name"`
	Unit             string    `json:"unit"`
	Quantity         string    `json:"quantity"`
	UnitCostOverride *string   `json:"unit_cost_override"`
	UnitCost         string    `json:"unit_cost"`
	CostSource       string    `json:"cost_source"`
	LineCost         string    `json:"line_cost"`
}

type recipeCostResponse struct {
	ProductName string               `json:"product_name"`
	Notes       string               `json:"notes"`
	TotalCost   string               `json:"total_cost"`
	Ingredients []recipeLineResponse `json:"ingredients"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type ingredientCostResponse struct {
	StockItemID  uuid.UUID `json:"stock_item_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	AveragePrice *string   `json:"average_price"`
	LatestPrice  *string   `json:"latest_price"`
	UnitCost     string    `json:"unit_cost"`
	CostSource   string    `json:"cost_source"`
}

// --- Handlers ---

// List handles GET /product-costs.
func (h *ProductCostHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListRecipeCosts(r.Context())
	if err != nil {
		writeServiceError(w, "list recipe costs", err)
		return
	}

	resp := make([]recipeCostResponse, len(recipes))
	for i := range recipes {
		resp[i] = toRecipeCostResponse(&recipes[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListIngredients handles GET /product-costs/ingredients.
func (h *ProductCostHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListIngredientCosts(r.Context())
	if err != nil {
		writeServiceError(w, "list ingredient costs", err)
		return
	}
	writeJSON(w, http.StatusOK, toIngredientCostResponses(items))
}

// Get handles GET /product-costs/{productName}.
func (h *ProductCostHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, ok := productNameParam(w, r)
	if !ok {
		return
	}

	recipe, err := h.svc.GetRecipeCost(r.Context(), name)
	if err != nil {
		writeServiceError(w, "get recipe cost", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipeCostResponse(recipe))
}

// Save handles PUT /product-costs/{productName}. The submitted ingredient
// list replaces the stored one.
func (h *ProductCostHandler) Save(w http.ResponseWriter, r *http.Request) {
	name, ok := productNameParam(w, r)
	if !ok {
		return
	}

	var req saveRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inputs := make([]service.RecipeIngredientInput, len(req.Ingredients))
	for i, in := range req.Ingredients {
		inputs[i] = service.RecipeIngredientInput{
			StockRef:         in.ref(),
			Quantity:         in.Quantity.Decimal(),
			UnitCostOverride: in.UnitCostOverride.Decimal(),
		}
	}

	recipe, err := h.svc.SaveRecipe(r.Context(), name, req.Notes, inputs)
	if err != nil {
		writeServiceError(w, "save recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipeCostResponse(recipe))
}

// --- Helpers ---

// productNameParam reads {productName}. chi matches against the decoded path
// unless the request carried a non-canonical escape (such as %2F), in which
// case it routes on RawPath and the segment still needs one unescape.
func productNameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "productName")
	var err error
	if r.URL.RawPath != "" {
		name, err = url.PathUnescape(name)
	}
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "invalid product name")
		return "", false
	}
	return name, true
}

func toRecipeCostResponse(rc *service.RecipeCost) recipeCostResponse {
	lines := make([]recipeLineResponse, len(rc.Ingredients))
	for i, l := range rc.Ingredients {
		lines[i] = recipeLineResponse{
			StockItemID:      l.StockItemID,
			StockCode:        l.Code,
			Name:             l.Name,
			Unit:             l.Unit,
			Quantity:         cost(l.Quantity),
			UnitCostOverride: optionalCost(l.UnitCostOverride),
			UnitCost:         cost(l.UnitCost),
			CostSource:       l.CostSource,
			LineCost:         cost(l.LineCost),
		}
	}
	return recipeCostResponse{
		ProductName: rc.ProductName,
		Notes:       rc.Notes,
		TotalCost:   cost(rc.TotalCost),
		Ingredients: lines,
		UpdatedAt:   rc.UpdatedAt,
	}
}

func toIngredientCostResponses(items []service.IngredientCost) []ingredientCostResponse {
	resp := make([]ingredientCostResponse, len(items))
	for i, it := range items {
		resp[i] = ingredientCostResponse{
			StockItemID:  it.StockItemID,
			Code:         it.Code,
			Name:         it.Name,
			Unit:         it.Unit,
			AveragePrice: optionalCost(it.AveragePrice),
			LatestPrice:  optionalCost(it.LatestPrice),
			UnitCost:     cost(it.UnitCost),
			CostSource:   it.CostSource,
		}
	}
	return resp
}
