package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/snackcounter/api/internal/service"
)

// ReportServicer defines the service methods needed by report handlers.
// Satisfied by *service.ReportService.
type ReportServicer interface {
	ProductSales(ctx context.Context, start, end service.BusinessDay, limit int) ([]service.ProductSales, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	svc ReportServicer
	cal *service.Calendar
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(svc ReportServicer, cal *service.Calendar) *ReportsHandler {
	return &ReportsHandler{svc: svc, cal: cal}
}

// RegisterRoutes registers report endpoints.
// Expected to be mounted at /reports
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/product-sales", h.ProductSales)
}

// --- Response types ---

type productSalesResponse struct {
	ProductName   string  `json:"product_name"`
	QuantitySold  int64   `json:"quantity_sold"`
	Revenue       string  `json:"revenue"`
	UnitCost      *string `json:"unit_cost"`
	EstimatedCost string  `json:"estimated_cost"`
	GrossMargin   string  `json:"gross_margin"`
}

// --- Handlers ---

// ProductSales handles GET /reports/product-sales.
// Query params: start_date, end_date (YYYY-MM-DD, inclusive; default this
// month so far), limit (default 50, max 500).
func (h *ReportsHandler) ProductSales(w http.ResponseWriter, r *http.Request) {
	defStart, defEnd := currentMonth(h.cal)
	start, end, err := parseDayRange(h.cal, r, defStart, defEnd)
	if err != nil {
		writeServiceError(w, "product sales", err)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	rows, err := h.svc.ProductSales(r.Context(), start, end, limit)
	if err != nil {
		writeServiceError(w, "product sales", err)
		return
	}

	resp := make([]productSalesResponse, len(rows))
	for i, row := range rows {
		var unitCost *string
		if row.UnitCost != nil {
			s := money(*row.UnitCost)
			unitCost = &s
		}
		resp[i] = productSalesResponse{
			ProductName:   row.ProductName,
			QuantitySold:  row.QuantitySold,
			Revenue:       money(row.Revenue),
			UnitCost:      unitCost,
			EstimatedCost: money(row.EstimatedCost),
			GrossMargin:   money(row.GrossMargin),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
