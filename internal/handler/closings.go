package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
	"github.com/snackcounter/api/internal/service"
)

// ClosingServicer defines the service methods needed by the end-of-day endpoints.
// Satisfied by *service.ClosingService.
type ClosingServicer interface {
	RunEndOfDay(ctx context.Context, day service.BusinessDay) (*service.EndOfDayResult, error)
	DailyRevenue(ctx context.Context, day service.BusinessDay) (decimal.Decimal, error)
	ListDailyClosings(ctx context.Context, start, end service.BusinessDay) ([]database.DailyClosing, error)
	DeleteDailyClosing(ctx context.Context, id uuid.UUID) error
}

// ClosingHandler serves live revenue, the end-of-day run and the closing archive.
type ClosingHandler struct {
	svc ClosingServicer
	cal *service.Calendar
}

// NewClosingHandler creates a new ClosingHandler.
func NewClosingHandler(svc ClosingServicer, cal *service.Calendar) *ClosingHandler {
	return &ClosingHandler{svc: svc, cal: cal}
}

// RegisterRoutes registers the read-only endpoints.
func (h *ClosingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/daily-revenue", h.DailyRevenue)
	r.Get("/daily-closings", h.ListClosings)
}

// RegisterProtectedRoutes registers endpoints that require a signed-in user.
func (h *ClosingHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/end-of-day", h.EndOfDay)
}

// RegisterOwnerRoutes registers archive maintenance endpoints.
func (h *ClosingHandler) RegisterOwnerRoutes(r chi.Router) {
	r.Delete("/daily-closings/{id}", h.DeleteClosing)
}

// --- Response types ---

type dailyRevenueResponse struct {
	Date         string `json:"date"`
	DailyRevenue string `json:"daily_revenue"`
}

type endOfDayResponse struct {
	Message        string    `json:"message"`
	ClosingID      uuid.UUID `json:"closing_id"`
	ClosingDate    string    `json:"closing_date"`
	ArchivedAmount string    `json:"archived_amount"`
	OrderCount     int64     `json:"order_count"`
	ForceClosed    int64     `json:"force_closed"`
}

type dailyClosingResponse struct {
	ID          uuid.UUID `json:"id"`
	ClosingDate string    `json:"closing_date"`
	TotalAmount string    `json:"total_amount"`
	OrderCount  int32     `json:"order_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Handlers ---

// DailyRevenue handles GET /daily-revenue. ?date=YYYY-MM-DD defaults to today.
func (h *ClosingHandler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	day := h.cal.Today()
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := h.cal.ParseDay(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
			return
		}
		day = d
	}

	rev, err := h.svc.DailyRevenue(r.Context(), day)
	if err != nil {
		writeServiceError(w, "daily revenue", err)
		return
	}

	writeJSON(w, http.StatusOK, dailyRevenueResponse{
		Date:         day.String(),
		DailyRevenue: money(rev),
	})
}

// EndOfDay handles POST /end-of-day for the current business day.
func (h *ClosingHandler) EndOfDay(w http.ResponseWriter, r *http.Request) {
	day := h.cal.Today()

	result, err := h.svc.RunEndOfDay(r.Context(), day)
	if err != nil {
		writeServiceError(w, "end of day", err)
		return
	}

	writeJSON(w, http.StatusOK, endOfDayResponse{
		Message:        fmt.Sprintf("day %s closed", day),
		ClosingID:      result.Closing.ID,
		ClosingDate:    day.String(),
		ArchivedAmount: money(result.ArchivedAmount),
		OrderCount:     result.OrderCount,
		ForceClosed:    result.ForceClosed,
	})
}

// ListClosings handles GET /daily-closings.
// Filters: ?month=M&year=YYYY, or ?start_date=...&end_date=...; default is the
// current month.
func (h *ClosingHandler) ListClosings(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.closingRange(r)
	if err != nil {
		writeServiceError(w, "list daily closings", err)
		return
	}

	closings, err := h.svc.ListDailyClosings(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, "list daily closings", err)
		return
	}

	resp := make([]dailyClosingResponse, len(closings))
	for i, c := range closings {
		resp[i] = dailyClosingResponse{
			ID:          c.ID,
			ClosingDate: service.FormatDate(c.ClosingDate),
			TotalAmount: numericToString(c.TotalAmount),
			OrderCount:  c.OrderCount,
			CreatedAt:   c.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteClosing handles DELETE /daily-closings/{id}.
func (h *ClosingHandler) DeleteClosing(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "invalid closing ID")
	if !ok {
		return
	}

	if err := h.svc.DeleteDailyClosing(r.Context(), id); err != nil {
		writeServiceError(w, "delete daily closing", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ClosingHandler) closingRange(r *http.Request) (service.BusinessDay, service.BusinessDay, error) {
	q := r.URL.Query()
	today := h.cal.Today()
	if q.Get("month") == "" && q.Get("year") == "" {
		first, last := h.cal.Month(today.Year, today.Month)
		return parseDayRange(h.cal, r, first, last)
	}

	year, month := today.Year, today.Month
	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 || y > 9999 {
			return service.BusinessDay{}, service.BusinessDay{}, fmt.Errorf("invalid year: %w", service.ErrInvalidDate)
		}
		year = y
	}
	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return service.BusinessDay{}, service.BusinessDay{}, fmt.Errorf("invalid month: %w", service.ErrInvalidDate)
		}
		month = time.Month(m)
	}
	start, end := h.cal.Month(year, month)
	return start, end, nil
}
