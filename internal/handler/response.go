package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// decodeOptionalBody decodes a JSON body, treating an empty body as {}.
func decodeOptionalBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a service error to a status code. Storage errors are
// passed through verbatim: this API only serves the shop's own staff.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case isNotFoundError(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateStockCode),
		errors.Is(err, service.ErrOrderAccounted),
		errors.Is(err, service.ErrClosingConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// isValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidOrderType) ||
		errors.Is(err, service.ErrTableNumberRequired) ||
		errors.Is(err, service.ErrProductNameRequired) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrNegativeAmount) ||
		errors.Is(err, service.ErrInvalidStatusFilter) ||
		errors.Is(err, service.ErrPaymentItemsRequired) ||
		errors.Is(err, service.ErrNoValidPaymentItems) ||
		errors.Is(err, service.ErrInvalidRange) ||
		errors.Is(err, service.ErrInvalidDate) ||
		errors.Is(err, service.ErrStockCodeRequired) ||
		errors.Is(err, service.ErrStockNameRequired) ||
		errors.Is(err, service.ErrInvalidPurchase)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, service.ErrOrderNotFound) ||
		errors.Is(err, service.ErrItemNotFound) ||
		errors.Is(err, service.ErrClosingNotFound) ||
		errors.Is(err, service.ErrRecipeNotFound) ||
		errors.Is(err, service.ErrStockItemNotFound)
}

// --- Lenient numbers ---

// flexNumber accepts a JSON number, a numeric string or null. Anything that
// does not parse as a finite decimal (NaN, Infinity, booleans, objects)
// leaves it unset rather than failing the request.
type flexNumber struct {
	value decimal.Decimal
	set   bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	*n = flexNumber{}
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	n.value, n.set = d, true
	return nil
}

// Decimal returns nil when the value was absent or unusable.
func (n flexNumber) Decimal() *decimal.Decimal {
	if !n.set {
		return nil
	}
	d := n.value
	return &d
}

// Int32 returns nil unless the value is a whole number that fits in an int32.
func (n flexNumber) Int32() *int32 {
	if !n.set || !n.value.IsInteger() {
		return nil
	}
	if n.value.LessThan(decimal.NewFromInt(math.MinInt32)) || n.value.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return nil
	}
	v := int32(n.value.IntPart())
	return &v
}

// --- Formatting ---

func numericToString(n pgtype.Numeric) string {
	return numericToFixed(n, 2)
}

func numericToFixed(n pgtype.Numeric, places int32) string {
	if !n.Valid {
		return decimal.Zero.StringFixed(places)
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero.StringFixed(places)
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero.StringFixed(places)
	}
	return d.StringFixed(places)
}

// optionalNumericString keeps SQL NULL as JSON null.
func optionalNumericString(n pgtype.Numeric) *string {
	if !n.Valid {
		return nil
	}
	s := numericToString(n)
	return &s
}

func optionalInt(n pgtype.Int4) *int32 {
	if !n.Valid {
		return nil
	}
	v := n.Int32
	return &v
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func cost(d decimal.Decimal) string { return d.StringFixed(4) }

func optionalCost(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := cost(*d)
	return &s
}

// --- Date ranges ---

// parseDayRange reads start_date and end_date (YYYY-MM-DD, inclusive) from the
// query string. A missing bound takes the corresponding default.
func parseDayRange(cal *service.Calendar, r *http.Request, defStart, defEnd service.BusinessDay) (service.BusinessDay, service.BusinessDay, error) {
	start, end := defStart, defEnd
	if s := r.URL.Query().Get("start_date"); s != "" {
		d, err := cal.ParseDay(s)
		if err != nil {
			return start, end, fmt.Errorf("invalid start_date: %w", err)
		}
		start = d
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		d, err := cal.ParseDay(s)
		if err != nil {
			return start, end, fmt.Errorf("invalid end_date: %w", err)
		}
		end = d
	}
	if end.Before(start) {
		return start, end, service.ErrInvalidRange
	}
	return start, end, nil
}

// currentMonth is the first day of this month through today.
func currentMonth(cal *service.Calendar) (service.BusinessDay, service.BusinessDay) {
	today := cal.Today()
	first, _ := cal.Month(today.Year, today.Month)
	return first, today
}
