package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/auth"
	"github.com/snackcounter/api/internal/service"
)

const testJWTSecret = "test-secret-for-handlers"

var shopZone = time.FixedZone("TRT", 3*60*60)

// testCalendar is pinned to 2024-03-15 12:00 shop time.
func testCalendar() *service.Calendar {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, shopZone)
	return service.NewCalendar(shopZone).WithClock(func() time.Time { return now })
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, router, newRequest(t, method, path, body))
}

// doRawRequest sends body verbatim, for payloads json.Marshal cannot produce.
func doRawRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(t, router, req)
}

func doAuthRequest(t *testing.T, router http.Handler, method, path string, body interface{}, role string) *httptest.ResponseRecorder {
	t.Helper()

	token, err := auth.GenerateToken(testJWTSecret, uuid.New(), role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := newRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return serve(t, router, req)
}

func newRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func testNumeric(s string) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		panic(err)
	}
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// sameDecimal compares a possibly-nil decimal against want ("" means nil).
func sameDecimal(got *decimal.Decimal, want string) bool {
	if want == "" {
		return got == nil
	}
	return got != nil && got.Equal(dec(want))
}
