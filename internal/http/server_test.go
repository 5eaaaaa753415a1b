package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
	"github.com/vaultboard/vaultboard/internal/http/handlers"
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Reference string `json:"reference"`
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		t.Fatalf("Content-Type=%q want JSON, body=%q", ct, rec.Body.String())
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestUnknownPageRendersPlainNotFound(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t), "/nowhere")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusNotFound)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "404 page not found" {
		t.Fatalf("body=%q", got)
	}
}

func TestUnknownAPIRouteRendersJSON(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t), "/api/v1/nowhere")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusNotFound)
	}
	if body := decodeErrorBody(t, rec); body.Error != "not found" {
		t.Fatalf("body=%+v", body)
	}
}

func TestAPIMethodNotAllowedRendersJSON(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t), "/api/v1/vaults/1/refresh")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if body := decodeErrorBody(t, rec); body.Error != "method not allowed" {
		t.Fatalf("body=%+v", body)
	}
}

func TestPanicInAPIHandlerRendersGenericJSON(t *testing.T) {
	t.Parallel()

	es := newTestServer(t)
	es.e.GET("/api/v1/explode", func(*echo.Context) error {
		panic("db password=secret")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/explode", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-7")
	rec := serve(t, es, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("response leaked error details: %q", rec.Body.String())
	}
	body := decodeErrorBody(t, rec)
	if body.Code != handlers.InternalErrorCode || body.Reference != "req-7" {
		t.Fatalf("body=%+v", body)
	}
}

func TestPanicInPageHandlerRendersGenericText(t *testing.T) {
	t.Parallel()

	es := newTestServer(t)
	es.e.GET("/explode", func(*echo.Context) error {
		panic("db password=secret")
	})

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-8")
	rec := serve(t, es, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusInternalServerError)
	}
	body := rec.Body.String()
	if strings.Contains(body, "secret") {
		t.Fatalf("response leaked error details: %q", body)
	}
	if !strings.Contains(body, "Internal server error") || !strings.Contains(body, "Reference: req-8") {
		t.Fatalf("body=%q", body)
	}
	if !strings.Contains(body, "Code: "+handlers.InternalErrorCode) {
		t.Fatalf("body=%q missing error code", body)
	}
}

func TestHTTPErrorHandlerClientErrorsHideMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		json bool
	}{
		{name: "page", path: "/vaults"},
		{name: "api", path: "/api/v1/chains", json: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			es := newTestServer(t)
			rec := httptest.NewRecorder()
			c := es.e.NewContext(httptest.NewRequest(http.MethodGet, tc.path, nil), rec)
			es.httpErrorHandler(c, echo.NewHTTPError(http.StatusBadRequest, "leaky bad request"))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status=%d want %d", rec.Code, http.StatusBadRequest)
			}
			if strings.Contains(rec.Body.String(), "leaky") {
				t.Fatalf("response leaked error details: %q", rec.Body.String())
			}
			if tc.json {
				if body := decodeErrorBody(t, rec); body.Error != "bad request" {
					t.Fatalf("body=%+v", body)
				}
				return
			}
			if got := strings.TrimSpace(rec.Body.String()); got != http.StatusText(http.StatusBadRequest) {
				t.Fatalf("body=%q", got)
			}
		})
	}
}

func TestHTTPStatusFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: echo.ErrNotFound, want: http.StatusNotFound},
		{err: echo.ErrMethodNotAllowed, want: http.StatusMethodNotAllowed},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := httpStatusFromError(tc.err); got != tc.want {
			t.Fatalf("httpStatusFromError(%v)=%d want %d", tc.err, got, tc.want)
		}
	}
}
