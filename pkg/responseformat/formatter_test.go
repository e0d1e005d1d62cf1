package responseformat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestWriteResponseJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)

	if err := NewFormatter().WriteResponse(rec, req, sample{Name: "porosity", Value: 0.488}); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, expected application/json", ct)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	var got sample
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "porosity" || got.Value != 0.488 {
		t.Errorf("got %+v", got)
	}
}

func TestWriteResponseMsgPack(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
	}{
		{"query parameter", httptest.NewRequest(http.MethodGet, "/api/status?format=msgpack", nil)},
		{"accept header", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/api/status", nil)
			r.Header.Set("Accept", "application/x-msgpack")
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := NewFormatter().WriteResponseWithStatus(rec, tt.req, http.StatusCreated, sample{Name: "width", Value: 0.025}); err != nil {
				t.Fatalf("WriteResponseWithStatus() error = %v", err)
			}
			if rec.Code != http.StatusCreated {
				t.Errorf("status = %d, expected %d", rec.Code, http.StatusCreated)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
				t.Errorf("Content-Type = %q", ct)
			}

			var got map[string]any
			if err := msgpack.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got["name"] != "width" {
				t.Errorf("expected json tag names in msgpack output, got %v", got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/compare", nil)

	NewFormatter().WriteError(rec, req, http.StatusUnprocessableEntity, "Comparison failed", "schema", errors.New("missing column"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Comparison failed" || body.Kind != "schema" || body.Details != "missing column" || body.Status != 422 {
		t.Errorf("unexpected body %+v", body)
	}
}
