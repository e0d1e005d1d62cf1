package restserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/chrissnell/saltwedge/pkg/config"
	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"github.com/chrissnell/saltwedge/pkg/report"
	"github.com/chrissnell/saltwedge/pkg/responseformat"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const header = "Abscisa (m),cota de superficie de agua dulce (m),Superficie de medio poroso (m),cota de superficie de cuña salina (m),ubicación del pozo de extracción\n"

const (
	pumpedCSV = header +
		"0,1,2,,true\n" +
		"1,1,2,0.5,false\n" +
		"2,1,2,0.5,false\n"
	naturalCSV = header +
		"0,1,2,,true\n" +
		"1,1,2,NA,false\n" +
		"2,1,2,0.5,false\n"
)

type memoryProvider struct {
	mu       sync.Mutex
	params   intrusion.Parameters
	readOnly bool
}

func (m *memoryProvider) LoadConfig() (*config.ConfigData, error) {
	p, _ := m.GetParameters()
	return &config.ConfigData{Parameters: p}, nil
}

func (m *memoryProvider) GetParameters() (intrusion.Parameters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params, nil
}

func (m *memoryProvider) UpdateParameters(p intrusion.Parameters) error {
	if m.readOnly {
		return config.ErrReadOnly
	}
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params = p
	return nil
}

func (m *memoryProvider) IsReadOnly() bool { return m.readOnly }
func (m *memoryProvider) Close() error     { return nil }

func newTestController(t *testing.T, provider config.ConfigProvider) http.Handler {
	t.Helper()
	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, provider, config.RESTServerData{MaxUploadBytes: 1 << 20}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return ctrl.Server.Handler
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func postCompare(t *testing.T, h http.Handler, target string, files, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files, fields)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var unitParams = map[string]string{"width": "1", "porosity": "1", "cutoff": "0.5"}

func TestCompare(t *testing.T) {
	h := newTestController(t, &memoryProvider{params: intrusion.DefaultParameters()})

	rec := postCompare(t, h, "/api/compare",
		map[string]string{"condition1": pumpedCSV, "condition2": naturalCSV}, unitParams)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var doc report.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if doc.ID == "" {
		t.Error("report should carry an id")
	}
	if doc.Sources.WithPumping != "condition1.csv" || doc.Sources.WithoutPumping != "condition2.csv" {
		t.Errorf("Sources = %+v", doc.Sources)
	}
	if doc.Comparison.Parameters.AquiferWidth != 1 || doc.Comparison.Parameters.Porosity != 1 {
		t.Errorf("form parameters were not applied: %+v", doc.Comparison.Parameters)
	}
	if doc.Comparison.Intrusion.Direction != intrusion.Increases {
		t.Errorf("intrusion direction = %q", doc.Comparison.Intrusion.Direction)
	}
	if len(doc.Tables) != 2 || len(doc.Conclusions) == 0 || len(doc.Chart.Series) == 0 {
		t.Errorf("report is incomplete: %d tables, %d conclusions, %d series",
			len(doc.Tables), len(doc.Conclusions), len(doc.Chart.Series))
	}
}

func TestCompareMsgPack(t *testing.T) {
	h := newTestController(t, &memoryProvider{params: intrusion.DefaultParameters()})

	rec := postCompare(t, h, "/api/compare?format=msgpack",
		map[string]string{"condition1": pumpedCSV, "condition2": naturalCSV}, unitParams)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("Content-Type = %q", ct)
	}

	var doc map[string]interface{}
	if err := msgpack.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding msgpack: %v", err)
	}
	if _, ok := doc["conclusions"]; !ok {
		t.Error("msgpack body should use the json field names")
	}
}

func TestCompareErrors(t *testing.T) {
	noWell := strings.ReplaceAll(pumpedCSV, "true", "false")
	badNumber := strings.Replace(naturalCSV, "1,1,2,NA", "1,abc,2,NA", 1)
	missingColumn := "Abscisa (m),cota de superficie de agua dulce (m)\n0,1\n"

	tests := []struct {
		name   string
		files  map[string]string
		fields map[string]string
		status int
		kind   string
	}{
		{
			name:   "missing second file",
			files:  map[string]string{"condition1": pumpedCSV},
			status: http.StatusBadRequest,
			kind:   "bad_request",
		},
		{
			name:   "schema error",
			files:  map[string]string{"condition1": pumpedCSV, "condition2": missingColumn},
			status: http.StatusUnprocessableEntity,
			kind:   "schema",
		},
		{
			name:   "parse error",
			files:  map[string]string{"condition1": pumpedCSV, "condition2": badNumber},
			status: http.StatusUnprocessableEntity,
			kind:   "parse",
		},
		{
			name:   "no extraction well",
			files:  map[string]string{"condition1": noWell, "condition2": naturalCSV},
			status: http.StatusUnprocessableEntity,
			kind:   "no_extraction_point",
		},
		{
			name:   "invalid porosity",
			files:  map[string]string{"condition1": pumpedCSV, "condition2": naturalCSV},
			fields: map[string]string{"porosity": "1.5"},
			status: http.StatusBadRequest,
			kind:   "invalid_parameters",
		},
		{
			name:   "non-numeric width",
			files:  map[string]string{"condition1": pumpedCSV, "condition2": naturalCSV},
			fields: map[string]string{"width": "wide"},
			status: http.StatusBadRequest,
			kind:   "invalid_parameters",
		},
	}

	h := newTestController(t, &memoryProvider{params: intrusion.DefaultParameters()})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postCompare(t, h, "/api/compare", tt.files, tt.fields)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, expected %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var body responseformat.ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body.Kind != tt.kind {
				t.Errorf("kind = %q, expected %q (details %q)", body.Kind, tt.kind, body.Details)
			}
		})
	}
}

func TestParameters(t *testing.T) {
	provider := &memoryProvider{params: intrusion.DefaultParameters()}
	h := newTestController(t, provider)

	update := `{"aquifer_width":0.05,"porosity":0.4,"extraction_cutoff_elevation":0.2}`
	req := httptest.NewRequest(http.MethodPut, "/api/parameters", strings.NewReader(update))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parameters", nil))
	var got intrusion.Parameters
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	expected := intrusion.Parameters{AquiferWidth: 0.05, Porosity: 0.4, ExtractionCutoffElevation: 0.2}
	if got != expected {
		t.Errorf("GET /api/parameters = %+v, expected %+v", got, expected)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/parameters", strings.NewReader(`{"aquifer_width":-1,"porosity":0.4}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid PUT status = %d, expected 400", rec.Code)
	}
}

func TestParametersReadOnly(t *testing.T) {
	h := newTestController(t, &memoryProvider{params: intrusion.DefaultParameters(), readOnly: true})

	req := httptest.NewRequest(http.MethodPut, "/api/parameters", strings.NewReader(`{"aquifer_width":1,"porosity":1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, expected 403", rec.Code)
	}
}

func TestStatusAndIndex(t *testing.T) {
	h := newTestController(t, &memoryProvider{params: intrusion.DefaultParameters()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("status endpoint: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "condition1") {
		t.Errorf("index page: %d", rec.Code)
	}
}
