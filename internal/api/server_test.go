package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/service"
	"github.com/nishad/drugrake/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestServer(t *testing.T, logger *zap.Logger) (*Server, *service.PathwayService) {
	t.Helper()
	snap := service.NewSnapshot([]models.PathwayCount{
		{DrugbankID: "DB00001", NumPathways: 1},
		{DrugbankID: "DB00002", NumPathways: 2},
	}, "fixture")
	svc := service.NewPathwayService(snap, nil)
	return NewServer(&Config{Host: "127.0.0.1", Port: 0, EnableCORS: true}, svc, logger), svc
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestPathwaysEndpoint(t *testing.T) {
	s, _ := setupTestServer(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"known drug", `{"drugbank_id": "DB00002"}`, http.StatusOK, "2"},
		{"single pathway", `{"drugbank_id": "DB00001"}`, http.StatusOK, "1"},
		{"unknown drug", `{"drugbank_id": "DB99999"}`, http.StatusOK, service.NotFoundMessage},
		{"padded id", `{"drugbank_id": " DB00001 "}`, http.StatusOK, "1"},
		{"missing field", `{}`, http.StatusBadRequest, ""},
		{"invalid json", `{"drugbank_id":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, "POST", "/pathways", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %q", ct)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got string
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("response is not a JSON string: %v (%s)", err, w.Body.String())
			}
			if got != tt.wantBody {
				t.Errorf("expected %q, got %q", tt.wantBody, got)
			}
		})
	}
}

func TestPathwaysEndpointRejectsGet(t *testing.T) {
	s, _ := setupTestServer(t, nil)
	w := do(t, s, "GET", "/pathways", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestDrugPathwaysEndpoint(t *testing.T) {
	s, _ := setupTestServer(t, nil)

	w := do(t, s, "GET", "/api/v1/drugs/DB00002/pathways", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["num_pathways"] != float64(2) || resp["found"] != true || resp["message"] != "2" {
		t.Errorf("unexpected response: %v", resp)
	}

	w = do(t, s, "GET", "/api/v1/drugs/DB99999/pathways", "")
	if w.Code != http.StatusOK {
		t.Fatalf("not found is a normal result, got status %d", w.Code)
	}
	resp = nil
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["found"] != false || resp["message"] != service.NotFoundMessage {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestLookupFollowsSnapshotSwap(t *testing.T) {
	s, svc := setupTestServer(t, nil)

	svc.Swap(service.NewSnapshot([]models.PathwayCount{{DrugbankID: "DB00002", NumPathways: 7}}, "next"))

	w := do(t, s, "POST", "/pathways", `{"drugbank_id": "DB00002"}`)
	if strings.TrimSpace(w.Body.String()) != `"7"` {
		t.Errorf("expected swapped count, got %s", w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := setupTestServer(t, nil)
	w := do(t, s, "GET", "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	empty := NewServer(&Config{}, service.NewPathwayService(nil, nil), nil)
	w = do(t, empty, "GET", "/api/v1/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 without snapshot, got %d", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	snap, err := service.BuildSnapshot(testutil.FixturePath(t, testutil.SampleFixture), nil)
	if err != nil {
		t.Fatalf("BuildSnapshot failed: %v", err)
	}
	s := NewServer(&Config{}, service.NewPathwayService(snap, nil), nil)

	w := do(t, s, "GET", "/api/v1/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Snapshot service.SnapshotInfo `json:"snapshot"`
		Summary  struct {
			UniquePathways       int `json:"unique_pathways"`
			ApprovedNonWithdrawn int `json:"approved_non_withdrawn"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Snapshot.Drugs != 2 {
		t.Errorf("expected 2 drugs in snapshot, got %d", resp.Snapshot.Drugs)
	}
	if resp.Summary.UniquePathways != 2 || resp.Summary.ApprovedNonWithdrawn != 2 {
		t.Errorf("unexpected summary: %+v", resp.Summary)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := setupTestServer(t, nil)
	do(t, s, "POST", "/pathways", `{"drugbank_id": "DB00001"}`)
	do(t, s, "POST", "/pathways", `{"drugbank_id": "DB99999"}`)

	w := do(t, s, "GET", "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`drugrake_pathway_lookups_total{result="found"} 1`,
		`drugrake_pathway_lookups_total{result="not_found"} 1`,
		`drugrake_snapshot_drugs 2`,
		`drugrake_http_requests_total{code="200",method="POST",route="/pathways"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRequestIDAndLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, _ := setupTestServer(t, zap.New(core))

	w := do(t, s, "GET", "/api/v1/health", "")
	id := w.Header().Get(requestIDHeader)
	if id == "" {
		t.Fatal("expected a generated request id")
	}

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 access log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != id {
		t.Errorf("logged request id %v, header %s", fields["request_id"], id)
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("logged status %v", fields["status"])
	}

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set(requestIDHeader, "client-id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != "client-id" {
		t.Errorf("client request id not preserved: %q", rec.Header().Get(requestIDHeader))
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := setupTestServer(t, nil)
	w := do(t, s, "OPTIONS", "/pathways", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestCORSPreflightOnAPIRoutes(t *testing.T) {
	s, _ := setupTestServer(t, nil)
	for _, path := range []string{"/api/v1/drugs/DB00001/pathways", "/api/v1/stats", "/api/v1/health"} {
		t.Run(path, func(t *testing.T) {
			w := do(t, s, "OPTIONS", path, "")
			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			if w.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Error("missing CORS header")
			}
			if w.Body.Len() != 0 {
				t.Errorf("preflight should have no body, got %q", w.Body.String())
			}
		})
	}
}
