package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netplot/pkg/pipeline"
	"github.com/matzehuels/netplot/pkg/report"
	"github.com/matzehuels/netplot/pkg/store"
)

const sampleEdgelist = "Source\tTarget\tWeight\nA\tB\t1\nB\tC\t2\nA\tC\t3\n"

func testServer() http.Handler {
	return testServerWithStore(nil)
}

func testServerWithStore(st store.Store) http.Handler {
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(nil, nil, st, logger), logger)
}

// memStore keeps the last run per input in memory.
type memStore struct {
	docs map[string]report.Document
}

func (m *memStore) SaveRun(ctx context.Context, doc report.Document) error {
	if m.docs == nil {
		m.docs = make(map[string]report.Document)
	}
	m.docs[doc.Input] = doc
	return nil
}

func (m *memStore) LatestRun(ctx context.Context, input string) (report.Document, bool, error) {
	doc, ok := m.docs[input]
	return doc, ok, nil
}

func (m *memStore) Close(ctx context.Context) error { return nil }

func TestHealth(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAnalyzeJSON(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/analyze?name=friends", strings.NewReader(sampleEdgelist))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing request ID header")
	}

	var resp analyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.RunID == "" {
		t.Error("missing run ID")
	}
	if resp.Input != "friends" {
		t.Errorf("input = %q, want friends", resp.Input)
	}
	if resp.Nodes != 3 || resp.Edges != 3 {
		t.Errorf("got %d nodes / %d edges, want 3/3", resp.Nodes, resp.Edges)
	}
	if len(resp.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(resp.Rows))
	}
	if resp.Rows[0].Name != "A" {
		t.Errorf("first row = %q, want A", resp.Rows[0].Name)
	}
}

func TestAnalyzePNG(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/analyze?output=png&layout=circular", strings.NewReader(sampleEdgelist))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("body is not a PNG")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	srv := testServer()

	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty body", "/analyze", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"missing columns", "/analyze", "From\tTo\nA\tB\n", http.StatusBadRequest, "SCHEMA_ERROR"},
		{"bad weight", "/analyze", "Source\tTarget\tWeight\nA\tB\theavy\n", http.StatusBadRequest, "DATA_TYPE_ERROR"},
		{"unknown layout", "/analyze?layout=orbital", sampleEdgelist, http.StatusBadRequest, "UNKNOWN_LAYOUT"},
		{"bad output", "/analyze?output=gif", sampleEdgelist, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestLatestRun(t *testing.T) {
	srv := testServerWithStore(&memStore{})

	req := httptest.NewRequest(http.MethodPost, "/analyze?name=friends", strings.NewReader(sampleEdgelist))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var analyzed analyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&analyzed); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/friends", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var doc report.Document
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.RunID != analyzed.RunID {
		t.Errorf("run ID = %q, want %q", doc.RunID, analyzed.RunID)
	}
	if doc.Input != "friends" {
		t.Errorf("input = %q, want friends", doc.Input)
	}
	if len(doc.Rows) != 3 {
		t.Errorf("got %d rows, want 3", len(doc.Rows))
	}
}

func TestLatestRunNotFound(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", resp.Code)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "client-id-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "client-id-123" {
		t.Errorf("request ID = %q, want client-id-123", got)
	}
}
