package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zencat/app"
	"zencat/domain/bulkimport"
	"zencat/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type fakeImporter struct {
	outcome app.Outcome
	err     error
	gotReq  app.SessionImportRequest
}

func (f *fakeImporter) ImportSessions(ctx context.Context, req app.SessionImportRequest) (app.Outcome, error) {
	f.gotReq = req
	// Drain so the multipart body is fully consumed like the real parser does.
	_, _ = io.ReadAll(req.File)
	return f.outcome, f.err
}

func (f *fakeImporter) ImportCommunities(ctx context.Context, req app.CommunityImportRequest) (app.Outcome, error) {
	return f.outcome, f.err
}

func multipartUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "sessions.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("Título,Fecha,Hora de inicio,Hora de fin,Vacantes\nYoga,15/03/2024,09:00,10:00,10\n"))
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func newTestServer(imp Importer) *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(imp, nil, zerolog.Nop())
}

func TestHandleImportSessions_Accepted(t *testing.T) {
	imp := &fakeImporter{outcome: app.Outcome{ImportID: "abc", Accepted: true, Created: 1}}
	srv := newTestServer(imp)

	body, contentType := multipartUpload(t, map[string]string{
		"professional_id": "prof-1",
		"local_id":        "local-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/imports/sessions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if imp.gotReq.ProfessionalID != "prof-1" || imp.gotReq.Filename != "sessions.csv" {
		t.Errorf("request not forwarded: %+v", imp.gotReq)
	}
}

func TestHandleImportSessions_Rejected(t *testing.T) {
	imp := &fakeImporter{outcome: app.Outcome{
		ImportID: "abc",
		Diagnostics: []bulkimport.Diagnostic{
			{Category: bulkimport.CategoryIncomplete, Rows: []int{2}, Message: "rows with incomplete fields: 2"},
		},
		Message: "rows with incomplete fields: 2",
	}}
	srv := newTestServer(imp)

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/imports/sessions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var outcome app.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(outcome.Diagnostics) != 1 || outcome.Diagnostics[0].Category != bulkimport.CategoryIncomplete {
		t.Errorf("diagnostics not preserved: %+v", outcome)
	}
}

func TestHandleImportSessions_DownstreamError(t *testing.T) {
	imp := &fakeImporter{err: errors.ExternalServiceError("zencat", errors.New("X", "api down"))}
	srv := newTestServer(imp)

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/imports/sessions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api down") {
		t.Errorf("upstream message must be preserved: %s", rec.Body.String())
	}
}

func TestHandleImportSessions_NoFile(t *testing.T) {
	srv := newTestServer(&fakeImporter{})
	req := httptest.NewRequest(http.MethodPost, "/api/imports/sessions", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTemplate(t *testing.T) {
	srv := newTestServer(&fakeImporter{})

	req := httptest.NewRequest(http.MethodGet, "/api/imports/template/sessions", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "sessions-template.xlsx") {
		t.Errorf("unexpected disposition %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/imports/template/nonsense", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown entity, got %d", rec.Code)
	}
}

func TestHandleGuide(t *testing.T) {
	srv := newTestServer(&fakeImporter{})
	req := httptest.NewRequest(http.MethodGet, "/guide", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1") {
		t.Errorf("guide should render as HTML, got %q", rec.Body.String()[:80])
	}
}
