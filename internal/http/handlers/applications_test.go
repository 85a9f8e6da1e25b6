package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/turkhealth/clinichub/internal/auth"
	"github.com/turkhealth/clinichub/internal/domain/application"
	"github.com/turkhealth/clinichub/internal/http/handlers"
	"github.com/turkhealth/clinichub/internal/http/middlewares"
)

// fake store implementing handlers.ApplicationsStore

type fakeApplicationsStore struct {
	createFn func(ctx context.Context, req application.CreateApplicationRequest) (application.Application, error)
	listFn   func(ctx context.Context, filter application.ListFilter) ([]application.Application, error)

	lastFilter application.ListFilter
}

func (f *fakeApplicationsStore) Create(ctx context.Context, req application.CreateApplicationRequest) (application.Application, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return application.NewFromCreateRequest(req), nil
}

func (f *fakeApplicationsStore) List(ctx context.Context, filter application.ListFilter) ([]application.Application, error) {
	f.lastFilter = filter
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

// applicationsRouter mirrors the production wiring: submission is public,
// the listing sits behind the admin gate.
func applicationsRouter(store *fakeApplicationsStore, jwt *auth.Manager) *gin.Engine {
	h := handlers.NewApplicationsHandler(store, testLogger())
	mw := middlewares.NewAuthMiddleware(jwt)

	r := gin.New()
	r.POST("/api/applications", h.Create)
	r.GET("/api/applications", mw.RequireAuth(), mw.RequireAdmin(), h.List)
	return r
}

const validApplicationBody = `{
	"name": "Maria Garcia",
	"email": "maria@example.es",
	"phone": "+34 600 000 001",
	"treatment": "hair transplant",
	"message": "Interested in a consultation next month."
}`

func TestCreateApplicationAppliesDefaults(t *testing.T) {
	store := &fakeApplicationsStore{}
	r := applicationsRouter(store, auth.NewManager("test-secret-key", time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(validApplicationBody))
	req.Header.Set("Content-Type", "application/json")
	// deliberately no Authorization header: submission is public

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool                    `json:"success"`
		Message string                  `json:"message"`
		Data    application.Application `json:"data"`
	}

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !resp.Success || resp.Message != "Application submitted successfully" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}

	if resp.Data.Status != "pending" {
		t.Fatalf("status = %q, want pending", resp.Data.Status)
	}
	if resp.Data.Urgency != "normal" {
		t.Fatalf("urgency = %q, want normal", resp.Data.Urgency)
	}
	if resp.Data.Country != "Spain" {
		t.Fatalf("country = %q, want default Spain", resp.Data.Country)
	}
}

func TestCreateApplicationValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "missing treatment", body: `{"name":"Maria Garcia","email":"maria@example.es","phone":"+34 600 000 001","message":"Hello there"}`},
		{name: "bad urgency", body: `{"name":"Maria Garcia","email":"maria@example.es","phone":"+34 600 000 001","treatment":"dental","message":"Hello there","urgency":"asap"}`},
		{name: "malformed clinic id", body: `{"name":"Maria Garcia","email":"maria@example.es","phone":"+34 600 000 001","treatment":"dental","message":"Hello there","clinicId":"42"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := applicationsRouter(&fakeApplicationsStore{}, auth.NewManager("test-secret-key", time.Hour))

			req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateApplicationUnknownClinic(t *testing.T) {
	store := &fakeApplicationsStore{
		createFn: func(context.Context, application.CreateApplicationRequest) (application.Application, error) {
			return application.Application{}, application.ErrUnknownClinic
		},
	}

	r := applicationsRouter(store, auth.NewManager("test-secret-key", time.Hour))

	body := `{"name":"Maria Garcia","email":"maria@example.es","phone":"+34 600 000 001","treatment":"dental","message":"Hello there","clinicId":"5b7c0a4e-9f3d-4a56-8f75-0e0f3d2a0001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp handlers.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Unknown clinic" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestListApplicationsGuard(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
		wantError  string
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized, wantError: "Access token required"},
		{name: "plain user", role: "user", wantStatus: http.StatusForbidden, wantError: "Admin access required"},
		{name: "admin", role: "admin", wantStatus: http.StatusOK},
		{name: "super_admin", role: "super_admin", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jwt := auth.NewManager("test-secret-key", time.Hour)
			r := applicationsRouter(&fakeApplicationsStore{}, jwt)

			req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
			if tc.role != "" {
				req.Header.Set("Authorization", "Bearer "+adminToken(t, jwt, tc.role))
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}

			if tc.wantError != "" {
				var resp handlers.Envelope
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.Error != tc.wantError {
					t.Fatalf("error = %q, want %q", resp.Error, tc.wantError)
				}
			}
		})
	}
}

func TestListApplicationsFilters(t *testing.T) {
	store := &fakeApplicationsStore{
		listFn: func(_ context.Context, _ application.ListFilter) ([]application.Application, error) {
			return []application.Application{{ID: "a-1"}, {ID: "a-2"}, {ID: "a-3"}}, nil
		},
	}

	jwt := auth.NewManager("test-secret-key", time.Hour)
	r := applicationsRouter(store, jwt)

	req := httptest.NewRequest(http.MethodGet, "/api/applications?status=pending&treatment=dental", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, jwt, "admin"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	f := store.lastFilter
	if f.Status == nil || *f.Status != "pending" {
		t.Fatalf("status filter = %v, want pending", f.Status)
	}
	if f.Treatment == nil || *f.Treatment != "dental" {
		t.Fatalf("treatment filter = %v, want dental", f.Treatment)
	}

	var resp struct {
		Count *int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count == nil || *resp.Count != 3 {
		t.Fatalf("count = %v, want 3", resp.Count)
	}
}
