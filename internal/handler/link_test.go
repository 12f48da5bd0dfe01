package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snaplink/snaplink/internal/auth"
	"github.com/snaplink/snaplink/internal/handler/dto"
	"github.com/snaplink/snaplink/internal/model"
	"github.com/snaplink/snaplink/internal/service"
)

const testBaseURL = "http://localhost:8080"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRouter wires the link routes the way main does, with a middleware
// that injects the given owner as the authenticated user.
func testRouter(store *fakeStore, ownerID string) *chi.Mux {
	svc := service.NewLinkService(store, nil, testBaseURL, nil)
	analytics := service.NewAnalyticsService(store, store)

	linkHandler := NewLinkHandler(svc, discardLogger())
	analyticsHandler := NewAnalyticsHandler(analytics, discardLogger())

	r := chi.NewRouter()
	r.Route("/links", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := auth.ContextWithAuth(req.Context(), &model.AuthContext{UserID: ownerID})
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
		r.Post("/", linkHandler.Create)
		r.Get("/", linkHandler.List)
		r.Delete("/", linkHandler.DeleteAll)
		r.Get("/dashboard/stats", analyticsHandler.DashboardStats)
		r.Get("/all-clicks", analyticsHandler.ClickFeed)
		r.Get("/analytics/{id}", analyticsHandler.LinkSummary)
		r.Get("/{id}", linkHandler.Get)
		r.Put("/{id}", linkHandler.Update)
		r.Delete("/{id}", linkHandler.Delete)
	})
	return r
}

func createTestLink(t *testing.T, store *fakeStore, ownerID, code string) *model.Link {
	t.Helper()
	svc := service.NewLinkService(store, nil, testBaseURL, nil)
	link, err := svc.CreateLink(context.Background(), service.CreateLinkInput{
		OwnerID:        ownerID,
		DestinationURL: "https://example.com/" + code,
		ShortCode:      code,
	})
	if err != nil {
		t.Fatalf("create test link: %v", err)
	}
	return link
}

func TestLinkHandler_Create(t *testing.T) {
	store := newFakeStore()
	router := testRouter(store, "user-1")

	body := `{"destination_url":"https://example.com/page","short_code":"promo24","remarks":"summer"}`
	req := httptest.NewRequest(http.MethodPost, "/links/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.LinkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.ShortCode != "promo24" {
		t.Errorf("short_code = %q, want promo24", resp.ShortCode)
	}
	if resp.ShortURL != testBaseURL+"/promo24" {
		t.Errorf("short_url = %q", resp.ShortURL)
	}
	if resp.Status != "active" {
		t.Errorf("status = %q, want active", resp.Status)
	}
	if resp.Remarks != "summer" {
		t.Errorf("remarks = %q, want summer", resp.Remarks)
	}
}

func TestLinkHandler_CreateInvalidJSON(t *testing.T) {
	router := testRouter(newFakeStore(), "user-1")

	req := httptest.NewRequest(http.MethodPost, "/links/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	assertErrorCode(t, rec.Body.Bytes(), "INVALID_JSON")
}

func TestLinkHandler_CreateCodeTaken(t *testing.T) {
	store := newFakeStore()
	createTestLink(t, store, "user-1", "promo24")
	router := testRouter(store, "user-1")

	body := `{"destination_url":"https://example.com/other","short_code":"promo24"}`
	req := httptest.NewRequest(http.MethodPost, "/links/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	assertErrorCode(t, rec.Body.Bytes(), "CODE_TAKEN")
}

func TestLinkHandler_CreateInvalidDestination(t *testing.T) {
	router := testRouter(newFakeStore(), "user-1")

	body := `{"destination_url":"notaurl"}`
	req := httptest.NewRequest(http.MethodPost, "/links/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	assertErrorCode(t, rec.Body.Bytes(), "INVALID_DESTINATION")
}

func TestLinkHandler_CreatePastExpiration(t *testing.T) {
	router := testRouter(newFakeStore(), "user-1")

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	body := `{"destination_url":"https://example.com","expiration":"` + past + `"}`
	req := httptest.NewRequest(http.MethodPost, "/links/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	assertErrorCode(t, rec.Body.Bytes(), "EXPIRES_IN_PAST")
}

func TestLinkHandler_Get(t *testing.T) {
	store := newFakeStore()
	link := createTestLink(t, store, "user-1", "promo24")
	router := testRouter(store, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/links/"+link.ID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.LinkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != link.ID {
		t.Errorf("id = %q, want %q", resp.ID, link.ID)
	}
}

func TestLinkHandler_GetForeignLink(t *testing.T) {
	store := newFakeStore()
	link := createTestLink(t, store, "user-1", "promo24")
	router := testRouter(store, "intruder")

	req := httptest.NewRequest(http.MethodGet, "/links/"+link.ID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestLinkHandler_GetMissing(t *testing.T) {
	router := testRouter(newFakeStore(), "user-1")

	req := httptest.NewRequest(http.MethodGet, "/links/nope", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestLinkHandler_List(t *testing.T) {
	store := newFakeStore()
	createTestLink(t, store, "user-1", "codeaa1")
	createTestLink(t, store, "user-1", "codebb2")
	createTestLink(t, store, "stranger", "codecc3")
	router := testRouter(store, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/links/?page=1&limit=10", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.LinkListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("got %d links, want 2", len(resp.Data))
	}
	if resp.Pagination.TotalItems != 2 {
		t.Errorf("total_items = %d, want 2", resp.Pagination.TotalItems)
	}
	if resp.Pagination.TotalPages != 1 {
		t.Errorf("total_pages = %d, want 1", resp.Pagination.TotalPages)
	}
}

func TestLinkHandler_UpdateClearsExpiration(t *testing.T) {
	store := newFakeStore()
	link := createTestLink(t, store, "user-1", "promo24")

	// Give it an expiration first
	expiry := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	router := testRouter(store, "user-1")

	body := `{"destination_url":"https://example.com/promo24","expiration":"` + expiry + `"}`
	req := httptest.NewRequest(http.MethodPut, "/links/"+link.ID, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("set expiration: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// A replacement without expiration clears it
	req = httptest.NewRequest(http.MethodPut, "/links/"+link.ID, strings.NewReader(`{"remarks":"updated"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("clear expiration: expected 200, got %d", rec.Code)
	}

	var resp dto.LinkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Expiration != nil {
		t.Errorf("expiration = %v, want cleared", resp.Expiration)
	}
	if resp.Remarks != "updated" {
		t.Errorf("remarks = %q, want updated", resp.Remarks)
	}
}

func TestLinkHandler_Delete(t *testing.T) {
	store := newFakeStore()
	link := createTestLink(t, store, "user-1", "promo24")
	router := testRouter(store, "user-1")

	req := httptest.NewRequest(http.MethodDelete, "/links/"+link.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/links/"+link.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestLinkHandler_DeleteAll(t *testing.T) {
	store := newFakeStore()
	createTestLink(t, store, "user-1", "codeaa1")
	createTestLink(t, store, "user-1", "codebb2")
	createTestLink(t, store, "stranger", "codecc3")
	router := testRouter(store, "user-1")

	req := httptest.NewRequest(http.MethodDelete, "/links/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.DeleteAllResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DeletedLinks != 2 {
		t.Errorf("deleted_links = %d, want 2", resp.DeletedLinks)
	}

	// The stranger's link survives
	if _, err := store.GetLinkByCode(context.Background(), "codecc3"); err != nil {
		t.Errorf("other owner's link should survive teardown: %v", err)
	}
}

func assertErrorCode(t *testing.T, body []byte, want string) {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != want {
		t.Errorf("error code = %q, want %q", resp.Code, want)
	}
}
