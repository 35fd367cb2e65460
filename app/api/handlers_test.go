package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/autoxpress/partsearch/app/database"
	"github.com/autoxpress/partsearch/app/ranking"
	"github.com/autoxpress/partsearch/app/search"
	"github.com/autoxpress/partsearch/app/sources"
	"github.com/autoxpress/partsearch/app/tasks"
)

type fakeSearcher struct {
	result    *search.Result
	err       error
	lastQuery sources.Query
}

func (s *fakeSearcher) Search(ctx context.Context, query sources.Query) (*search.Result, error) {
	s.lastQuery = query
	return s.result, s.err
}

func (s *fakeSearcher) SourceNames() []string {
	return []string{"eBay"}
}

type fakeScheduler struct {
	enqueued []tasks.TaskInterface
	err      error
}

func (s *fakeScheduler) Start() {}
func (s *fakeScheduler) Stop()  {}

func (s *fakeScheduler) EnqueueTask(task tasks.TaskInterface) error {
	if s.err != nil {
		return s.err
	}
	s.enqueued = append(s.enqueued, task)
	return nil
}

func setupTestServer(t *testing.T, searcher SearcherInterface, scheduler tasks.TaskSchedulerInterface, apiKey string) (*gin.Engine, *database.FavoriteRepository, *database.WatchRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	favoriteRepo := database.NewFavoriteRepository(db)
	watchRepo := database.NewWatchRepository(db)
	configCache := sources.NewConfigCache(t.TempDir())

	handler := NewHandler(searcher, favoriteRepo, watchRepo, configCache, nil, scheduler)
	return NewServer(handler, apiKey), favoriteRepo, watchRepo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSearchProducts(t *testing.T) {
	ranked := ranking.RankedListing{RelevanceScore: 90, RelevanceCategory: ranking.CategoryHigh}
	ranked.ID = "abc"
	ranked.Title = "2018 Toyota Camry Brake Pad Set"

	searcher := &fakeSearcher{result: &search.Result{
		Listings:  []ranking.RankedListing{ranked},
		Total:     1,
		Providers: map[string]int{"eBay": 1},
	}}

	router, _, _ := setupTestServer(t, searcher, &fakeScheduler{}, "")

	w := doJSON(t, router, "GET", "/api/search-products?year=2018&make=Toyota&model=Camry&part=Brake+Pad", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result search.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("expected 1 result, got %d", result.Total)
	}
	if searcher.lastQuery.Vehicle.Make != "Toyota" {
		t.Errorf("expected make to be forwarded, got %q", searcher.lastQuery.Vehicle.Make)
	}
}

func TestSearchProductsRequiresQuery(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "GET", "/api/search-products", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty query, got %d", w.Code)
	}
}

func TestFavoriteLifecycle(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "POST", "/api/favorites", FavoriteRequest{
		ListingID: "fav1",
		Title:     "Bosch Brake Pad Set",
		Price:     49.99,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/api/favorites", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var listResp struct {
		Favorites []database.Favorite `json:"favorites"`
		Total     int                 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if listResp.Total != 1 {
		t.Fatalf("expected 1 favorite, got %d", listResp.Total)
	}

	w = doJSON(t, router, "DELETE", "/api/favorites/fav1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = doJSON(t, router, "DELETE", "/api/favorites/fav1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for missing favorite, got %d", w.Code)
	}
}

func TestFavoriteValidation(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "POST", "/api/favorites", map[string]string{"title": "No listing id"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without listingId, got %d", w.Code)
	}
}

func TestWatchLifecycle(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "POST", "/api/watches", WatchRequest{
		Year: "2018", Make: "Toyota", Part: "Brake Pad",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	w = doJSON(t, router, "GET", "/api/watches/"+created.ID+"/alerts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = doJSON(t, router, "DELETE", "/api/watches/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestWatchRequiresDescriptor(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "POST", "/api/watches", WatchRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty watch, got %d", w.Code)
	}
}

func TestDecodeVIN(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "GET", "/api/vin/1HGBH41JXMN109186", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var decoded struct {
		ModelYear    int    `json:"modelYear"`
		Manufacturer string `json:"manufacturer"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ModelYear != 1991 {
		t.Errorf("expected model year 1991, got %d", decoded.ModelYear)
	}

	w = doJSON(t, router, "GET", "/api/vin/INVALIDVIN1234567", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422 for invalid VIN, got %d", w.Code)
	}
}

func TestChat(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "POST", "/api/chat", ChatRequest{Message: "do you offer free shipping?"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var reply struct {
		Intent  string `json:"intent"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if reply.Message == "" {
		t.Error("expected non-empty chat reply")
	}

	w = doJSON(t, router, "POST", "/api/chat", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty message, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupTestServer(t, &fakeSearcher{}, &fakeScheduler{}, "")

	w := doJSON(t, router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := health["timestamp"]; !ok {
		t.Error("expected health to include timestamp")
	}
	if _, ok := health["cache"]; !ok {
		t.Error("expected health to include cache status")
	}
}

func TestAdminAuth(t *testing.T) {
	scheduler := &fakeScheduler{}
	router, _, watchRepo := setupTestServer(t, &fakeSearcher{result: &search.Result{}}, scheduler, "secret")

	id, err := watchRepo.Add(database.Watch{Part: "Brake Pad"})
	if err != nil {
		t.Fatalf("failed to add watch: %v", err)
	}

	// no key
	w := doJSON(t, router, "POST", "/admin/watches/"+id+"/refresh", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without key, got %d", w.Code)
	}

	// wrong key
	req := httptest.NewRequest("POST", "/admin/watches/"+id+"/refresh", nil)
	req.Header.Set("X-API-Key", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 with wrong key, got %d", w.Code)
	}

	// correct key
	req = httptest.NewRequest("POST", "/admin/watches/"+id+"/refresh", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 with correct key, got %d: %s", w.Code, w.Body.String())
	}
	if len(scheduler.enqueued) != 1 {
		t.Errorf("expected 1 enqueued task, got %d", len(scheduler.enqueued))
	}
}
