package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/model"
	"github.com/SarahE-Dev/moms-watchlist-app/internal/server"
	"github.com/SarahE-Dev/moms-watchlist-app/internal/store"
	"github.com/SarahE-Dev/moms-watchlist-app/pkg/cache"
	"github.com/SarahE-Dev/moms-watchlist-app/pkg/deps"
	"github.com/SarahE-Dev/moms-watchlist-app/pkg/tmdb"
)

func newTestRouter(t *testing.T, catalog *tmdb.Client) http.Handler {
	t.Helper()
	st, err := store.NewBolt(filepath.Join(t.TempDir(), "suggestions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if catalog == nil {
		catalog = tmdb.New("test-key")
	}
	s := server.New(deps.ServerDeps{
		Store:     st,
		Cache:     cache.NewInMemory(),
		Catalog:   catalog,
		Name:      "watchlist-api",
		StartedAt: time.Now(),
	}, nil)
	return s.Router()
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []model.Suggestion {
	t.Helper()
	var items []model.Suggestion
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v (body %q)", err, w.Body.String())
	}
	return items
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)
	w := doJSON(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
}

func TestSuggestionsLifecycle(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodGet, "/suggestions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	if items := decodeList(t, w); len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}

	w = doJSON(t, r, http.MethodPost, "/suggestions",
		`{"tmdbId":603,"type":"movie","title":"The Matrix","releaseDate":"1999-03-31","rating":8.7}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (body %s)", w.Code, w.Body.String())
	}
	items := decodeList(t, w)
	if len(items) != 1 {
		t.Fatalf("expected refreshed list with 1 item, got %d", len(items))
	}
	if items[0].Watched {
		t.Fatal("new suggestion must start unwatched")
	}
	id := items[0].ID

	// The list endpoint reflects the write.
	w = doJSON(t, r, http.MethodGet, "/suggestions", "")
	if items = decodeList(t, w); len(items) != 1 || items[0].ID != id {
		t.Fatalf("list after create mismatch: %+v", items)
	}

	w = doJSON(t, r, http.MethodPatch, "/suggestions/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("watch: expected 200, got %d", w.Code)
	}
	if items = decodeList(t, w); !items[0].Watched {
		t.Fatal("expected watched=true after PATCH")
	}

	w = doJSON(t, r, http.MethodPatch, "/suggestions/no-such-id", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("watch missing id: expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/suggestions/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if items = decodeList(t, w); len(items) != 0 {
		t.Fatalf("expected empty list after delete, got %d items", len(items))
	}

	// Deleting again is a safe no-op.
	w = doJSON(t, r, http.MethodDelete, "/suggestions/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("redundant delete: expected 200, got %d", w.Code)
	}
}

func TestSuggestionsCreateRejectsInvalidPayload(t *testing.T) {
	r := newTestRouter(t, nil)

	bodies := map[string]string{
		"missing rating": `{"tmdbId":603,"type":"movie","title":"The Matrix","releaseDate":"1999-03-31"}`,
		"invalid type":   `{"tmdbId":603,"type":"book","title":"The Matrix","releaseDate":"1999-03-31","rating":8.7}`,
		"empty title":    `{"tmdbId":603,"type":"movie","title":"","releaseDate":"1999-03-31","rating":8.7}`,
		"invalid json":   `{`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/suggestions", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (body %s)", w.Code, w.Body.String())
			}
		})
	}

	w := doJSON(t, r, http.MethodGet, "/suggestions", "")
	if items := decodeList(t, w); len(items) != 0 {
		t.Fatalf("rejected payloads must not create records, got %d", len(items))
	}
}

func TestSearchValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodGet, "/search/movie", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing q: expected 400, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/search/book?q=matrix", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad kind: expected 400, got %d", w.Code)
	}
}

func TestSearchDegradesOnUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	catalog := tmdb.New("test-key")
	catalog.BaseURL = upstream.URL
	r := newTestRouter(t, catalog)

	w := doJSON(t, r, http.MethodGet, "/search/movie?q=matrix", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with empty results, got %d", w.Code)
	}
	var results []tmdb.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
}

func TestDetailsSurfacesUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	catalog := tmdb.New("test-key")
	catalog.BaseURL = upstream.URL
	r := newTestRouter(t, catalog)

	w := doJSON(t, r, http.MethodGet, "/details/movie/603", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestSearchResultsPassThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1396,"name":"Breaking Bad","overview":"A chemistry teacher.","poster_path":"/bb.jpg","first_air_date":"2008-01-20","vote_average":8.9}]}`))
	}))
	defer upstream.Close()

	catalog := tmdb.New("test-key")
	catalog.BaseURL = upstream.URL
	r := newTestRouter(t, catalog)

	w := doJSON(t, r, http.MethodGet, "/search/tv?q=breaking", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var results []tmdb.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Breaking Bad" || results[0].ReleaseDate != "2008-01-20" {
		t.Fatalf("unexpected results: %+v", results)
	}
}
