package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SarahE-Dev/moms-watchlist-app/pkg/tmdb"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)
	c := tmdb.New("test-key")
	c.BaseURL = upstream.URL
	return c
}

func TestSearchEmptyQueryNoNetworkCall(t *testing.T) {
	c := newStubClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("unexpected network call for empty query")
	})
	for _, q := range []string{"", "   "} {
		if _, err := c.Search(context.Background(), tmdb.KindMovie, q); !errors.Is(err, tmdb.ErrEmptyQuery) {
			t.Fatalf("query %q: expected ErrEmptyQuery, got %v", q, err)
		}
	}
}

func TestSearchMovie(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "matrix" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("unexpected api key %q", got)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":603,"title":"The Matrix","overview":"Hacker.","poster_path":"/m.jpg","release_date":"1999-03-31","vote_average":8.7}]}`))
	})
	results, err := c.Search(context.Background(), tmdb.KindMovie, "matrix")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	got := results[0]
	if got.ID != 603 || got.Title != "The Matrix" || got.ReleaseDate != "1999-03-31" || got.Rating != 8.7 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSearchTVNormalizesNameAndAirDate(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20","vote_average":8.9}]}`))
	})
	results, err := c.Search(context.Background(), tmdb.KindTV, "breaking")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if results[0].Title != "Breaking Bad" || results[0].ReleaseDate != "2008-01-20" {
		t.Fatalf("tv fields not normalized: %+v", results[0])
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.Search(context.Background(), tmdb.KindMovie, "matrix")
	var ge *tmdb.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if ge.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", ge.StatusCode)
	}
}

func TestMovieDetails(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("append_to_response"); got != "credits" {
			t.Errorf("expected credits appended, got %q", got)
		}
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136,"genres":[{"id":28,"name":"Action"}],"credits":{"cast":[{"id":6384,"name":"Keanu Reeves","character":"Neo","profile_path":"/kr.jpg"}]}}`))
	})
	d, err := c.MovieDetails(context.Background(), 603)
	if err != nil {
		t.Fatalf("movie details: %v", err)
	}
	if d.Runtime != 136 || len(d.Genres) != 1 || len(d.Credits.Cast) != 1 {
		t.Fatalf("unexpected detail: %+v", d)
	}
	if d.Credits.Cast[0].Character != "Neo" {
		t.Fatalf("unexpected cast: %+v", d.Credits.Cast)
	}
}

func TestTVDetailsIncludesSeasons(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":1396,"name":"Breaking Bad","number_of_seasons":5,"number_of_episodes":62,"seasons":[{"id":3572,"name":"Season 1","episode_count":7,"season_number":1}],"credits":{"cast":[]}}`))
	})
	d, err := c.TVDetails(context.Background(), 1396)
	if err != nil {
		t.Fatalf("tv details: %v", err)
	}
	if d.NumberOfSeasons != 5 || len(d.Seasons) != 1 || d.Seasons[0].EpisodeCount != 7 {
		t.Fatalf("unexpected detail: %+v", d)
	}
}

func TestDetailsUpstreamFailure(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.MovieDetails(context.Background(), 999999)
	var ge *tmdb.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/configuration" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{}`))
	})
	if err := c.Status(context.Background()); err != nil {
		t.Fatalf("status: %v", err)
	}
}
