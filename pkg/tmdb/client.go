package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Kind selects the catalog endpoint family.
const (
	KindMovie = "movie"
	KindTV    = "tv"
)

// ErrEmptyQuery is returned before any network call when the search query
// is blank.
var ErrEmptyQuery = errors.New("empty search query")

// GatewayError reports an upstream non-success response or transport
// failure. StatusCode is zero for transport failures.
type GatewayError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func New(apiKey string) *Client {
	return &Client{APIKey: apiKey, BaseURL: "https://api.themoviedb.org/3", Client: &http.Client{Timeout: 15 * time.Second}}
}

// Summary is one search result, normalized across the movie and tv shapes
// (title vs name, release_date vs first_air_date).
type Summary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"posterPath"`
	ReleaseDate string  `json:"releaseDate"`
	Rating      float64 `json:"rating"`
}

type searchResp struct {
	Results []searchItem `json:"results"`
}

type searchItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
}

// Genre, CastMember and Season carry TMDB's field names through unchanged.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
}

type Season struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	SeasonNumber int    `json:"season_number"`
}

// MovieDetails is the full /movie/{id} record with credits appended.
type MovieDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Runtime     int     `json:"runtime"`
	Genres      []Genre `json:"genres"`
	Credits     Credits `json:"credits"`
}

// TVDetails is the full /tv/{id} record with credits appended and the
// season breakdown included.
type TVDetails struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Overview         string   `json:"overview"`
	PosterPath       string   `json:"poster_path"`
	FirstAirDate     string   `json:"first_air_date"`
	VoteAverage      float64  `json:"vote_average"`
	NumberOfSeasons  int      `json:"number_of_seasons"`
	NumberOfEpisodes int      `json:"number_of_episodes"`
	Genres           []Genre  `json:"genres"`
	Credits          Credits  `json:"credits"`
	Seasons          []Season `json:"seasons"`
}

// Search queries /search/movie or /search/tv, first page only. A blank
// query fails with ErrEmptyQuery before any network I/O.
func (c *Client) Search(ctx context.Context, kind, query string) ([]Summary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	u, _ := url.Parse(c.BaseURL + "/search/" + kind)
	q := u.Query()
	q.Set("api_key", c.APIKey)
	q.Set("query", query)
	q.Set("page", "1")
	u.RawQuery = q.Encode()

	var sr searchResp
	if err := c.getJSON(ctx, "search/"+kind, u.String(), &sr); err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(sr.Results))
	for _, it := range sr.Results {
		s := Summary{
			ID:          it.ID,
			Title:       it.Title,
			Overview:    it.Overview,
			PosterPath:  it.PosterPath,
			ReleaseDate: it.ReleaseDate,
			Rating:      it.VoteAverage,
		}
		if kind == KindTV {
			s.Title = it.Name
			s.ReleaseDate = it.FirstAirDate
		}
		out = append(out, s)
	}
	return out, nil
}

// MovieDetails fetches /movie/{id} with aggregated cast credits.
func (c *Client) MovieDetails(ctx context.Context, id int64) (MovieDetails, error) {
	var out MovieDetails
	err := c.getJSON(ctx, "movie details", c.detailURL(KindMovie, id), &out)
	return out, err
}

// TVDetails fetches /tv/{id} with credits and the season breakdown.
func (c *Client) TVDetails(ctx context.Context, id int64) (TVDetails, error) {
	var out TVDetails
	err := c.getJSON(ctx, "tv details", c.detailURL(KindTV, id), &out)
	return out, err
}

// Status probes /configuration to verify the API key and connectivity.
func (c *Client) Status(ctx context.Context) error {
	u, _ := url.Parse(c.BaseURL + "/configuration")
	q := u.Query()
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()
	var ignored struct{}
	return c.getJSON(ctx, "status", u.String(), &ignored)
}

func (c *Client) detailURL(kind string, id int64) string {
	u, _ := url.Parse(c.BaseURL + "/" + kind + "/" + strconv.FormatInt(id, 10))
	q := u.Query()
	q.Set("api_key", c.APIKey)
	q.Set("append_to_response", "credits")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, op, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &GatewayError{Op: op, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	return nil
}
