package model

import "github.com/go-playground/validator/v10"

// Allowed media types.
const (
	TypeMovie = "movie"
	TypeTV    = "tv"
)

var AllowedTypes = map[string]struct{}{
	TypeMovie: {},
	TypeTV:    {},
}

// Suggestion is the persisted watchlist entry. The store assigns ID and
// AddedAt at creation; Watched only ever transitions false -> true.
type Suggestion struct {
	ID          string  `json:"id"`
	TMDBID      int64   `json:"tmdbId"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	PosterPath  string  `json:"posterPath,omitempty"`
	ReleaseDate string  `json:"releaseDate"`
	Rating      float64 `json:"rating"`
	AddedAt     string  `json:"addedAt"`
	Watched     bool    `json:"watched"`
}

// NewSuggestion is the caller-supplied payload for creating a Suggestion.
// ID, AddedAt and Watched are never accepted from the caller.
type NewSuggestion struct {
	TMDBID      int64    `json:"tmdbId" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=movie tv"`
	Title       string   `json:"title" validate:"required"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"posterPath"`
	ReleaseDate string   `json:"releaseDate" validate:"required"`
	Rating      *float64 `json:"rating" validate:"required"`
}

var validate = validator.New()

// Validate checks the payload against the creation contract. Callers wrap
// the raw validator error into their own taxonomy.
func (n NewSuggestion) Validate() error {
	return validate.Struct(n)
}
