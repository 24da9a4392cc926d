package server

import (
	"net/http"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/routes"
	"github.com/SarahE-Dev/moms-watchlist-app/pkg/deps"
)

type Server struct {
	deps.ServerDeps

	corsOrigins []string
}

func New(sd deps.ServerDeps, corsOrigins []string) *Server {
	return &Server{ServerDeps: sd, corsOrigins: corsOrigins}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	sd := s.ServerDeps

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(sd))
	mux.HandleFunc("GET /suggestions", routes.SuggestionsList(sd))
	mux.HandleFunc("POST /suggestions", routes.SuggestionsCreate(sd))
	mux.HandleFunc("PATCH /suggestions/{id}", routes.SuggestionWatched(sd))
	mux.HandleFunc("DELETE /suggestions/{id}", routes.SuggestionDelete(sd))
	mux.HandleFunc("GET /search/{kind}", routes.Search(sd))
	mux.HandleFunc("GET /details/{kind}/{id}", routes.Details(sd))
	mux.HandleFunc("GET /tmdb/status", routes.TMDBStatus(sd))

	h := withSecurityHeaders(mux)
	h = withCORS(s.corsOrigins)(h)
	return withCorrelationID(withLogging(h))
}
