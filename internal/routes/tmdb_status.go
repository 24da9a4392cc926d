package routes

import (
	"fmt"
	"net/http"

	pkgdeps "github.com/SarahE-Dev/moms-watchlist-app/pkg/deps"
	pkghttpx "github.com/SarahE-Dev/moms-watchlist-app/pkg/httpx"
)

// TMDBStatus handles GET /tmdb/status
//
// Connectivity probe for the settings screen. Always 200; the outcome is in
// the body so the client can show it verbatim.
func TMDBStatus(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Catalog.Status(r.Context()); err != nil {
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"message": fmt.Sprintf("TMDB connection failed: %v", err),
			})
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "TMDB connection successful",
		})
	}
}
