package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/model"
	"github.com/SarahE-Dev/moms-watchlist-app/internal/store"
	pkgdeps "github.com/SarahE-Dev/moms-watchlist-app/pkg/deps"
	pkghttpx "github.com/SarahE-Dev/moms-watchlist-app/pkg/httpx"
)

// SuggestionsList handles GET /suggestions
func SuggestionsList(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok := d.Cache.Get(r.Context(), listCacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		writeList(w, r, d, http.StatusOK)
	}
}

// SuggestionsCreate handles POST /suggestions
func SuggestionsCreate(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload model.NewSuggestion
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := d.Store.Add(ctx, payload); err != nil {
			var ve *store.ValidationError
			if errors.As(err, &ve) {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid suggestion", ve))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to add suggestion", err))
			return
		}
		_ = d.Cache.Delete(ctx, listCacheKey)
		writeList(w, r, d, http.StatusCreated)
	}
}
