package routes

import (
	"encoding/json"
	"net/http"
	"time"

	pkgdeps "github.com/SarahE-Dev/moms-watchlist-app/pkg/deps"
	pkghttpx "github.com/SarahE-Dev/moms-watchlist-app/pkg/httpx"
)

// listCacheKey caches the GET /suggestions response body. Every mutating
// route invalidates it before re-reading, so a cached entry never outlives
// a write.
const listCacheKey = "suggestions:list"

const listCacheTTL = 2 * time.Minute

// writeList re-reads the full suggestion list, caches the encoded body and
// writes it with the given status. Mutating handlers call this so the
// caller's view always reflects what is truly persisted.
func writeList(w http.ResponseWriter, r *http.Request, d pkgdeps.ServerDeps, status int) {
	ctx := r.Context()
	items, err := d.Store.List(ctx)
	if err != nil {
		pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list suggestions", err))
		return
	}
	b, err := json.Marshal(items)
	if err != nil {
		pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to encode suggestions", err))
		return
	}
	_ = d.Cache.Set(ctx, listCacheKey, string(b), listCacheTTL)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
