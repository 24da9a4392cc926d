package deps

import (
	"time"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/store"
	pkgcache "github.com/SarahE-Dev/moms-watchlist-app/pkg/cache"
	pkgtmdb "github.com/SarahE-Dev/moms-watchlist-app/pkg/tmdb"
)

// ServerDeps holds the dependencies required by handlers and server.
type ServerDeps struct {
	Store     store.Store
	Cache     pkgcache.Cache
	Catalog   *pkgtmdb.Client
	Name      string
	StartedAt time.Time
}
