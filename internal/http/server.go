// Package http provides the HTTP server for the wishlist page: full-page
// rendering, fragment endpoints the page calls to mutate state, and the
// middleware around them.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/rs/cors"

	"wishly/internal/cache"
	"wishly/internal/core"
	"wishly/internal/rates"
	"wishly/internal/wishlist"
	appweb "wishly/web"
)

// Store is the slice of the wishlist store the server needs.
type Store interface {
	wishlist.PeopleReader
	wishlist.PeopleWriter
	wishlist.ItemWriter
	wishlist.Versioned
}

type Server struct {
	http.Server
	templates *template.Template
	store     Store
	table     *rates.Table

	// Session display currency; single-user app, one choice at a time.
	displayMu sync.RWMutex
	display   core.Currency

	rateLimiter *rateLimiter

	// Rendered people-list fragments keyed by (store version, rate table
	// generation, display currency). Mutations bump the version and rate
	// loads bump the generation, so entries can never serve stale state.
	fragCache *cache.LRUCache[template.HTML]
	cacheMgr  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
// ratePerMin is the per-IP budget for mutating requests.
func NewServer(addr string, store Store, table *rates.Table, display core.Currency, allowedOrigins []string, ratePerMin int) *Server {
	mux := pat.New()

	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		store:       store,
		table:       table,
		display:     display,
		rateLimiter: newRateLimiter(ratePerMin),
		fragCache:   cache.NewLRUCache[template.HTML](64, 5*time.Minute),
		cacheMgr:    cache.NewManager(),
	}

	s.cacheMgr.Register(s.fragCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	// Templates are embedded and required; a parse failure means a broken
	// build, so fail at startup rather than 500 on every page.
	s.templates = template.Must(template.ParseFS(appweb.TemplatesFS, "templates/*.html"))

	standard := alice.New(s.recoverPanic, s.trace, s.secureHeaders)
	mutating := standard.Append(s.rateLimit)

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Get("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Tiny cache for static assets
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.Get("/healthz", http.HandlerFunc(handleHealth))
	mux.Get("/readyz", http.HandlerFunc(handleReady))

	mux.Get("/", standard.ThenFunc(s.handleIndex))
	mux.Post("/currency", mutating.ThenFunc(s.handleSetCurrency))

	// People
	mux.Post("/people", mutating.ThenFunc(s.handleAddPerson))
	mux.Post("/people/reorder", mutating.ThenFunc(s.handleReorderPeople))
	mux.Post("/people/:id/rename", mutating.ThenFunc(s.handleRenamePerson))
	mux.Del("/people/:id", mutating.ThenFunc(s.handleRemovePerson))

	// Items
	mux.Post("/people/:id/items", mutating.ThenFunc(s.handleAddItem))
	mux.Post("/people/:id/items/reorder", mutating.ThenFunc(s.handleReorderItems))
	mux.Post("/people/:id/items/:item_id/edit", mutating.ThenFunc(s.handleEditItem))
	mux.Del("/people/:id/items/:item_id", mutating.ThenFunc(s.handleRemoveItem))
	mux.Post("/people/:id/sort", mutating.ThenFunc(s.handleSortItems))
	mux.Get("/people/:id/total", standard.ThenFunc(s.handleGroupTotal))

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "HX-Request", "HX-Target", "HX-Trigger"},
	})
	s.Handler = c.Handler(mux)

	return s
}

// DisplayCurrency returns the currently selected display currency.
func (s *Server) DisplayCurrency() core.Currency {
	s.displayMu.RLock()
	defer s.displayMu.RUnlock()
	return s.display
}

func (s *Server) setDisplayCurrency(c core.Currency) {
	s.displayMu.Lock()
	defer s.displayMu.Unlock()
	s.display = c
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
