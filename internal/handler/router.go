package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/ebooks/backend/internal/config"
	"github.com/zhouzirui/ebooks/backend/internal/handler/catalog"
	"github.com/zhouzirui/ebooks/backend/internal/handler/static"
	middlewarePkg "github.com/zhouzirui/ebooks/backend/internal/middleware"
	catalogService "github.com/zhouzirui/ebooks/backend/internal/service/catalog"
	"github.com/zhouzirui/ebooks/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the catalog service and the public site.
func NewRouter(catalogSvc *catalogService.Service, assets fs.FS, apiCfg config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewarePkg.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(apiCfg.AllowedOrigins...))
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)

	// Create handlers
	site := static.New(assets)
	catalogHandler := catalog.New(catalogSvc, catalog.WithStrictParams(apiCfg.StrictParams))

	// Unmatched routes and methods get the static 404 document
	r.NotFound(site.Fallback)
	r.MethodNotAllowed(site.NotFound)

	r.Get("/", site.Index)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"authors": catalogSvc.Count(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		catalogHandler.RegisterRoutes(api)
	})

	return r
}
