package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	catalogService "github.com/zhouzirui/ebooks/backend/internal/service/catalog"
	"github.com/zhouzirui/ebooks/backend/pkg/utils"
)

// Lookup failure messages returned as plain text.
const (
	msgAuthorNotFound       = "Autor no encontrado"
	msgFullNameNotFound     = "autor no encontrado"
	msgSurnameParamRequired = "Falta el parámetro apellido"
	msgYearNotFound         = "Ninguna obra coincide con el año %s"
)

// Handler serves the catalog lookups under /api.
type Handler struct {
	svc          *catalogService.Service
	strictParams bool
}

// Option customizes a Handler.
type Option func(*Handler)

// WithStrictParams answers a missing query parameter with 400 instead of 404.
func WithStrictParams(strict bool) Option {
	return func(h *Handler) {
		h.strictParams = strict
	}
}

// New creates a catalog handler.
func New(svc *catalogService.Service, opts ...Option) *Handler {
	h := &Handler{svc: svc}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the lookups on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/apellido/{apellido}", h.handleBySurname)
	r.Get("/nombre_apellido/{nombre}/{apellido}", h.handleByFullName)
	r.Get("/nombre/{nombre}", h.handleByNameAndSurnamePrefix)
	r.Get("/edicion/{year}", h.handleWorksByYear)
}

// handleList returns the whole catalog in surname order.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.All())
}

// handleBySurname e.g. /api/apellido/Dumas
func (h *Handler) handleBySurname(w http.ResponseWriter, r *http.Request) {
	authors := h.svc.BySurname(pathParam(r, "apellido"))
	if len(authors) == 0 {
		utils.RespondText(w, http.StatusNotFound, msgAuthorNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, authors)
}

// handleByFullName e.g. /api/nombre_apellido/Alexandre/Dumas
func (h *Handler) handleByFullName(w http.ResponseWriter, r *http.Request) {
	authors := h.svc.ByFullName(pathParam(r, "nombre"), pathParam(r, "apellido"))
	if len(authors) == 0 {
		utils.RespondText(w, http.StatusNotFound, msgFullNameNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, authors)
}

// handleByNameAndSurnamePrefix e.g. /api/nombre/Alexandre?apellido=Du
func (h *Handler) handleByNameAndSurnamePrefix(w http.ResponseWriter, r *http.Request) {
	values, present := r.URL.Query()["apellido"]
	prefix := ""
	if present && len(values) > 0 {
		prefix = values[0]
	}

	authors, err := h.svc.ByNameAndSurnamePrefix(pathParam(r, "nombre"), prefix, present)
	if errors.Is(err, catalogService.ErrSurnameRequired) {
		status := http.StatusNotFound
		if h.strictParams {
			status = http.StatusBadRequest
		}
		utils.RespondText(w, status, msgSurnameParamRequired)
		return
	}
	if len(authors) == 0 {
		utils.RespondText(w, http.StatusNotFound, msgAuthorNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, authors)
}

// handleWorksByYear e.g. /api/edicion/1844
func (h *Handler) handleWorksByYear(w http.ResponseWriter, r *http.Request) {
	year := pathParam(r, "year")
	works := h.svc.WorksByYear(year)
	if len(works) == 0 {
		utils.RespondText(w, http.StatusNotFound, fmt.Sprintf(msgYearNotFound, year))
		return
	}
	utils.RespondJSON(w, http.StatusOK, works)
}

// pathParam returns a decoded URL parameter. chi matches against
// r.URL.RawPath when it is set (escaped separators such as %2F), and only
// then are the values still percent-encoded.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}
