package static

import (
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"
)

const (
	indexPage    = "index.html"
	notFoundPage = "404.html"
)

// Handler serves the public site and the not-found document for every
// request the API routes do not claim.
type Handler struct {
	assets   fs.FS
	notFound []byte
}

// New loads the not-found document once and serves assets from the given root.
func New(assets fs.FS) *Handler {
	page, err := fs.ReadFile(assets, notFoundPage)
	if err != nil {
		log.Printf("[static] %s unavailable, falling back to plain text: %v", notFoundPage, err)
		page = nil
	}
	return &Handler{assets: assets, notFound: page}
}

// Index serves the landing document at the root path.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if !h.exists(indexPage) {
		h.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.assets, indexPage)
}

// Fallback serves a file from the public site when one exists at the
// request path, and the not-found document otherwise.
func (h *Handler) Fallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.NotFound(w, r)
		return
	}

	name, ok := h.resolve(r.URL.Path)
	if !ok {
		h.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.assets, name)
}

// NotFound writes the 404 document.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if h.notFound == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(h.notFound); err != nil {
		log.Printf("[static] failed to write %s: %v", notFoundPage, err)
	}
}

// resolve maps a URL path onto a file inside the asset root. Directories
// resolve only when they hold an index document.
func (h *Handler) resolve(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", false
	}

	info, err := fs.Stat(h.assets, name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if !h.exists(path.Join(name, indexPage)) {
			return "", false
		}
		return name, true
	}
	return name, true
}

func (h *Handler) exists(name string) bool {
	info, err := fs.Stat(h.assets, name)
	return err == nil && !info.IsDir()
}
