package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/ebooks/backend/internal/config"
	"github.com/zhouzirui/ebooks/backend/internal/embedded"
	"github.com/zhouzirui/ebooks/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/ebooks/backend/internal/service/catalog"
)

const notFoundDoc = "<html>no existe</html>"

func setupRouter(t *testing.T, apiCfg config.APIConfig) http.Handler {
	t.Helper()

	authors, err := catalog.LoadFS(embedded.FS, embedded.CatalogFile)
	require.NoError(t, err)
	svc := catalogService.NewService(catalog.NewMemoryStore(authors))

	assets := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html>inicio</html>")},
		"404.html":   &fstest.MapFile{Data: []byte(notFoundDoc)},
		"styles.css": &fstest.MapFile{Data: []byte("body{}")},
	}
	return NewRouter(svc, assets, apiCfg)
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRootServesLandingPage(t *testing.T) {
	resp := do(setupRouter(t, config.APIConfig{}), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "<html>inicio</html>", resp.Body.String())
}

func TestAPIListWithAndWithoutSlash(t *testing.T) {
	r := setupRouter(t, config.APIConfig{})

	for _, target := range []string{"/api", "/api/"} {
		resp := do(r, http.MethodGet, target)
		require.Equal(t, http.StatusOK, resp.Code, target)

		var authors []catalog.Author
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &authors))
		assert.Len(t, authors, 13, target)
		assert.Equal(t, "Alas", authors[0].Surname)
		assert.Equal(t, "Poe", authors[len(authors)-1].Surname)
	}
}

func TestTrailingSlashTolerated(t *testing.T) {
	resp := do(setupRouter(t, config.APIConfig{}), http.MethodGet, "/api/apellido/Dumas/")

	require.Equal(t, http.StatusOK, resp.Code)
	var authors []catalog.Author
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &authors))
	assert.Len(t, authors, 2)
}

func TestUnmatchedRouteServesNotFoundDocument(t *testing.T) {
	r := setupRouter(t, config.APIConfig{})

	for _, target := range []string{"/nonexistent-path", "/api/desconocido", "/api/edicion", "/api/apellido/"} {
		resp := do(r, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, resp.Code, target)
		assert.Equal(t, notFoundDoc, resp.Body.String(), target)
	}
}

func TestWrongMethodServesNotFoundDocument(t *testing.T) {
	resp := do(setupRouter(t, config.APIConfig{}), http.MethodPost, "/api/")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, notFoundDoc, resp.Body.String())
}

func TestAPINotFoundIsPlainText(t *testing.T) {
	resp := do(setupRouter(t, config.APIConfig{}), http.MethodGet, "/api/apellido/Zzzqx")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Autor no encontrado", resp.Body.String())
}

func TestMissingParamStatus(t *testing.T) {
	resp := do(setupRouter(t, config.APIConfig{}), http.MethodGet, "/api/nombre/Alexandre")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Falta el parámetro apellido", resp.Body.String())

	resp = do(setupRouter(t, config.APIConfig{StrictParams: true}), http.MethodGet, "/api/nombre/Alexandre")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestEditionYearAcrossAuthors(t *testing.T) {
	resp := do(setupRouter(t, config.APIConfig{}), http.MethodGet, "/api/edicion/1844")
	require.Equal(t, http.StatusOK, resp.Code)

	var works []struct {
		Title string `json:"titulo"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &works))
	require.Len(t, works, 3)
	assert.Equal(t, "Martin Chuzzlewit", works[0].Title)
	assert.Equal(t, "Los tres mosqueteros", works[1].Title)
	assert.Equal(t, "El conde de Montecristo", works[2].Title)
}

func TestStaticFilesAndHead(t *testing.T) {
	r := setupRouter(t, config.APIConfig{})

	resp := do(r, http.MethodGet, "/styles.css")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "body{}", resp.Body.String())

	resp = do(r, http.MethodHead, "/api/apellido/Hugo")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "application/json")
}

func TestHealthz(t *testing.T) {
	resp := do(setupRouter(t, config.APIConfig{}), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Status  string `json:"status"`
		Authors int    `json:"authors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 13, body.Authors)
}

func TestRequestIDHeader(t *testing.T) {
	r := setupRouter(t, config.APIConfig{})

	resp := do(r, http.MethodGet, "/api/")
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}
