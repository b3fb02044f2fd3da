package catalog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselineexplorer/pkg/models"
)

type viewBody struct {
	Total   int              `json:"total"`
	Items   []models.Feature `json:"items"`
	Stats   Stats            `json:"stats"`
	Filters Filters          `json:"filters"`
	Loaded  bool             `json:"loaded"`
	Error   string           `json:"error"`
	Scope   string           `json:"scope"`
	Version uint64           `json:"version"`
}

func newRouter(c *Catalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(c).RegisterRoutes(r.Group(""))
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHandlerListBeforeLoad(t *testing.T) {
	r := newRouter(New(quietLogger()))

	w := do(t, r, http.MethodGet, "/features", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[viewBody](t, w)
	assert.False(t, body.Loaded)
	assert.Zero(t, body.Total)
	assert.Zero(t, body.Stats.Total)

	w = do(t, r, http.MethodGet, "/features/css-grid", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandlerPutFiltersIsPartial(t *testing.T) {
	c := loaded(t, SampleFeatures())
	r := newRouter(c)

	w := do(t, r, http.MethodPut, "/filters", `{"category":"css"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[viewBody](t, w)
	assert.Equal(t, 7, body.Total)
	assert.Equal(t, models.CategoryFilter("css"), body.Filters.Category)

	w = do(t, r, http.MethodPut, "/filters", `{"status":"baseline"}`)
	body = decode[viewBody](t, w)
	assert.Equal(t, 6, body.Total)
	assert.Equal(t, models.CategoryFilter("css"), body.Filters.Category)
	assert.Equal(t, 26, body.Stats.Total)

	w = do(t, r, http.MethodPut, "/filters", `{"q":"GRID"}`)
	body = decode[viewBody](t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "css-grid", body.Items[0].ID)

	w = do(t, r, http.MethodGet, "/filters", "")
	f := decode[Filters](t, w)
	assert.Equal(t, Filters{Category: "css", Status: "baseline", Search: "grid"}, f)
}

func TestHandlerPutFiltersCoercesUnknown(t *testing.T) {
	r := newRouter(loaded(t, SampleFeatures()))

	w := do(t, r, http.MethodPut, "/filters", `{"category":"svg","status":"not-baseline"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[viewBody](t, w)
	assert.Equal(t, 26, body.Total)
	assert.Equal(t, models.CategoryFilterAll, body.Filters.Category)
	assert.Equal(t, models.StatusFilterAll, body.Filters.Status)
}

func TestHandlerPutFiltersRejectsBadJSON(t *testing.T) {
	r := newRouter(loaded(t, SampleFeatures()))

	w := do(t, r, http.MethodPut, "/filters", `{"category":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerGetByID(t *testing.T) {
	r := newRouter(loaded(t, SampleFeatures()))

	w := do(t, r, http.MethodGet, "/features/api-webgpu", "")
	require.Equal(t, http.StatusOK, w.Code)
	f := decode[models.Feature](t, w)
	assert.Equal(t, "WebGPU API", f.Name)
	assert.Equal(t, models.StatusNotBaseline, f.Status)

	w = do(t, r, http.MethodGet, "/features/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerStats(t *testing.T) {
	r := newRouter(loaded(t, SampleFeatures()))

	s := decode[Stats](t, do(t, r, http.MethodGet, "/stats", ""))
	assert.Equal(t, 26, s.Total)
	assert.Equal(t, 24, s.Baseline)
	assert.Equal(t, 7, s.ByCategory[models.CategoryAPI])
}

func TestHandlerReportsLoadError(t *testing.T) {
	c := New(quietLogger())
	c.Fail(assert.AnError)
	r := newRouter(c)

	body := decode[viewBody](t, do(t, r, http.MethodGet, "/features", ""))
	assert.Contains(t, body.Error, ErrLoadFailed.Error())
}

func TestHandlerListAllIgnoresFilters(t *testing.T) {
	c := loaded(t, SampleFeatures())
	c.SetCategoryFilter("html")
	r := newRouter(c)

	body := decode[viewBody](t, do(t, r, http.MethodGet, "/features", ""))
	assert.Equal(t, ScopeView, body.Scope)
	assert.Len(t, body.Items, 6)

	body = decode[viewBody](t, do(t, r, http.MethodGet, "/features?all=1", ""))
	assert.Equal(t, ScopeAll, body.Scope)
	assert.Equal(t, 26, body.Total)
	assert.Equal(t, ids(SampleFeatures()), ids(body.Items))
	assert.Equal(t, models.CategoryFilter("html"), body.Filters.Category)
}
