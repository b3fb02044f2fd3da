package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"baselineexplorer/pkg/models"
)

type Handler struct {
	Catalog *Catalog
}

func NewHandler(cat *Catalog) *Handler {
	return &Handler{Catalog: cat}
}

const (
	ScopeView = "view" // items are the filtered view
	ScopeAll  = "all"  // items are every loaded record
)

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/features", h.list)        // GET /features
	rg.GET("/features/:id", h.getByID) // GET /features/:id
	rg.GET("/stats", h.stats)          // GET /stats
	rg.GET("/filters", h.getFilters)   // GET /filters
	rg.PUT("/filters", h.putFilters)   // PUT /filters
}

// filtersRequest is a partial update: absent axes keep their value.
type filtersRequest struct {
	Category *string `json:"category"`
	Status   *string `json:"status"`
	Q        *string `json:"q"`
}

// list serves the current view. With ?all=1 the items are the full
// record set instead, for export and for loading one explorer from another.
func (h *Handler) list(c *gin.Context) {
	v := h.Catalog.View()
	if all, _ := strconv.ParseBool(c.Query("all")); !all {
		c.JSON(http.StatusOK, viewResponse(v))
		return
	}
	v.Features = h.Catalog.Records()
	resp := viewResponse(v)
	resp["scope"] = ScopeAll
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getByID(c *gin.Context) {
	f, err := h.Catalog.Get(c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	case errors.Is(err, ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "not loaded"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Stats())
}

func (h *Handler) getFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Filters())
}

func (h *Handler) putFilters(c *gin.Context) {
	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	f := h.Catalog.Filters()
	if req.Category != nil {
		f.Category = models.CategoryFilter(*req.Category)
	}
	if req.Status != nil {
		f.Status = models.StatusFilter(*req.Status)
	}
	if req.Q != nil {
		f.Search = *req.Q
	}
	// SetFilters coerces unknown category/status values to "all".
	h.Catalog.SetFilters(f)

	c.JSON(http.StatusOK, viewResponse(h.Catalog.View()))
}

func viewResponse(v View) gin.H {
	resp := gin.H{
		"total":   len(v.Features),
		"items":   v.Features,
		"stats":   v.Stats,
		"filters": v.Filters,
		"loaded":  v.Loaded,
		"version": v.Version,
		"scope":   ScopeView,
	}
	if v.LoadError != "" {
		resp["error"] = v.LoadError
	}
	return resp
}
