package present

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"baselineexplorer/internal/catalog"
)

// PageHandler renders the current view as HTML. With ?partial=features
// only the card grid is returned.
func PageHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var buf bytes.Buffer
		render := Page
		if c.Query("partial") == "features" {
			render = Features
		}
		if err := render(&buf, cat.View()); err != nil {
			c.String(http.StatusInternalServerError, "render failed")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}
