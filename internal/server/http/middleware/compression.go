package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest inflates gzip request bodies before they reach the
// handlers, so binding code never sees compressed payloads.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		inflated, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer inflated.Close()
		defer compressed.Close()

		c.Request.Body = io.NopCloser(inflated)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
