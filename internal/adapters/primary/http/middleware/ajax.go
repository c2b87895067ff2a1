package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const headerRequestedWith = "X-Requested-With"

// RequireAJAXPost lets through only POST requests sent by the browser's XHR
// layer. Anything else is answered by reject and the chain stops.
func RequireAJAXPost(reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.GetHeader(headerRequestedWith) != "XMLHttpRequest" {
			reject(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
