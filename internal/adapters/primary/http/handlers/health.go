package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports whether the response cache answers. Without a cache the
// service is always ready.
func (h *Handler) Readyz(c *gin.Context) {
	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			log.WithError(err).Warn("cache ping failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
