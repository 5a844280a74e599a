package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlerImpl) HandleReady(c *gin.Context) {
	err := h.tasks.Ping(c)
	if err != nil {
		h.requestLogger(c).Warn().
			Err(err).
			Msg("storage is not ready")
		abort(c, newStatusTextError(http.StatusServiceUnavailable))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
