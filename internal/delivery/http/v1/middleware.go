package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDCtxKey = "request_id"
	loggerCtxKey    = "logger"
)

func (h *handlerImpl) HandleRequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	logger := h.logger.With().
		Str("request_id", requestID).
		Logger()

	c.Set(requestIDCtxKey, requestID)
	c.Set(loggerCtxKey, &logger)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func (h *handlerImpl) HandleLoggerMiddleware(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path

	c.Next()

	status := c.Writer.Status()
	var event *zerolog.Event
	switch {
	case status >= 500:
		event = h.logger.Error()
	case status >= 400:
		event = h.logger.Warn()
	default:
		event = h.logger.Info()
	}

	requestID, _ := getStringFromContext(c, requestIDCtxKey)
	event.
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

// requestLogger returns the logger tagged with the request id,
// or the handler logger outside of HandleRequestIDMiddleware.
func (h *handlerImpl) requestLogger(c *gin.Context) *zerolog.Logger {
	value, exists := c.Get(loggerCtxKey)
	if exists {
		if logger, ok := value.(*zerolog.Logger); ok {
			return logger
		}
	}
	return &h.logger
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
