package middleware

import (
	"log/slog"
	"time"

	"github.com/garghot/food-client/logger"
	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger logs one line per request and propagates a request id.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if id, ok := UserID(c); ok {
			attrs = append(attrs, slog.String("user_id", id))
		}
		if len(c.Errors) > 0 {
			log.Error("http_request", requestID, "request failed", c.Errors.Last(), attrs...)
			return
		}
		log.Info("http_request", requestID, "request handled", attrs...)
	}
}
