package middleware

import (
	"time"

	"ig-dashboard/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	KeyRequestID    = "request_id"
)

// RequestLogger tags each request with an id and writes one access log line
// when it completes.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := ctx.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(KeyRequestID, requestID)
		ctx.Header(HeaderRequestID, requestID)

		ctx.Next()

		entry := logger.GetLogger().WithFields(map[string]interface{}{
			"request_id": requestID,
			"method":     ctx.Request.Method,
			"path":       ctx.Request.URL.Path,
			"status":     ctx.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  ctx.ClientIP(),
		})
		if uid, ok := ctx.Get(KeyUserID); ok {
			entry = entry.WithField("user_id", uid)
		}
		if len(ctx.Errors) > 0 {
			entry.WithField("errors", ctx.Errors.String()).Error("Request completed with errors")
			return
		}
		if ctx.Writer.Status() >= 500 {
			entry.Error("Request completed")
			return
		}
		entry.Info("Request completed")
	}
}
