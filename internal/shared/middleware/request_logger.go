package middleware

import (
	"time"

	"stagebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader  = "X-Request-ID"
	ContextRequestID = "request_id"
)

// RequestLogger logs every request once it has been handled. The caller's
// X-Request-ID is kept, otherwise a new one is generated and echoed back.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		reqLog := l.WithRequestID(requestID)
		if userID := UserID(c); userID != "" {
			reqLog = reqLog.WithUserID(userID)
		}
		reqLog.LogHTTPRequest(c, time.Since(start))
	}
}
