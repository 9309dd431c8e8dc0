package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openuploader/uploadproxy/bootstrap"
	"go.uber.org/zap"
)

// TraceLog .
type TraceLog struct {
	Logger *bootstrap.ProxyLogger
}

// NewTrace .
func NewTrace(logger *bootstrap.ProxyLogger) *TraceLog {
	return &TraceLog{
		Logger: logger,
	}
}

// Handler .
func (t *TraceLog) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// callers may bring their own id, otherwise mint one
		traceId := c.GetHeader("request-id")
		if traceId == "" {
			traceId = uuid.New().String()
		}
		t.Logger.NewContext(c, zap.String("traceId", traceId))

		c.Next()
	}
}
