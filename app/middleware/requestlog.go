package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openuploader/uploadproxy/bootstrap"
	"go.uber.org/zap"
)

/*
request/response logging, replaces gin's default log
*/

type RequestLog struct {
	Logger *bootstrap.ProxyLogger
}

func NewRequestLog(logger *bootstrap.ProxyLogger) *RequestLog {
	return &RequestLog{
		Logger: logger,
	}
}

// CustomResponseWriter _
type CustomResponseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write _
func (w CustomResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString _
func (w CustomResponseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Handler chunk bodies never get dumped, only shape and timing
func (r *RequestLog) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		r.Logger.WithContext(c).Info("RequestInfo",
			zap.String("content-type", c.ContentType()),
			zap.String("Ip", c.ClientIP()),
			zap.String("Method", c.Request.Method),
			zap.String("URL", c.Request.URL.Path),
			zap.String("Query", c.Request.URL.RawQuery),
		)

		blw := &CustomResponseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw
		c.Next()
		cost := time.Since(start)

		r.Logger.WithContext(c).Info("ResponseInfo",
			zap.String("Path", c.Request.URL.Path),
			zap.Int("Status", c.Writer.Status()),
			zap.Duration("Cost", cost),
		)
	}
}
