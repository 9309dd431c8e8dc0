package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/openuploader/uploadproxy/app/pkg/web"
	"github.com/openuploader/uploadproxy/bootstrap"
	"go.uber.org/zap"
)

type PanicRecover struct {
	Logger *bootstrap.ProxyLogger
}

// NewPanicRecover _
func NewPanicRecover(logger *bootstrap.ProxyLogger) *PanicRecover {
	return &PanicRecover{
		Logger: logger,
	}
}

// Handler _
func (p *PanicRecover) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				p.Logger.NewContext(c, zap.String("panic", fmt.Sprintf("%v", err)))
				debug.PrintStack()
				c.AbortWithStatusJSON(http.StatusInternalServerError, web.Response{
					Message: fmt.Sprintf("%v", err),
					Data:    "",
				})
			}
		}()

		c.Next()
	}
}
