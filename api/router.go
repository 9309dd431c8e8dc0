package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/openuploader/uploadproxy/api/v1"
	"github.com/openuploader/uploadproxy/app/middleware"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
	"github.com/openuploader/uploadproxy/docs"
	gs "github.com/swaggo/gin-swagger"
	"github.com/swaggo/gin-swagger/swaggerFiles"
)

func NewRouter(
	conf *config.Configuration,
	upLogger *bootstrap.ProxyLogger,
) *gin.Engine {
	if conf.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// middleware
	corsM := middleware.NewCors()
	traceL := middleware.NewTrace(upLogger)
	requestL := middleware.NewRequestLog(upLogger)
	panicRecover := middleware.NewPanicRecover(upLogger)

	router.Use(corsM.Handler(), traceL.Handler(), requestL.Handler(), panicRecover.Handler())

	// swag docs
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", gs.WrapHandler(swaggerFiles.Handler))

	setApiGroupRoutes(router)

	return router
}

func setApiGroupRoutes(
	router *gin.Engine,
) *gin.RouterGroup {
	group := router.Group("/api/upload/v1")
	{
		// health
		group.GET("/ping", v1.PingHandler)
		group.GET("/health", v1.HealthCheckHandler)

		// multipart
		group.GET("/multipart/check/:fingerprint", v1.CheckFingerprintHandler)
		group.POST("/multipart/init", v1.InitMultipartHandler)
		group.POST("/multipart/chunk", v1.UploadChunkHandler)
		group.POST("/multipart/merge/:fingerprint", v1.MergeChunksHandler)
		group.DELETE("/session/:fingerprint", v1.DeleteSessionHandler)

		// single shot
		group.POST("/single", v1.SingleUploadHandler)
	}
	return group
}
