package main

import (
	"github.com/openuploader/uploadproxy/api"
	"github.com/openuploader/uploadproxy/app"
	"github.com/openuploader/uploadproxy/app/pkg/base"
	"github.com/openuploader/uploadproxy/app/pkg/storage"
	"github.com/openuploader/uploadproxy/app/pkg/uploader"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

// @title		UploadProxy
// @version	1.0
// @description	resumable chunked upload coordinator for object storage
// @host		127.0.0.1:8899
// @BasePath	/
func main() {
	// config log
	upConfig := bootstrap.NewConfig("conf/config.yaml")
	upLogger := bootstrap.NewLogger()

	// plugins DB Redis storage backends
	plugins.NewPlugins()
	defer plugins.ClosePlugins()

	// init snowflake
	base.InitSnowFlake()

	// init storage and the session manager on top of it
	storage.InitStorage(upConfig)
	uploader.InitUploader(upConfig)

	// router
	engine := api.NewRouter(upConfig, upLogger)
	server := app.NewHttpServer(upConfig, engine)

	// app run-server
	application := app.NewApp(upConfig, upLogger.Logger, server)
	application.RunServer()
}
