package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openuploader/uploadproxy/app/pkg/event/dispatch"
	"github.com/openuploader/uploadproxy/config"
	"go.uber.org/zap"
)

// App .
type App struct {
	conf    *config.Configuration
	logger  *zap.Logger
	httpSrv *http.Server
}

func NewHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	return &http.Server{
		Addr:    ":" + conf.App.Port,
		Handler: router,
	}
}

func NewApp(
	conf *config.Configuration,
	logger *zap.Logger,
	httpSrv *http.Server,
) *App {
	return &App{
		conf:    conf,
		logger:  logger,
		httpSrv: httpSrv,
	}
}

// RunServer runs until SIGINT/SIGTERM, then drains tasks and the server
func (a *App) RunServer() {
	a.logger.Info("start app ...")
	if err := a.Run(); err != nil {
		panic(err)
	}

	// cleanup task pool
	a.logger.Info("start task ...")
	p, consumers := dispatch.RunTask()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("stop task ...")
	dispatch.StopTask(p, consumers)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("shutdown app ...")
	if err := a.Stop(ctx); err != nil {
		panic(err)
	}
}

// Run .
func (a *App) Run() error {
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()
	return nil
}

// Stop .
func (a *App) Stop(ctx context.Context) error {
	if err := a.httpSrv.Shutdown(ctx); err != nil {
		return err
	}
	return nil
}
