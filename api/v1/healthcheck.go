package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/openuploader/uploadproxy/app/pkg/web"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

// PingHandler connectivity probe for db and redis
//
//	@Summary		ping
//	@Description	checks db and redis connectivity
//	@Tags			health
//	@Accept			application/json
//	@Produce		application/json
//	@Success		200	{object}	web.Response
//	@Router			/api/upload/v1/ping [get]
func PingHandler(c *gin.Context) {
	var upDB = new(plugins.ProxyDB).Use("default").NewDB()
	var upRedis = new(plugins.ProxyRedis).NewRedis()

	upDB.Exec("select now();")

	err := upRedis.Set(c, "ping", "pong", 0).Err()
	if err != nil {
		panic(err)
	}
	val, err := upRedis.Get(c, "ping").Result()
	if err != nil {
		panic(err)
	}
	bootstrap.NewLogger().WithContext(c).Info(fmt.Sprintf("ping %v", val))
	web.Success(c, "Pong...")
}

// HealthCheckHandler liveness probe
//
//	@Summary		health check
//	@Description	liveness probe
//	@Tags			health
//	@Accept			application/json
//	@Produce		application/json
//	@Success		200	{object}	web.Response
//	@Router			/api/upload/v1/health [get]
func HealthCheckHandler(c *gin.Context) {
	web.Success(c, "Health...")
}
