package plugins

import (
	"context"
	"sync"

	"github.com/go-redis/redis/extra/redisotel"
	"github.com/go-redis/redis/v8"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
	"go.uber.org/zap"
)

var upRedis = new(ProxyRedis)

type ProxyRedis struct {
	Once        *sync.Once
	RedisClient *redis.Client
}

func (up *ProxyRedis) NewRedis() *redis.Client {
	if upRedis.RedisClient != nil {
		return upRedis.RedisClient
	} else {
		return up.New().(*redis.Client)
	}
}

func newProxyRedis() *ProxyRedis {
	return &ProxyRedis{
		RedisClient: &redis.Client{},
		Once:        &sync.Once{},
	}
}

func (up *ProxyRedis) Name() string {
	return "Redis"
}

func (up *ProxyRedis) New() interface{} {
	upRedis = newProxyRedis()
	upRedis.initRedis(bootstrap.NewConfig(""))
	return upRedis.RedisClient
}

func (up *ProxyRedis) Health() {
	if err := upRedis.RedisClient.Ping(context.Background()).Err(); err != nil {
		bootstrap.NewLogger().Logger.Error("redis connect failed, err:", zap.Any("err", err))
		panic(err)
	}
}

func (up *ProxyRedis) Close() {
	if up.RedisClient == nil {
		return
	} else {
		if err := up.RedisClient.Close(); err != nil {
			bootstrap.NewLogger().Logger.Error("redis close failed, err:", zap.Any("err", err))
		}
	}
}

// Flag .
func (up *ProxyRedis) Flag() bool { return true }

func init() {
	p := &ProxyRedis{}
	RegisteredPlugin(p)
}

func (up *ProxyRedis) initRedis(conf *config.Configuration) {
	up.Once.Do(func() {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Host + ":" + conf.Redis.Port,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})

		// tracing hook
		client.AddHook(redisotel.TracingHook{})
		upRedis.RedisClient = client
	})
}
