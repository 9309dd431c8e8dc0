package plugins

import (
	"context"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
	"go.uber.org/zap"
)

var upMinio = new(ProxyMinio)

type ProxyMinio struct {
	Once      *sync.Once
	MinioCore *minio.Core
}

// NewMinio returns the low-level core client, it embeds the regular one
func (up *ProxyMinio) NewMinio() *minio.Core {
	if upMinio.MinioCore != nil {
		return upMinio.MinioCore
	} else {
		return up.New().(*minio.Core)
	}
}

func newProxyMinio() *ProxyMinio {
	return &ProxyMinio{
		MinioCore: &minio.Core{},
		Once:      &sync.Once{},
	}
}

func (up *ProxyMinio) Name() string {
	return "Minio"
}

func (up *ProxyMinio) New() interface{} {
	upMinio = newProxyMinio()
	upMinio.initMinio(bootstrap.NewConfig(""))
	return upMinio.MinioCore
}

func (up *ProxyMinio) Health() {
	_, err := upMinio.MinioCore.Client.ListBuckets(context.Background())
	if err != nil {
		bootstrap.NewLogger().Logger.Error("minio connect failed, err:", zap.Any("err", err))
		panic("failed to connect minio")
	}
}

func (up *ProxyMinio) Close() {}

// Flag .
func (up *ProxyMinio) Flag() bool { return bootstrap.NewConfig("").Minio.Enabled }

func init() {
	p := &ProxyMinio{}
	RegisteredPlugin(p)
}

func (up *ProxyMinio) initMinio(conf *config.Configuration) {
	up.Once.Do(func() {
		endpoint := conf.Minio.EndPoint
		accessKeyID := conf.Minio.AccessKeyID
		secretAccessKey := conf.Minio.SecretAccessKey
		useSSL := conf.Minio.UseSSL
		core, err := minio.NewCore(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
			Secure: useSSL,
		})

		if err != nil {
			bootstrap.NewLogger().Logger.Error("minio connect failed, err:", zap.Any("err", err))
			panic(err)
		} else {
			upMinio.MinioCore = core
		}
	})
}
