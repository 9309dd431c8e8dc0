package plugins

import (
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
	"go.uber.org/zap"
)

var upOss = new(ProxyOss)

type ProxyOss struct {
	Once      *sync.Once
	OssClient *oss.Client
}

func (up *ProxyOss) NewOss() *oss.Client {
	if upOss.OssClient != nil {
		return upOss.OssClient
	} else {
		return up.New().(*oss.Client)
	}
}

func newProxyOss() *ProxyOss {
	return &ProxyOss{
		OssClient: &oss.Client{},
		Once:      &sync.Once{},
	}
}

func (up *ProxyOss) Name() string {
	return "Oss"
}

func (up *ProxyOss) New() interface{} {
	upOss = newProxyOss()
	upOss.initOss(bootstrap.NewConfig(""))
	return upOss.OssClient
}

func (up *ProxyOss) Health() {
	_, err := upOss.OssClient.ListBuckets(oss.MaxKeys(1))
	if err != nil {
		bootstrap.NewLogger().Logger.Error("oss connect failed, err:", zap.Any("err", err))
		panic("failed to connect oss")
	}
}

func (up *ProxyOss) Close() {}

// Flag .
func (up *ProxyOss) Flag() bool {
	return bootstrap.NewConfig("").Oss.Enabled
}

func init() {
	p := &ProxyOss{}
	RegisteredPlugin(p)
}

func (up *ProxyOss) initOss(conf *config.Configuration) {
	up.Once.Do(func() {
		endpoint := conf.Oss.EndPoint
		accessKeyId := conf.Oss.AccessKeyId
		accessKeySecret := conf.Oss.AccessKeySecret
		client, err := oss.New(endpoint, accessKeyId, accessKeySecret)
		if err != nil {
			bootstrap.NewLogger().Logger.Error("oss connect failed, err:", zap.Any("err", err))
			panic(err)
		}
		upOss.OssClient = client
	})
}
