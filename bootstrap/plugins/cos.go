package plugins

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"
)

var upCos = new(ProxyCos)

// ProxyCos the sdk binds a client to one bucket url, this client exists
// for the health check against the upload bucket
type ProxyCos struct {
	Once      *sync.Once
	CosClient *cos.Client
}

func (up *ProxyCos) NewCos() *cos.Client {
	if upCos.CosClient != nil {
		return upCos.CosClient
	} else {
		return up.New().(*cos.Client)
	}
}

func newProxyCos() *ProxyCos {
	return &ProxyCos{
		CosClient: &cos.Client{},
		Once:      &sync.Once{},
	}
}

func (up *ProxyCos) Name() string {
	return "Cos"
}

func (up *ProxyCos) New() interface{} {
	upCos = newProxyCos()
	upCos.initCos(bootstrap.NewConfig(""))
	return upCos.CosClient
}

func (up *ProxyCos) Health() {
	ok, err := upCos.CosClient.Bucket.IsExist(context.Background())
	if err == nil && ok {
		return
	} else if err != nil {
		bootstrap.NewLogger().Logger.Error("cos connect failed, err:", zap.Any("err", err))
		panic("failed to connect cos")
	} else {
		return
	}
}

func (up *ProxyCos) Close() {}

// Flag .
func (up *ProxyCos) Flag() bool {
	return bootstrap.NewConfig("").Cos.Enabled
}

func init() {
	p := &ProxyCos{}
	RegisteredPlugin(p)
}

func (up *ProxyCos) initCos(conf *config.Configuration) {
	up.Once.Do(func() {
		appid := conf.Cos.Appid
		region := conf.Cos.Region
		secretId := conf.Cos.SecretId
		secretKey := conf.Cos.SecretKey
		u, _ := url.Parse(fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", conf.Upload.Bucket, appid, region))
		b := &cos.BaseURL{BucketURL: u}
		upCos.CosClient = cos.NewClient(b, &http.Client{
			Transport: &cos.AuthorizationTransport{
				SecretID:  secretId,
				SecretKey: secretKey,
			},
		})
	})
}
