package plugins

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
	"go.uber.org/zap"
)

var upS3 = new(ProxyS3)

type ProxyS3 struct {
	Once     *sync.Once
	S3Client *s3.Client
}

func (up *ProxyS3) NewS3() *s3.Client {
	if upS3.S3Client != nil {
		return upS3.S3Client
	} else {
		return up.New().(*s3.Client)
	}
}

func newProxyS3() *ProxyS3 {
	return &ProxyS3{
		S3Client: &s3.Client{},
		Once:     &sync.Once{},
	}
}

func (up *ProxyS3) Name() string {
	return "S3"
}

func (up *ProxyS3) New() interface{} {
	upS3 = newProxyS3()
	upS3.initS3(bootstrap.NewConfig(""))
	return upS3.S3Client
}

func (up *ProxyS3) Health() {
	_, err := upS3.S3Client.ListBuckets(context.Background(), &s3.ListBucketsInput{})
	if err != nil {
		bootstrap.NewLogger().Logger.Error("s3 connect failed, err:", zap.Any("err", err))
		panic("failed to connect s3")
	}
}

func (up *ProxyS3) Close() {}

// Flag .
func (up *ProxyS3) Flag() bool { return bootstrap.NewConfig("").S3.Enabled }

func init() {
	p := &ProxyS3{}
	RegisteredPlugin(p)
}

func (up *ProxyS3) initS3(conf *config.Configuration) {
	up.Once.Do(func() {
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(conf.S3.Region),
		}
		if conf.S3.AccessKeyId != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(conf.S3.AccessKeyId, conf.S3.SecretAccessKey, "")))
		}
		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
		if err != nil {
			bootstrap.NewLogger().Logger.Error("s3 config failed, err:", zap.Any("err", err))
			panic(err)
		}
		upS3.S3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			if conf.S3.Endpoint != "" {
				o.BaseEndpoint = aws.String(conf.S3.Endpoint)
			}
			o.UsePathStyle = conf.S3.UsePathStyle
		})
	})
}
