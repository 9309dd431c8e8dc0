package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
)

// ErrSessionExpired the backend multipart session no longer exists
// (expired or aborted server-side). The caller decides whether that is
// fatal or just means "start over".
var ErrSessionExpired = errors.New("backend upload session no longer exists")

// ChunkPart one chunk as the backend sees it. Receipt is the backend's
// durability token for the chunk (ETag for S3-family backends).
type ChunkPart struct {
	Index   int
	Receipt string
	Size    int64
}

// ObjectGateway storage backend operations for chunked uploads
type ObjectGateway interface {
	// MakeBucket creates the bucket if missing
	MakeBucket(bucketName string) error

	// BeginSession opens a multipart session, returns the backend session token
	BeginSession(ctx context.Context, bucketName, objectName, contentType string) (string, error)

	// PutChunk streams one chunk into an open session, returns its receipt token
	PutChunk(ctx context.Context, bucketName, objectName, sessionToken string, index int, reader io.Reader, size int64) (string, error)

	// ListCompletedChunks asks the backend which chunks it durably holds
	ListCompletedChunks(ctx context.Context, bucketName, objectName, sessionToken string) ([]ChunkPart, error)

	// Finalize merges the listed chunks into the final object
	Finalize(ctx context.Context, bucketName, objectName, sessionToken string, parts []ChunkPart) error

	// AbortSession discards an open session and its chunks
	AbortSession(ctx context.Context, bucketName, objectName, sessionToken string) error

	// PutObject uploads a whole object in one shot
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) error

	// PublicURL download address of a finalized object
	PublicURL(bucketName, objectName string) string
}

// ProxyStorage .
type ProxyStorage struct {
	Mux     *sync.RWMutex
	Storage ObjectGateway
}

var upStorage *ProxyStorage

// InitStorage picks the first enabled backend and prepares the upload bucket.
func InitStorage(conf *config.Configuration) {
	var gateway ObjectGateway
	if conf.Local.Enabled {
		gateway = NewLocalStorage()
		bootstrap.NewLogger().Logger.Info("object storage backend: Local")
	} else if conf.Minio.Enabled {
		gateway = NewMinIOStorage()
		bootstrap.NewLogger().Logger.Info("object storage backend: MinIO")
	} else if conf.S3.Enabled {
		gateway = NewS3Storage()
		bootstrap.NewLogger().Logger.Info("object storage backend: S3")
	} else if conf.Cos.Enabled {
		gateway = NewCosStorage()
		bootstrap.NewLogger().Logger.Info("object storage backend: COS")
	} else if conf.Oss.Enabled {
		gateway = NewOssStorage()
		bootstrap.NewLogger().Logger.Info("object storage backend: OSS")
	} else {
		panic("no object storage backend enabled")
	}

	upStorage = &ProxyStorage{
		Mux:     &sync.RWMutex{},
		Storage: gateway,
	}
	if err := gateway.MakeBucket(conf.Upload.Bucket); err != nil {
		panic(err)
	}
}

// NewStorage .
func NewStorage() *ProxyStorage {
	if upStorage != nil {
		return upStorage
	} else {
		return nil
	}
}
