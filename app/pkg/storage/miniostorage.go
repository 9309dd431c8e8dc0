package storage

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/minio/minio-go/v7"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

// MinIOStorage minio backend. Uses the low-level Core API so partial
// uploads survive process restarts on the backend side.
type MinIOStorage struct {
	core *minio.Core
}

// NewMinIOStorage .
func NewMinIOStorage() *MinIOStorage {
	core := new(plugins.ProxyMinio).NewMinio()
	return &MinIOStorage{
		core: core,
	}
}

// MakeBucket .
func (s *MinIOStorage) MakeBucket(bucketName string) error {
	ctx := context.Background()
	isExist, err := s.core.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if isExist {
		return nil
	}
	return s.core.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
}

// BeginSession .
func (s *MinIOStorage) BeginSession(ctx context.Context, bucketName, objectName, contentType string) (string, error) {
	uploadID, err := s.core.NewMultipartUpload(ctx, bucketName, objectName,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return uploadID, nil
}

// PutChunk .
func (s *MinIOStorage) PutChunk(ctx context.Context, bucketName, objectName, sessionToken string,
	index int, reader io.Reader, size int64) (string, error) {
	part, err := s.core.PutObjectPart(ctx, bucketName, objectName, sessionToken, index,
		reader, size, minio.PutObjectPartOptions{})
	if err != nil {
		return "", wrapMinioErr(err)
	}
	return part.ETag, nil
}

// ListCompletedChunks .
func (s *MinIOStorage) ListCompletedChunks(ctx context.Context, bucketName, objectName, sessionToken string) ([]ChunkPart, error) {
	var parts []ChunkPart
	marker := 0
	for {
		result, err := s.core.ListObjectParts(ctx, bucketName, objectName, sessionToken, marker, utils.BackendListPageSize)
		if err != nil {
			return nil, wrapMinioErr(err)
		}
		for _, p := range result.ObjectParts {
			parts = append(parts, ChunkPart{
				Index:   p.PartNumber,
				Receipt: p.ETag,
				Size:    p.Size,
			})
		}
		if !result.IsTruncated {
			break
		}
		marker = result.NextPartNumberMarker
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	return parts, nil
}

// Finalize .
func (s *MinIOStorage) Finalize(ctx context.Context, bucketName, objectName, sessionToken string, parts []ChunkPart) error {
	complete := make([]minio.CompletePart, 0, len(parts))
	for _, p := range parts {
		complete = append(complete, minio.CompletePart{
			PartNumber: p.Index,
			ETag:       p.Receipt,
		})
	}
	_, err := s.core.CompleteMultipartUpload(ctx, bucketName, objectName, sessionToken,
		complete, minio.PutObjectOptions{})
	return wrapMinioErr(err)
}

// AbortSession .
func (s *MinIOStorage) AbortSession(ctx context.Context, bucketName, objectName, sessionToken string) error {
	err := s.core.AbortMultipartUpload(ctx, bucketName, objectName, sessionToken)
	if err != nil && minio.ToErrorResponse(err).Code == "NoSuchUpload" {
		return nil
	}
	return err
}

// PutObject .
func (s *MinIOStorage) PutObject(ctx context.Context, bucketName, objectName string,
	reader io.Reader, size int64, contentType string) error {
	_, err := s.core.Client.PutObject(ctx, bucketName, objectName, reader, size,
		minio.PutObjectOptions{ContentType: contentType, NumThreads: utils.S3StoragePutThreadNum})
	return err
}

// PublicURL .
func (s *MinIOStorage) PublicURL(bucketName, objectName string) string {
	conf := bootstrap.NewConfig("")
	scheme := "http"
	if conf.Minio.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, conf.Minio.EndPoint, bucketName, objectName)
}

func wrapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchUpload" {
		return ErrSessionExpired
	}
	return err
}
