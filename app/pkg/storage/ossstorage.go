package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

// OssStorage aliyun oss backend. The sdk keys multipart calls off an
// InitiateMultipartUploadResult, rebuilt here from the stored token.
type OssStorage struct {
	client *oss.Client
}

// NewOssStorage .
func NewOssStorage() *OssStorage {
	client := new(plugins.ProxyOss).NewOss()
	return &OssStorage{
		client: client,
	}
}

func (s *OssStorage) imur(bucketName, objectName, sessionToken string) oss.InitiateMultipartUploadResult {
	return oss.InitiateMultipartUploadResult{
		Bucket:   bucketName,
		Key:      objectName,
		UploadID: sessionToken,
	}
}

// MakeBucket .
func (s *OssStorage) MakeBucket(bucketName string) error {
	isExist, err := s.client.IsBucketExist(bucketName)
	if err != nil {
		return err
	}
	if isExist {
		return nil
	}
	return s.client.CreateBucket(bucketName)
}

// BeginSession .
func (s *OssStorage) BeginSession(ctx context.Context, bucketName, objectName, contentType string) (string, error) {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return "", err
	}
	result, err := bucket.InitiateMultipartUpload(objectName, oss.ContentType(contentType))
	if err != nil {
		return "", err
	}
	return result.UploadID, nil
}

// PutChunk .
func (s *OssStorage) PutChunk(ctx context.Context, bucketName, objectName, sessionToken string,
	index int, reader io.Reader, size int64) (string, error) {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return "", err
	}
	part, err := bucket.UploadPart(s.imur(bucketName, objectName, sessionToken), reader, size, index)
	if err != nil {
		return "", wrapOssErr(err)
	}
	return strings.Trim(part.ETag, `"`), nil
}

// ListCompletedChunks .
func (s *OssStorage) ListCompletedChunks(ctx context.Context, bucketName, objectName, sessionToken string) ([]ChunkPart, error) {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	var parts []ChunkPart
	marker := 0
	for {
		result, err := bucket.ListUploadedParts(s.imur(bucketName, objectName, sessionToken),
			oss.PartNumberMarker(marker))
		if err != nil {
			return nil, wrapOssErr(err)
		}
		for _, p := range result.UploadedParts {
			parts = append(parts, ChunkPart{
				Index:   p.PartNumber,
				Receipt: strings.Trim(p.ETag, `"`),
				Size:    int64(p.Size),
			})
		}
		if !result.IsTruncated {
			break
		}
		fmt.Sscanf(result.NextPartNumberMarker, "%d", &marker)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	return parts, nil
}

// Finalize .
func (s *OssStorage) Finalize(ctx context.Context, bucketName, objectName, sessionToken string, parts []ChunkPart) error {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return err
	}
	uploaded := make([]oss.UploadPart, 0, len(parts))
	for _, p := range parts {
		uploaded = append(uploaded, oss.UploadPart{
			PartNumber: p.Index,
			ETag:       p.Receipt,
		})
	}
	_, err = bucket.CompleteMultipartUpload(s.imur(bucketName, objectName, sessionToken), uploaded)
	return wrapOssErr(err)
}

// AbortSession .
func (s *OssStorage) AbortSession(ctx context.Context, bucketName, objectName, sessionToken string) error {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return err
	}
	err = bucket.AbortMultipartUpload(s.imur(bucketName, objectName, sessionToken))
	if wrapOssErr(err) == ErrSessionExpired {
		return nil
	}
	return err
}

// PutObject .
func (s *OssStorage) PutObject(ctx context.Context, bucketName, objectName string,
	reader io.Reader, size int64, contentType string) error {
	bucket, err := s.client.Bucket(bucketName)
	if err != nil {
		return err
	}
	return bucket.PutObject(objectName, reader, oss.ContentType(contentType))
}

// PublicURL .
func (s *OssStorage) PublicURL(bucketName, objectName string) string {
	endpoint := bootstrap.NewConfig("").Oss.EndPoint
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucketName, endpoint, objectName)
}

func wrapOssErr(err error) error {
	if err == nil {
		return nil
	}
	var svcErr oss.ServiceError
	if errors.As(err, &svcErr) && svcErr.Code == "NoSuchUpload" {
		return ErrSessionExpired
	}
	return err
}
