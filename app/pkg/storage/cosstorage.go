package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/tencentyun/cos-go-sdk-v5"
)

// CosStorage tencent cos backend. The sdk binds a client to one bucket
// url, so clients are built per bucket on demand.
type CosStorage struct {
	Appid     string
	Region    string
	SecretId  string
	SecretKey string
}

// NewCosStorage .
func NewCosStorage() *CosStorage {
	return &CosStorage{
		Appid:     bootstrap.NewConfig("").Cos.Appid,
		Region:    bootstrap.NewConfig("").Cos.Region,
		SecretId:  bootstrap.NewConfig("").Cos.SecretId,
		SecretKey: bootstrap.NewConfig("").Cos.SecretKey,
	}
}

func (s *CosStorage) bucketClient(bucketName string) *cos.Client {
	u, _ := url.Parse(fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", bucketName, s.Appid, s.Region))
	b := &cos.BaseURL{BucketURL: u}
	return cos.NewClient(b, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  s.SecretId,
			SecretKey: s.SecretKey,
		},
	})
}

// MakeBucket .
func (s *CosStorage) MakeBucket(bucketName string) error {
	client := s.bucketClient(bucketName)
	ok, err := client.Bucket.IsExist(context.Background())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()
	resp, err := client.Bucket.Put(ctx, nil)
	if err != nil {
		// 409 means the bucket appeared between the check and the put
		if resp != nil && resp.StatusCode == 409 {
			return nil
		}
		return err
	}
	return nil
}

// BeginSession .
func (s *CosStorage) BeginSession(ctx context.Context, bucketName, objectName, contentType string) (string, error) {
	client := s.bucketClient(bucketName)
	result, _, err := client.Object.InitiateMultipartUpload(ctx, objectName, &cos.InitiateMultipartUploadOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: contentType,
		},
	})
	if err != nil {
		return "", err
	}
	return result.UploadID, nil
}

// PutChunk .
func (s *CosStorage) PutChunk(ctx context.Context, bucketName, objectName, sessionToken string,
	index int, reader io.Reader, size int64) (string, error) {
	client := s.bucketClient(bucketName)
	resp, err := client.Object.UploadPart(ctx, objectName, sessionToken, index, reader,
		&cos.ObjectUploadPartOptions{ContentLength: size})
	if err != nil {
		return "", wrapCosErr(err)
	}
	return strings.Trim(resp.Header.Get("ETag"), `"`), nil
}

// ListCompletedChunks .
func (s *CosStorage) ListCompletedChunks(ctx context.Context, bucketName, objectName, sessionToken string) ([]ChunkPart, error) {
	client := s.bucketClient(bucketName)
	var parts []ChunkPart
	marker := ""
	for {
		result, _, err := client.Object.ListParts(ctx, objectName, sessionToken, &cos.ObjectListPartsOptions{
			PartNumberMarker: marker,
		})
		if err != nil {
			return nil, wrapCosErr(err)
		}
		for _, p := range result.Parts {
			parts = append(parts, ChunkPart{
				Index:   p.PartNumber,
				Receipt: strings.Trim(p.ETag, `"`),
				Size:    p.Size,
			})
		}
		if result.IsTruncated {
			marker = result.NextPartNumberMarker
			continue
		}
		break
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	return parts, nil
}

// Finalize .
func (s *CosStorage) Finalize(ctx context.Context, bucketName, objectName, sessionToken string, parts []ChunkPart) error {
	client := s.bucketClient(bucketName)
	opt := &cos.CompleteMultipartUploadOptions{}
	for _, p := range parts {
		opt.Parts = append(opt.Parts, cos.Object{
			PartNumber: p.Index,
			ETag:       p.Receipt,
		})
	}
	_, _, err := client.Object.CompleteMultipartUpload(ctx, objectName, sessionToken, opt)
	return wrapCosErr(err)
}

// AbortSession .
func (s *CosStorage) AbortSession(ctx context.Context, bucketName, objectName, sessionToken string) error {
	client := s.bucketClient(bucketName)
	_, err := client.Object.AbortMultipartUpload(ctx, objectName, sessionToken)
	if err != nil && cos.IsNotFoundError(err) {
		return nil
	}
	return err
}

// PutObject .
func (s *CosStorage) PutObject(ctx context.Context, bucketName, objectName string,
	reader io.Reader, size int64, contentType string) error {
	client := s.bucketClient(bucketName)
	_, err := client.Object.Put(ctx, objectName, reader, &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	})
	return err
}

// PublicURL .
func (s *CosStorage) PublicURL(bucketName, objectName string) string {
	return fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com/%s", bucketName, s.Appid, s.Region, objectName)
}

func wrapCosErr(err error) error {
	if err == nil {
		return nil
	}
	if cos.IsNotFoundError(err) {
		return ErrSessionExpired
	}
	return err
}
