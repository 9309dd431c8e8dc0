package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

// S3Storage aws s3 backend
type S3Storage struct {
	client *s3.Client
}

// NewS3Storage .
func NewS3Storage() *S3Storage {
	client := new(plugins.ProxyS3).NewS3()
	return &S3Storage{
		client: client,
	}
}

// MakeBucket .
func (s *S3Storage) MakeBucket(bucketName string) error {
	ctx := context.Background()
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucketName)})
	if err == nil {
		return nil
	}
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucketName)})
	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return nil
	}
	return err
}

// BeginSession .
func (s *S3Storage) BeginSession(ctx context.Context, bucketName, objectName, contentType string) (string, error) {
	out, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(objectName),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.UploadId), nil
}

// PutChunk .
func (s *S3Storage) PutChunk(ctx context.Context, bucketName, objectName, sessionToken string,
	index int, reader io.Reader, size int64) (string, error) {
	out, err := s.client.UploadPart(ctx, &s3.UploadPartInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectName),
		UploadId:      aws.String(sessionToken),
		PartNumber:    aws.Int32(int32(index)),
		Body:          reader,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", wrapS3Err(err)
	}
	return strings.Trim(aws.ToString(out.ETag), `"`), nil
}

// ListCompletedChunks .
func (s *S3Storage) ListCompletedChunks(ctx context.Context, bucketName, objectName, sessionToken string) ([]ChunkPart, error) {
	var parts []ChunkPart
	var marker *string
	for {
		out, err := s.client.ListParts(ctx, &s3.ListPartsInput{
			Bucket:           aws.String(bucketName),
			Key:              aws.String(objectName),
			UploadId:         aws.String(sessionToken),
			PartNumberMarker: marker,
		})
		if err != nil {
			return nil, wrapS3Err(err)
		}
		for _, p := range out.Parts {
			parts = append(parts, ChunkPart{
				Index:   int(aws.ToInt32(p.PartNumber)),
				Receipt: strings.Trim(aws.ToString(p.ETag), `"`),
				Size:    aws.ToInt64(p.Size),
			})
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		marker = out.NextPartNumberMarker
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	return parts, nil
}

// Finalize .
func (s *S3Storage) Finalize(ctx context.Context, bucketName, objectName, sessionToken string, parts []ChunkPart) error {
	completed := make([]types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, types.CompletedPart{
			PartNumber: aws.Int32(int32(p.Index)),
			ETag:       aws.String(p.Receipt),
		})
	}
	_, err := s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucketName),
		Key:             aws.String(objectName),
		UploadId:        aws.String(sessionToken),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	return wrapS3Err(err)
}

// AbortSession .
func (s *S3Storage) AbortSession(ctx context.Context, bucketName, objectName, sessionToken string) error {
	_, err := s.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucketName),
		Key:      aws.String(objectName),
		UploadId: aws.String(sessionToken),
	})
	if wrapS3Err(err) == ErrSessionExpired {
		return nil
	}
	return err
}

// PutObject .
func (s *S3Storage) PutObject(ctx context.Context, bucketName, objectName string,
	reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectName),
		Body:          reader,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	return err
}

// PublicURL .
func (s *S3Storage) PublicURL(bucketName, objectName string) string {
	conf := bootstrap.NewConfig("")
	if conf.S3.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(conf.S3.Endpoint, "/"), bucketName, objectName)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, conf.S3.Region, objectName)
}

func wrapS3Err(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchUpload" {
		return ErrSessionExpired
	}
	return err
}
