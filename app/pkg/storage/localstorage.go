package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
)

// LocalStorage filesystem backend, for dev and tests. A session is a
// directory of numbered chunk files merged into the final object at
// finalize time; the receipt is the chunk's md5, like an ETag.
type LocalStorage struct {
	RootPath string
}

// NewLocalStorage .
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		RootPath: utils.LocalStore,
	}
}

func (s *LocalStorage) sessionDir(bucketName, sessionToken string) string {
	return path.Join(s.RootPath, bucketName, ".sessions", sessionToken)
}

// MakeBucket .
func (s *LocalStorage) MakeBucket(bucketName string) error {
	dirName := path.Join(s.RootPath, bucketName)
	if _, err := os.Stat(dirName); os.IsNotExist(err) {
		if err := os.MkdirAll(dirName, 0755); err != nil {
			return err
		}
	}
	return nil
}

// BeginSession .
func (s *LocalStorage) BeginSession(ctx context.Context, bucketName, objectName, contentType string) (string, error) {
	sessionToken := uuid.NewString()
	if err := os.MkdirAll(s.sessionDir(bucketName, sessionToken), 0755); err != nil {
		return "", err
	}
	return sessionToken, nil
}

// PutChunk .
func (s *LocalStorage) PutChunk(ctx context.Context, bucketName, objectName, sessionToken string,
	index int, reader io.Reader, size int64) (string, error) {
	dir := s.sessionDir(bucketName, sessionToken)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", ErrSessionExpired
	}
	file, err := os.Create(path.Join(dir, fmt.Sprintf("%d.part", index)))
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := md5.New()
	if _, err := io.Copy(io.MultiWriter(file, hash), reader); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// ListCompletedChunks .
func (s *LocalStorage) ListCompletedChunks(ctx context.Context, bucketName, objectName, sessionToken string) ([]ChunkPart, error) {
	dir := s.sessionDir(bucketName, sessionToken)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	var parts []ChunkPart
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".part") {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSuffix(name, ".part"))
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sum := md5.Sum(data)
		parts = append(parts, ChunkPart{
			Index:   index,
			Receipt: hex.EncodeToString(sum[:]),
			Size:    int64(len(data)),
		})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	return parts, nil
}

// Finalize .
func (s *LocalStorage) Finalize(ctx context.Context, bucketName, objectName, sessionToken string, parts []ChunkPart) error {
	dir := s.sessionDir(bucketName, sessionToken)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return ErrSessionExpired
	}
	objectPath := path.Join(s.RootPath, bucketName, objectName)
	if err := os.MkdirAll(path.Dir(objectPath), 0755); err != nil {
		return err
	}
	out, err := os.Create(objectPath)
	if err != nil {
		return err
	}
	defer out.Close()
	for _, p := range parts {
		in, err := os.Open(path.Join(dir, fmt.Sprintf("%d.part", p.Index)))
		if err != nil {
			return err
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			return err
		}
	}
	return os.RemoveAll(dir)
}

// AbortSession .
func (s *LocalStorage) AbortSession(ctx context.Context, bucketName, objectName, sessionToken string) error {
	return os.RemoveAll(s.sessionDir(bucketName, sessionToken))
}

// PutObject .
func (s *LocalStorage) PutObject(ctx context.Context, bucketName, objectName string,
	reader io.Reader, size int64, contentType string) error {
	objectPath := path.Join(s.RootPath, bucketName, objectName)
	if err := os.MkdirAll(path.Dir(objectPath), 0755); err != nil {
		return err
	}
	file, err := os.Create(objectPath)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, reader)
	return err
}

// PublicURL .
func (s *LocalStorage) PublicURL(bucketName, objectName string) string {
	return path.Join(s.RootPath, bucketName, objectName)
}
