package base

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

/*
Object key construction. Keys are date-prefixed so bucket listings stay
browsable, and multipart keys embed the fingerprint so the same content
always lands on the same key.
*/

// GetExtension lower-cased extension without the dot
func GetExtension(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	return strings.ToLower(ext)
}

// sanitizeName keeps only the base name, client paths never reach the key
func sanitizeName(fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	return strings.TrimSuffix(name, path.Ext(name))
}

// BuildStorageKey key of a fingerprinted multipart object
func BuildStorageKey(fileName, fingerprint string) string {
	datePrefix := time.Now().Format("2006/01/02")
	ext := GetExtension(fileName)
	if ext == "" {
		return fmt.Sprintf("%s/%s_%s", datePrefix, sanitizeName(fileName), fingerprint)
	}
	return fmt.Sprintf("%s/%s_%s.%s", datePrefix, sanitizeName(fileName), fingerprint, ext)
}

// BuildSingleKey key of a one-shot upload, random so repeats never collide
func BuildSingleKey(fileName string) string {
	datePrefix := time.Now().Format("2006-01-02")
	ext := GetExtension(fileName)
	if ext == "" {
		return fmt.Sprintf("%s/%s", datePrefix, uuid.NewString())
	}
	return fmt.Sprintf("%s/%s.%s", datePrefix, uuid.NewString(), ext)
}

// ResolveContentType mime type from the file extension
func ResolveContentType(fileName string) string {
	ext := path.Ext(fileName)
	if ext != "" {
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
	}
	return "application/octet-stream"
}
