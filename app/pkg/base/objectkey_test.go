package base

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetExtension(t *testing.T) {
	assert.Equal(t, "mp4", GetExtension("movie.MP4"))
	assert.Equal(t, "gz", GetExtension("archive.tar.gz"))
	assert.Equal(t, "", GetExtension("Makefile"))
}

func TestBuildStorageKeyIsDeterministic(t *testing.T) {
	first := BuildStorageKey("report.pdf", "abc123")
	second := BuildStorageKey("report.pdf", "abc123")
	assert.Equal(t, first, second)

	datePrefix := time.Now().Format("2006/01/02")
	assert.Equal(t, fmt.Sprintf("%s/report_abc123.pdf", datePrefix), first)
}

func TestBuildStorageKeyStripsClientPath(t *testing.T) {
	key := BuildStorageKey(`C:\Users\alice\photo.jpg`, "deadbeef")
	assert.True(t, strings.HasSuffix(key, "/photo_deadbeef.jpg"), key)
	assert.NotContains(t, key, `\`)
	assert.NotContains(t, key, "Users")
}

func TestBuildStorageKeyWithoutExtension(t *testing.T) {
	key := BuildStorageKey("Makefile", "cafe01")
	assert.True(t, strings.HasSuffix(key, "/Makefile_cafe01"), key)
}

func TestBuildSingleKeyNeverCollides(t *testing.T) {
	first := BuildSingleKey("photo.jpg")
	second := BuildSingleKey("photo.jpg")
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".jpg"), first)
}

func TestResolveContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ResolveContentType("report.pdf"))
	assert.Equal(t, "application/octet-stream", ResolveContentType("blob.unknownext"))
	assert.Equal(t, "application/octet-stream", ResolveContentType("Makefile"))
}
