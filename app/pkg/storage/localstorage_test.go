package storage

import (
	"bytes"
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	store := &LocalStorage{RootPath: t.TempDir()}
	require.NoError(t, store.MakeBucket("upload"))
	return store
}

func TestLocalStorageChunkRoundTrip(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	token, err := store.BeginSession(ctx, "upload", "2024/01/02/report_abc.pdf", "application/pdf")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	chunks := [][]byte{[]byte("hello "), []byte("local "), []byte("world")}
	for i, body := range chunks {
		receipt, err := store.PutChunk(ctx, "upload", "2024/01/02/report_abc.pdf", token,
			i+1, bytes.NewReader(body), int64(len(body)))
		require.NoError(t, err)
		assert.NotEmpty(t, receipt)
	}

	parts, err := store.ListCompletedChunks(ctx, "upload", "2024/01/02/report_abc.pdf", token)
	require.NoError(t, err)
	require.Len(t, parts, 3)
	for i, p := range parts {
		assert.Equal(t, i+1, p.Index)
		assert.Equal(t, int64(len(chunks[i])), p.Size)
	}

	require.NoError(t, store.Finalize(ctx, "upload", "2024/01/02/report_abc.pdf", token, parts))

	data, err := os.ReadFile(path.Join(store.RootPath, "upload", "2024/01/02/report_abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello local world", string(data))

	// session dir is gone after a successful merge
	_, err = store.ListCompletedChunks(ctx, "upload", "2024/01/02/report_abc.pdf", token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLocalStoragePutChunkUnknownSession(t *testing.T) {
	store := newTestLocalStorage(t)

	_, err := store.PutChunk(context.Background(), "upload", "k", "no-such-token",
		1, bytes.NewReader([]byte("x")), 1)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLocalStorageAbortIsIdempotent(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	token, err := store.BeginSession(ctx, "upload", "k", "application/octet-stream")
	require.NoError(t, err)

	require.NoError(t, store.AbortSession(ctx, "upload", "k", token))
	require.NoError(t, store.AbortSession(ctx, "upload", "k", token))

	_, err = store.ListCompletedChunks(ctx, "upload", "k", token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLocalStoragePutObject(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	body := []byte("single shot")
	require.NoError(t, store.PutObject(ctx, "upload", "2024-01-02/uuid.txt",
		bytes.NewReader(body), int64(len(body)), "text/plain"))

	url := store.PublicURL("upload", "2024-01-02/uuid.txt")
	data, err := os.ReadFile(url)
	require.NoError(t, err)
	assert.Equal(t, body, data)
}
