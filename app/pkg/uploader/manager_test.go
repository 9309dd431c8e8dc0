package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/openuploader/uploadproxy/app/models"
	"github.com/openuploader/uploadproxy/app/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeReceipts struct {
	mu   sync.Mutex
	rows map[int64]map[int]models.ChunkReceipt
}

func newFakeReceipts() *fakeReceipts {
	return &fakeReceipts{rows: map[int64]map[int]models.ChunkReceipt{}}
}

func (f *fakeReceipts) Record(_ *gorm.DB, m *models.ChunkReceipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[m.SessionID] == nil {
		f.rows[m.SessionID] = map[int]models.ChunkReceipt{}
	}
	f.rows[m.SessionID][m.ChunkIndex] = *m
	return nil
}

func (f *fakeReceipts) ListBySession(_ *gorm.DB, sessionID int64) ([]models.ChunkReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ret []models.ChunkReceipt
	for _, r := range f.rows[sessionID] {
		ret = append(ret, r)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ChunkIndex < ret[j].ChunkIndex })
	return ret, nil
}

func (f *fakeReceipts) ReplaceBySession(_ *gorm.DB, sessionID int64, receipts []models.ChunkReceipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[sessionID] = map[int]models.ChunkReceipt{}
	for _, r := range receipts {
		r.SessionID = sessionID
		f.rows[sessionID][r.ChunkIndex] = r
	}
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	byFp     map[string]*models.UploadSession
	receipts *fakeReceipts
	// fingerprints whose next lookup misses, to replay insert races
	missOnce map[string]bool
}

func newFakeSessions(receipts *fakeReceipts) *fakeSessions {
	return &fakeSessions{
		byFp:     map[string]*models.UploadSession{},
		receipts: receipts,
		missOnce: map[string]bool{},
	}
}

func (f *fakeSessions) GetByFingerprint(_ *gorm.DB, fingerprint string) (*models.UploadSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missOnce[fingerprint] {
		delete(f.missOnce, fingerprint)
		return nil, models.ErrSessionNotFound
	}
	s, ok := f.byFp[fingerprint]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) GetByBackendToken(_ *gorm.DB, token string) (*models.UploadSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byFp {
		if s.BackendSessionToken == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, models.ErrSessionNotFound
}

func (f *fakeSessions) Create(_ *gorm.DB, m *models.UploadSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// unique index covers every status, FAILED rows block too
	if _, ok := f.byFp[m.ContentFingerprint]; ok {
		return models.ErrDuplicateFingerprint
	}
	cp := *m
	f.byFp[m.ContentFingerprint] = &cp
	return nil
}

func (f *fakeSessions) UpdateStatus(_ *gorm.DB, sessionID int64, status models.SessionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byFp {
		if s.ID == sessionID {
			s.Status = status
			return nil
		}
	}
	return models.ErrSessionNotFound
}

func (f *fakeSessions) FailIfUploading(_ *gorm.DB, sessionID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byFp {
		if s.ID == sessionID && s.Status == models.SessionUploading {
			s.Status = models.SessionFailed
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessions) Delete(_ *gorm.DB, sessionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for fp, s := range f.byFp {
		if s.ID == sessionID {
			delete(f.byFp, fp)
			f.receipts.mu.Lock()
			delete(f.receipts.rows, sessionID)
			f.receipts.mu.Unlock()
			return nil
		}
	}
	return models.ErrSessionNotFound
}

type fakeTasks struct {
	mu    sync.Mutex
	tasks []models.TaskInfo
}

func (f *fakeTasks) Create(_ *gorm.DB, m *models.TaskInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, *m)
	return nil
}

type fakeGateway struct {
	mu        sync.Mutex
	begins    int
	parts     map[string]map[int]storage.ChunkPart
	finalized map[string]bool
	aborted   []string

	listErr     error
	putErr      error
	finalizeErr error

	// one-shot hook run by the next ListCompletedChunks before it
	// touches state, for interleaving callers
	listGate func()
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		parts:     map[string]map[int]storage.ChunkPart{},
		finalized: map[string]bool{},
	}
}

func (f *fakeGateway) MakeBucket(string) error { return nil }

func (f *fakeGateway) BeginSession(_ context.Context, _, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.begins++
	token := fmt.Sprintf("upload-%d", f.begins)
	f.parts[token] = map[int]storage.ChunkPart{}
	return token, nil
}

func (f *fakeGateway) PutChunk(_ context.Context, _, _, sessionToken string, index int,
	reader io.Reader, size int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	session, ok := f.parts[sessionToken]
	if !ok {
		return "", storage.ErrSessionExpired
	}
	data, _ := io.ReadAll(reader)
	receipt := fmt.Sprintf("etag-%d-%d", index, len(data))
	session[index] = storage.ChunkPart{Index: index, Receipt: receipt, Size: int64(len(data))}
	return receipt, nil
}

func (f *fakeGateway) ListCompletedChunks(_ context.Context, _, _, sessionToken string) ([]storage.ChunkPart, error) {
	f.mu.Lock()
	gate := f.listGate
	f.listGate = nil
	f.mu.Unlock()
	if gate != nil {
		gate()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	session, ok := f.parts[sessionToken]
	if !ok {
		return nil, storage.ErrSessionExpired
	}
	var ret []storage.ChunkPart
	for _, p := range session {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret, nil
}

func (f *fakeGateway) Finalize(_ context.Context, _, objectName, sessionToken string, _ []storage.ChunkPart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finalizeErr != nil {
		return f.finalizeErr
	}
	if _, ok := f.parts[sessionToken]; !ok {
		return storage.ErrSessionExpired
	}
	delete(f.parts, sessionToken)
	f.finalized[objectName] = true
	return nil
}

func (f *fakeGateway) AbortSession(_ context.Context, _, _, sessionToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.parts, sessionToken)
	f.aborted = append(f.aborted, sessionToken)
	return nil
}

func (f *fakeGateway) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _ = io.ReadAll(reader)
	f.finalized[objectName] = true
	return nil
}

func (f *fakeGateway) PublicURL(bucketName, objectName string) string {
	return "http://store/" + bucketName + "/" + objectName
}

type seqID struct{ next int64 }

func (s *seqID) NextId() (int64, error) {
	s.next++
	return s.next, nil
}

type env struct {
	manager  *Manager
	sessions *fakeSessions
	receipts *fakeReceipts
	tasks    *fakeTasks
	gateway  *fakeGateway
}

func newEnv() *env {
	receipts := newFakeReceipts()
	sessions := newFakeSessions(receipts)
	tasks := &fakeTasks{}
	gateway := newFakeGateway()
	manager := NewManager(nil, sessions, receipts, tasks, gateway, &seqID{}, nil, "upload", zap.NewNop())
	return &env{manager: manager, sessions: sessions, receipts: receipts, tasks: tasks, gateway: gateway}
}

func initReq(fingerprint string, chunks int) *models.InitUploadReq {
	return &models.InitUploadReq{
		Fingerprint: fingerprint,
		FileName:    "video.mp4",
		TotalSize:   int64(chunks) * 1024,
		ChunkSize:   1024,
		ChunkCount:  chunks,
	}
}

func TestResolveUnknownFingerprint(t *testing.T) {
	e := newEnv()
	res, err := e.manager.Resolve(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, CodeNotUploaded, res.Code)

	// blank fingerprint is a contract violation, fail-safe answer
	res, err = e.manager.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, CodeNotUploaded, res.Code)
}

func TestBeginIdempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	first, err := e.manager.Begin(ctx, initReq("fp-1", 4))
	require.NoError(t, err)
	assert.Equal(t, CodeUploading, first.Code)
	assert.NotEmpty(t, first.SessionToken)

	second, err := e.manager.Begin(ctx, initReq("fp-1", 4))
	require.NoError(t, err)
	assert.Equal(t, first.SessionToken, second.SessionToken)
	assert.Equal(t, 1, e.gateway.begins)
}

func TestChunkRedeliveryKeepsSingleRow(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-2", 2))
	require.NoError(t, err)

	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("aaaa"), 4)
	require.NoError(t, err)
	resp, err := e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("aaaaaa"), 6)
	require.NoError(t, err)

	session, err := e.sessions.GetByFingerprint(nil, "fp-2")
	require.NoError(t, err)
	rows, err := e.receipts.ListBySession(nil, session.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, resp.ReceiptToken, rows[0].ReceiptToken)
	assert.Equal(t, begin.SessionToken, session.BackendSessionToken)
}

func TestAcceptChunkOutOfRange(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-3", 2))
	require.NoError(t, err)

	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 0, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, models.ErrChunkIndexOutOfRange)
	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 3, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, models.ErrChunkIndexOutOfRange)
}

func TestAcceptChunkUnknownToken(t *testing.T) {
	e := newEnv()
	_, err := e.manager.AcceptChunk(context.Background(), "no-such-token", 1, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestFullRoundTrip(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-4", 4))
	require.NoError(t, err)
	for i := 1; i <= 4; i++ {
		_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, i, strings.NewReader("chunk"), 5)
		require.NoError(t, err)
	}

	res, err := e.manager.Finalize(ctx, "fp-4")
	require.NoError(t, err)
	assert.Equal(t, CodeUploadSuccess, res.Code)
	assert.NotEmpty(t, res.Url)
	assert.NotZero(t, res.SessionId)

	// finalize twice is safe
	again, err := e.manager.Finalize(ctx, "fp-4")
	require.NoError(t, err)
	assert.Equal(t, CodeUploadSuccess, again.Code)
	assert.Equal(t, res.Url, again.Url)
	assert.Equal(t, res.SessionId, again.SessionId)

	resolved, err := e.manager.Resolve(ctx, "fp-4")
	require.NoError(t, err)
	assert.Equal(t, CodeUploadSuccess, resolved.Code)
	assert.Equal(t, res.Url, resolved.Url)
	assert.Equal(t, res.SessionId, resolved.SessionId)

	// begin on a completed fingerprint answers with the object
	reopened, err := e.manager.Begin(ctx, initReq("fp-4", 4))
	require.NoError(t, err)
	assert.Equal(t, CodeUploadSuccess, reopened.Code)
	assert.Equal(t, res.Url, reopened.Url)
	assert.Equal(t, res.SessionId, reopened.SessionId)
	assert.Empty(t, reopened.SessionToken)
}

func TestFinalizeReportsMissingChunks(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-5", 4))
	require.NoError(t, err)
	for _, i := range []int{1, 2, 4} {
		_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, i, strings.NewReader("chunk"), 5)
		require.NoError(t, err)
	}

	_, err = e.manager.Finalize(ctx, "fp-5")
	var incomplete *models.IncompleteUploadError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []int{3}, incomplete.Missing)

	// session still accepts the missing chunk
	session, err := e.sessions.GetByFingerprint(nil, "fp-5")
	require.NoError(t, err)
	assert.Equal(t, models.SessionUploading, session.Status)

	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 3, strings.NewReader("chunk"), 5)
	require.NoError(t, err)
	res, err := e.manager.Finalize(ctx, "fp-5")
	require.NoError(t, err)
	assert.Equal(t, CodeUploadSuccess, res.Code)
}

func TestResolveReconcilesLedgerFromBackend(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-6", 3))
	require.NoError(t, err)
	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("chunk"), 5)
	require.NoError(t, err)

	// a chunk landed on the backend without a local receipt
	e.gateway.mu.Lock()
	e.gateway.parts[begin.SessionToken][2] = storage.ChunkPart{Index: 2, Receipt: "etag-2-5", Size: 5}
	e.gateway.mu.Unlock()

	res, err := e.manager.Resolve(ctx, "fp-6")
	require.NoError(t, err)
	assert.Equal(t, CodeUploading, res.Code)
	assert.Equal(t, []int{1, 2}, res.Uploaded)

	session, err := e.sessions.GetByFingerprint(nil, "fp-6")
	require.NoError(t, err)
	rows, err := e.receipts.ListBySession(nil, session.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestResolveExpiredSessionDegrades(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-7", 2))
	require.NoError(t, err)

	// backend dropped the session behind our back
	e.gateway.mu.Lock()
	delete(e.gateway.parts, begin.SessionToken)
	e.gateway.mu.Unlock()

	res, err := e.manager.Resolve(ctx, "fp-7")
	require.NoError(t, err)
	assert.Equal(t, CodeNotUploaded, res.Code)

	session, err := e.sessions.GetByFingerprint(nil, "fp-7")
	require.NoError(t, err)
	assert.Equal(t, models.SessionFailed, session.Status)
}

func TestResolveBackendDownDegrades(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-8", 2))
	require.NoError(t, err)
	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("chunk"), 5)
	require.NoError(t, err)

	e.gateway.listErr = errors.New("connection refused")
	res, err := e.manager.Resolve(ctx, "fp-8")
	require.NoError(t, err)
	assert.Equal(t, CodeNotUploaded, res.Code)

	// transient outage must not fail the session
	session, err := e.sessions.GetByFingerprint(nil, "fp-8")
	require.NoError(t, err)
	assert.Equal(t, models.SessionUploading, session.Status)
}

func TestFinalizeBackendDownStaysUploading(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-9", 1))
	require.NoError(t, err)
	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("chunk"), 5)
	require.NoError(t, err)

	e.gateway.listErr = errors.New("connection refused")
	_, err = e.manager.Finalize(ctx, "fp-9")
	assert.ErrorIs(t, err, models.ErrBackendUnavailable)

	session, err := e.sessions.GetByFingerprint(nil, "fp-9")
	require.NoError(t, err)
	assert.Equal(t, models.SessionUploading, session.Status)
}

func TestFinalizeExpiredSessionFails(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-10", 1))
	require.NoError(t, err)

	e.gateway.mu.Lock()
	delete(e.gateway.parts, begin.SessionToken)
	e.gateway.mu.Unlock()

	res, err := e.manager.Finalize(ctx, "fp-10")
	require.NoError(t, err)
	assert.Equal(t, CodeUploadFailed, res.Code)

	session, err := e.sessions.GetByFingerprint(nil, "fp-10")
	require.NoError(t, err)
	assert.Equal(t, models.SessionFailed, session.Status)
}

func TestFinalizeRaceLoserAdoptsComplete(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-14", 1))
	require.NoError(t, err)
	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("chunk"), 5)
	require.NoError(t, err)

	// park the first caller inside the backend listing so a rival
	// finalize consumes the backend session underneath it
	entered := make(chan struct{})
	release := make(chan struct{})
	e.gateway.mu.Lock()
	e.gateway.listGate = func() {
		close(entered)
		<-release
	}
	e.gateway.mu.Unlock()

	type outcome struct {
		res *Result
		err error
	}
	loser := make(chan outcome, 1)
	go func() {
		res, err := e.manager.Finalize(ctx, "fp-14")
		loser <- outcome{res: res, err: err}
	}()

	<-entered
	winner, err := e.manager.Finalize(ctx, "fp-14")
	require.NoError(t, err)
	require.Equal(t, CodeUploadSuccess, winner.Code)
	close(release)

	got := <-loser
	require.NoError(t, got.err)
	assert.Equal(t, CodeUploadSuccess, got.res.Code)
	assert.Equal(t, winner.Url, got.res.Url)
	assert.Equal(t, winner.SessionId, got.res.SessionId)

	// the losing finalize must not demote the completed session
	session, err := e.sessions.GetByFingerprint(nil, "fp-14")
	require.NoError(t, err)
	assert.Equal(t, models.SessionComplete, session.Status)

	resolved, err := e.manager.Resolve(ctx, "fp-14")
	require.NoError(t, err)
	assert.Equal(t, CodeUploadSuccess, resolved.Code)
}

func TestResolveDuringFinalizeKeepsComplete(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-15", 1))
	require.NoError(t, err)
	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("chunk"), 5)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	e.gateway.mu.Lock()
	e.gateway.listGate = func() {
		close(entered)
		<-release
	}
	e.gateway.mu.Unlock()

	type outcome struct {
		res *Result
		err error
	}
	resolver := make(chan outcome, 1)
	go func() {
		res, err := e.manager.Resolve(ctx, "fp-15")
		resolver <- outcome{res: res, err: err}
	}()

	<-entered
	done, err := e.manager.Finalize(ctx, "fp-15")
	require.NoError(t, err)
	require.Equal(t, CodeUploadSuccess, done.Code)
	close(release)

	got := <-resolver
	require.NoError(t, got.err)
	assert.Equal(t, CodeUploadSuccess, got.res.Code)
	assert.Equal(t, done.Url, got.res.Url)

	session, err := e.sessions.GetByFingerprint(nil, "fp-15")
	require.NoError(t, err)
	assert.Equal(t, models.SessionComplete, session.Status)
}

func TestBeginReplacesFailedPredecessor(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	first, err := e.manager.Begin(ctx, initReq("fp-11", 1))
	require.NoError(t, err)
	session, err := e.sessions.GetByFingerprint(nil, "fp-11")
	require.NoError(t, err)
	require.NoError(t, e.sessions.UpdateStatus(nil, session.ID, models.SessionFailed))

	second, err := e.manager.Begin(ctx, initReq("fp-11", 1))
	require.NoError(t, err)
	assert.Equal(t, CodeUploading, second.Code)
	assert.NotEqual(t, first.SessionToken, second.SessionToken)

	// predecessor's backend session goes to the abort queue
	require.Len(t, e.tasks.tasks, 1)
	assert.Contains(t, e.tasks.tasks[0].ExtraData, first.SessionToken)
}

func TestBeginRaceLoserAdoptsWinner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	winner, err := e.manager.Begin(ctx, initReq("fp-12", 2))
	require.NoError(t, err)

	// replay the insert race: the loser's lookup misses, it opens its
	// own backend session, then the unique index rejects the row
	e.sessions.mu.Lock()
	e.sessions.missOnce["fp-12"] = true
	e.sessions.mu.Unlock()

	res, err := e.manager.Begin(ctx, initReq("fp-12", 2))
	require.NoError(t, err)
	assert.Equal(t, winner.SessionToken, res.SessionToken)
	assert.Equal(t, 2, e.gateway.begins)

	// the losing backend session goes to the abort queue
	require.Len(t, e.tasks.tasks, 1)
	assert.NotContains(t, e.tasks.tasks[0].ExtraData, winner.SessionToken)
}

func TestDeleteRemovesSessionAndReceipts(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	begin, err := e.manager.Begin(ctx, initReq("fp-13", 2))
	require.NoError(t, err)
	_, err = e.manager.AcceptChunk(ctx, begin.SessionToken, 1, strings.NewReader("chunk"), 5)
	require.NoError(t, err)

	session, err := e.sessions.GetByFingerprint(nil, "fp-13")
	require.NoError(t, err)

	require.NoError(t, e.manager.Delete(ctx, "fp-13"))

	_, err = e.sessions.GetByFingerprint(nil, "fp-13")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	rows, err := e.receipts.ListBySession(nil, session.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.Len(t, e.tasks.tasks, 1)
	assert.Contains(t, e.tasks.tasks[0].ExtraData, begin.SessionToken)

	res, err := e.manager.Resolve(ctx, "fp-13")
	require.NoError(t, err)
	assert.Equal(t, CodeNotUploaded, res.Code)
}

func TestPutDirect(t *testing.T) {
	e := newEnv()
	url, err := e.manager.PutDirect(context.Background(), "note.txt", strings.NewReader("hello"), 5)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://store/upload/"))
}
