package uploader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/openuploader/uploadproxy/app/models"
	"github.com/openuploader/uploadproxy/app/pkg/base"
	"github.com/openuploader/uploadproxy/app/pkg/repo"
	"github.com/openuploader/uploadproxy/app/pkg/storage"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
	"github.com/openuploader/uploadproxy/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/*
Upload session manager. One session per content fingerprint; the
backend listing is ground truth for which chunks exist, the local
ledger is a cache of it.
*/

// SessionRepository session rows
type SessionRepository interface {
	GetByFingerprint(db *gorm.DB, fingerprint string) (*models.UploadSession, error)
	GetByBackendToken(db *gorm.DB, token string) (*models.UploadSession, error)
	Create(db *gorm.DB, m *models.UploadSession) error
	UpdateStatus(db *gorm.DB, sessionID int64, status models.SessionStatus) error
	FailIfUploading(db *gorm.DB, sessionID int64) (bool, error)
	Delete(db *gorm.DB, sessionID int64) error
}

// ReceiptRepository chunk receipt rows
type ReceiptRepository interface {
	Record(db *gorm.DB, m *models.ChunkReceipt) error
	ListBySession(db *gorm.DB, sessionID int64) ([]models.ChunkReceipt, error)
	ReplaceBySession(db *gorm.DB, sessionID int64, receipts []models.ChunkReceipt) error
}

// TaskRepository async cleanup task rows
type TaskRepository interface {
	Create(db *gorm.DB, m *models.TaskInfo) error
}

// IDGenerator .
type IDGenerator interface {
	NextId() (int64, error)
}

// Manager coordinates resolve/begin/chunk/finalize for one bucket
type Manager struct {
	db       *gorm.DB
	sessions SessionRepository
	receipts ReceiptRepository
	tasks    TaskRepository
	gateway  storage.ObjectGateway
	idGen    IDGenerator
	cache    *redis.Client
	bucket   string
	logger   *zap.Logger
}

var upManager *Manager

// NewManager wires a manager from explicit dependencies
func NewManager(db *gorm.DB, sessions SessionRepository, receipts ReceiptRepository, tasks TaskRepository,
	gateway storage.ObjectGateway, idGen IDGenerator, cache *redis.Client, bucket string, logger *zap.Logger) *Manager {
	return &Manager{
		db:       db,
		sessions: sessions,
		receipts: receipts,
		tasks:    tasks,
		gateway:  gateway,
		idGen:    idGen,
		cache:    cache,
		bucket:   bucket,
		logger:   logger,
	}
}

// InitUploader builds the singleton from the bootstrapped plugins
func InitUploader(conf *config.Configuration) {
	upManager = NewManager(
		new(plugins.ProxyDB).Use("default").NewDB(),
		repo.NewUploadSessionRepo(),
		repo.NewChunkReceiptRepo(),
		repo.NewTaskRepo(),
		storage.NewStorage().Storage,
		base.NewSnowFlake(),
		new(plugins.ProxyRedis).NewRedis(),
		conf.Upload.Bucket,
		bootstrap.NewLogger().Logger,
	)
}

// NewUploader .
func NewUploader() *Manager {
	return upManager
}

// Resolve answers "what do I need to upload" for a fingerprint without
// moving any bytes.
func (m *Manager) Resolve(ctx context.Context, fingerprint string) (*Result, error) {
	if fingerprint == "" {
		return &Result{Code: CodeNotUploaded}, nil
	}
	if m.cache != nil {
		if cached, err := m.cache.Get(ctx, resolveKey(fingerprint)).Result(); err == nil && cached != "" {
			var hit cachedResolve
			if json.Unmarshal([]byte(cached), &hit) == nil && hit.Url != "" {
				return &Result{Code: CodeUploadSuccess, SessionId: hit.SessionId, Url: hit.Url}, nil
			}
		}
	}

	session, err := m.sessions.GetByFingerprint(m.db, fingerprint)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return &Result{Code: CodeNotUploaded}, nil
		}
		return nil, err
	}

	switch session.Status {
	case models.SessionComplete:
		url := m.gateway.PublicURL(session.Bucket, session.StorageKey)
		m.cacheUrl(ctx, fingerprint, session.ID, url)
		return &Result{Code: CodeUploadSuccess, SessionId: session.ID, Url: url}, nil
	case models.SessionFailed:
		return &Result{Code: CodeNotUploaded}, nil
	}

	parts, err := m.gateway.ListCompletedChunks(ctx, session.Bucket, session.StorageKey, session.BackendSessionToken)
	if err != nil {
		if errors.Is(err, storage.ErrSessionExpired) {
			if done := m.settleExpired(session); done != nil {
				url := m.gateway.PublicURL(done.Bucket, done.StorageKey)
				m.cacheUrl(ctx, fingerprint, done.ID, url)
				return &Result{Code: CodeUploadSuccess, SessionId: done.ID, Url: url}, nil
			}
			return &Result{Code: CodeNotUploaded}, nil
		}
		// backend truth unavailable, promise nothing rather than stale chunks
		m.logger.Warn("resolve reconcile failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		return &Result{Code: CodeNotUploaded}, nil
	}
	if err := m.replaceLedger(session.ID, parts); err != nil {
		return nil, err
	}

	return &Result{
		Code:         CodeUploading,
		SessionToken: session.BackendSessionToken,
		Uploaded:     partIndices(parts),
	}, nil
}

// Begin opens a session for a fingerprint, idempotently. A FAILED
// predecessor is discarded first; a concurrent begin is arbitrated by
// the unique fingerprint index and the loser adopts the winner.
func (m *Manager) Begin(ctx context.Context, req *models.InitUploadReq) (*Result, error) {
	existing, err := m.sessions.GetByFingerprint(m.db, req.Fingerprint)
	if err != nil && !errors.Is(err, models.ErrSessionNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.SessionComplete:
			url := m.gateway.PublicURL(existing.Bucket, existing.StorageKey)
			return &Result{Code: CodeUploadSuccess, SessionId: existing.ID, Url: url}, nil
		case models.SessionUploading:
			return &Result{Code: CodeUploading, SessionToken: existing.BackendSessionToken}, nil
		case models.SessionFailed:
			if err := m.sessions.Delete(m.db, existing.ID); err != nil {
				return nil, err
			}
			m.enqueueAbort(existing.Bucket, existing.StorageKey, existing.BackendSessionToken)
		}
	}

	storageKey := base.BuildStorageKey(req.FileName, req.Fingerprint)
	contentType := base.ResolveContentType(req.FileName)
	token, err := m.gateway.BeginSession(ctx, m.bucket, storageKey, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}

	id, err := m.idGen.NextId()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session := &models.UploadSession{
		ID:                  id,
		ContentFingerprint:  req.Fingerprint,
		BackendSessionToken: token,
		OriginalFileName:    req.FileName,
		StorageKey:          storageKey,
		Bucket:              m.bucket,
		TotalSizeBytes:      req.TotalSize,
		ChunkSizeBytes:      req.ChunkSize,
		TotalChunkCount:     req.ChunkCount,
		Status:              models.SessionUploading,
		CreatedAt:           &now,
		UpdatedAt:           &now,
	}
	if err := m.sessions.Create(m.db, session); err != nil {
		if errors.Is(err, models.ErrDuplicateFingerprint) {
			// lost the race, drop our backend session and adopt the winner
			m.enqueueAbort(m.bucket, storageKey, token)
			winner, werr := m.sessions.GetByFingerprint(m.db, req.Fingerprint)
			if werr != nil {
				return nil, werr
			}
			if winner.Status == models.SessionComplete {
				url := m.gateway.PublicURL(winner.Bucket, winner.StorageKey)
				return &Result{Code: CodeUploadSuccess, SessionId: winner.ID, Url: url}, nil
			}
			return &Result{Code: CodeUploading, SessionToken: winner.BackendSessionToken}, nil
		}
		return nil, err
	}

	return &Result{Code: CodeUploading, SessionToken: token}, nil
}

// AcceptChunk streams one chunk to the backend and records its receipt.
// Chunks arrive in any order; re-delivery overwrites the receipt row.
func (m *Manager) AcceptChunk(ctx context.Context, sessionToken string, index int,
	reader io.Reader, size int64) (*models.ChunkUploadResp, error) {
	session, err := m.sessions.GetByBackendToken(m.db, sessionToken)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionUploading {
		return nil, models.ErrSessionNotActive
	}
	if index < 1 || index > session.TotalChunkCount {
		return nil, models.ErrChunkIndexOutOfRange
	}

	receipt, err := m.gateway.PutChunk(ctx, session.Bucket, session.StorageKey,
		session.BackendSessionToken, index, reader, size)
	if err != nil {
		if errors.Is(err, storage.ErrSessionExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}

	now := time.Now()
	if err := m.receipts.Record(m.db, &models.ChunkReceipt{
		SessionID:    session.ID,
		ChunkIndex:   index,
		ReceiptToken: receipt,
		RecordedAt:   &now,
	}); err != nil {
		return nil, err
	}
	return &models.ChunkUploadResp{ChunkIndex: index, ReceiptToken: receipt}, nil
}

// Finalize reconciles against the backend, checks contiguity and merges.
// A gap keeps the session UPLOADING and reports the missing indices; a
// vanished backend session fails it for good.
func (m *Manager) Finalize(ctx context.Context, fingerprint string) (*Result, error) {
	session, err := m.sessions.GetByFingerprint(m.db, fingerprint)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case models.SessionComplete:
		url := m.gateway.PublicURL(session.Bucket, session.StorageKey)
		return &Result{Code: CodeUploadSuccess, SessionId: session.ID, Url: url}, nil
	case models.SessionFailed:
		return &Result{Code: CodeUploadFailed}, nil
	}

	parts, err := m.gateway.ListCompletedChunks(ctx, session.Bucket, session.StorageKey, session.BackendSessionToken)
	if err != nil {
		if errors.Is(err, storage.ErrSessionExpired) {
			if done := m.settleExpired(session); done != nil {
				url := m.gateway.PublicURL(done.Bucket, done.StorageKey)
				m.cacheUrl(ctx, fingerprint, done.ID, url)
				return &Result{Code: CodeUploadSuccess, SessionId: done.ID, Url: url}, nil
			}
			return &Result{Code: CodeUploadFailed}, nil
		}
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	if err := m.replaceLedger(session.ID, parts); err != nil {
		return nil, err
	}

	missing := utils.MissingIndices(session.TotalChunkCount, partIndices(parts))
	if len(missing) > 0 {
		return nil, &models.IncompleteUploadError{Missing: missing}
	}

	if err := m.gateway.Finalize(ctx, session.Bucket, session.StorageKey, session.BackendSessionToken, parts); err != nil {
		if errors.Is(err, storage.ErrSessionExpired) {
			if done := m.settleExpired(session); done != nil {
				url := m.gateway.PublicURL(done.Bucket, done.StorageKey)
				m.cacheUrl(ctx, fingerprint, done.ID, url)
				return &Result{Code: CodeUploadSuccess, SessionId: done.ID, Url: url}, nil
			}
			return &Result{Code: CodeUploadFailed}, nil
		}
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}

	if err := m.sessions.UpdateStatus(m.db, session.ID, models.SessionComplete); err != nil {
		return nil, err
	}
	url := m.gateway.PublicURL(session.Bucket, session.StorageKey)
	m.cacheUrl(ctx, fingerprint, session.ID, url)
	return &Result{Code: CodeUploadSuccess, SessionId: session.ID, Url: url}, nil
}

// Delete removes a session and its receipts. An open backend session is
// aborted asynchronously so the delete stays fast.
func (m *Manager) Delete(ctx context.Context, fingerprint string) error {
	session, err := m.sessions.GetByFingerprint(m.db, fingerprint)
	if err != nil {
		return err
	}
	if session.Status == models.SessionUploading {
		m.enqueueAbort(session.Bucket, session.StorageKey, session.BackendSessionToken)
	}
	if err := m.sessions.Delete(m.db, session.ID); err != nil {
		return err
	}
	if m.cache != nil {
		m.cache.Del(ctx, resolveKey(fingerprint))
	}
	return nil
}

// PutDirect one-shot upload for files too small to bother chunking
func (m *Manager) PutDirect(ctx context.Context, fileName string, reader io.Reader, size int64) (string, error) {
	key := base.BuildSingleKey(fileName)
	if err := m.gateway.PutObject(ctx, m.bucket, key, reader, size, base.ResolveContentType(fileName)); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return m.gateway.PublicURL(m.bucket, key), nil
}

// replaceLedger the backend listing replaces the local receipt rows
func (m *Manager) replaceLedger(sessionID int64, parts []storage.ChunkPart) error {
	receipts := make([]models.ChunkReceipt, 0, len(parts))
	for _, p := range parts {
		receipts = append(receipts, models.ChunkReceipt{
			SessionID:    sessionID,
			ChunkIndex:   p.Index,
			ReceiptToken: p.Receipt,
		})
	}
	return m.receipts.ReplaceBySession(m.db, sessionID, receipts)
}

// settleExpired decides what a vanished backend session means. A rival
// finalize may have consumed it after completing the merge, so re-read
// first and fail only a session still UPLOADING; a COMPLETE session is
// immutable. Returns the completed session when the rival won.
func (m *Manager) settleExpired(session *models.UploadSession) *models.UploadSession {
	current, err := m.sessions.GetByFingerprint(m.db, session.ContentFingerprint)
	if err == nil && current.ID == session.ID && current.Status == models.SessionComplete {
		return current
	}
	if _, err := m.sessions.FailIfUploading(m.db, session.ID); err != nil {
		m.logger.Error("mark session failed", zap.Int64("session", session.ID), zap.Error(err))
	}
	return nil
}

func (m *Manager) enqueueAbort(bucket, storageKey, sessionToken string) {
	if sessionToken == "" {
		return
	}
	extra, _ := json.Marshal(models.AbortInfo{
		Bucket:       bucket,
		StorageKey:   storageKey,
		SessionToken: sessionToken,
	})
	now := time.Now()
	task := &models.TaskInfo{
		Status:    utils.TaskStatusUndo,
		TaskType:  utils.TaskSessionAbort,
		ExtraData: string(extra),
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if err := m.tasks.Create(m.db, task); err != nil {
		m.logger.Error("enqueue session abort failed", zap.Error(err))
	}
}

// cachedResolve redis value for a settled fingerprint
type cachedResolve struct {
	SessionId int64  `json:"sessionId"`
	Url       string `json:"url"`
}

func (m *Manager) cacheUrl(ctx context.Context, fingerprint string, sessionID int64, url string) {
	if m.cache == nil {
		return
	}
	payload, err := json.Marshal(cachedResolve{SessionId: sessionID, Url: url})
	if err != nil {
		return
	}
	m.cache.SetNX(ctx, resolveKey(fingerprint), payload, utils.ResolveRedisTTl)
}

func resolveKey(fingerprint string) string {
	return utils.ResolveRedisPrefix + ":" + fingerprint
}

func partIndices(parts []storage.ChunkPart) []int {
	ret := make([]int, 0, len(parts))
	for _, p := range parts {
		ret = append(ret, p.Index)
	}
	return ret
}
