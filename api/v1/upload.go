package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openuploader/uploadproxy/app/models"
	"github.com/openuploader/uploadproxy/app/pkg/base"
	"github.com/openuploader/uploadproxy/app/pkg/storage"
	"github.com/openuploader/uploadproxy/app/pkg/uploader"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"github.com/openuploader/uploadproxy/app/pkg/web"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

/*
chunked upload endpoints
*/

// CheckFingerprintHandler resolve what a fingerprint needs
//
//	@Summary		check upload state of a fingerprint
//	@Description	returns 2001+url, 2002+uploaded chunks, or 2003
//	@Tags			multipart
//	@Param			fingerprint	path	string	true	"content fingerprint"
//	@Produce		application/json
//	@Success		200	{object}	web.Response{data=uploader.Result}
//	@Router			/api/upload/v1/multipart/check/{fingerprint} [get]
func CheckFingerprintHandler(c *gin.Context) {
	fingerprint := c.Param("fingerprint")
	if fingerprint == "" {
		web.ParamsError(c, "fingerprint is required")
		return
	}

	res, err := uploader.NewUploader().Resolve(c, fingerprint)
	if err != nil {
		bootstrap.NewLogger().WithContext(c).Error(fmt.Sprintf("resolve failed: %s", err.Error()))
		web.InternalError(c, "resolve failed")
		return
	}
	web.Success(c, res)
}

// InitMultipartHandler open (or resume) an upload session
//
//	@Summary		init a multipart upload session
//	@Description	idempotent per fingerprint, replaces a failed predecessor
//	@Tags			multipart
//	@Accept			application/json
//	@Param			body	body	models.InitUploadReq	true	"session parameters"
//	@Produce		application/json
//	@Success		200	{object}	web.Response{data=uploader.Result}
//	@Router			/api/upload/v1/multipart/init [post]
func InitMultipartHandler(c *gin.Context) {
	var req models.InitUploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		web.ParamsError(c, fmt.Sprintf("invalid init request: %s", err.Error()))
		return
	}

	res, err := uploader.NewUploader().Begin(c, &req)
	if err != nil {
		if errors.Is(err, models.ErrBackendUnavailable) {
			bootstrap.NewLogger().WithContext(c).Error(fmt.Sprintf("init failed: %s", err.Error()))
			web.InternalError(c, "object storage backend unavailable")
			return
		}
		bootstrap.NewLogger().WithContext(c).Error(fmt.Sprintf("init failed: %s", err.Error()))
		web.InternalError(c, "init failed")
		return
	}
	web.Success(c, res)
}

// UploadChunkHandler accept one chunk of an open session
//
//	@Summary		upload one chunk
//	@Description	chunks arrive in any order, re-delivery is safe
//	@Tags			multipart
//	@Accept			multipart/form-data
//	@Param			file			formData	file	true	"chunk body"
//	@Param			sessionToken	formData	string	true	"session token from init"
//	@Param			chunkIndex		formData	int		true	"1-based chunk index"
//	@Produce		application/json
//	@Success		200	{object}	web.Response{data=models.ChunkUploadResp}
//	@Router			/api/upload/v1/multipart/chunk [post]
func UploadChunkHandler(c *gin.Context) {
	sessionToken := c.PostForm("sessionToken")
	if sessionToken == "" {
		web.ParamsError(c, "sessionToken is required")
		return
	}
	index, err := strconv.Atoi(c.PostForm("chunkIndex"))
	if err != nil {
		web.ParamsError(c, "chunkIndex must be an integer")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		web.ParamsError(c, fmt.Sprintf("invalid chunk file: %s", err.Error()))
		return
	}

	src, err := file.Open()
	if err != nil {
		web.InternalError(c, "open chunk failed")
		return
	}
	defer src.Close()

	resp, err := uploader.NewUploader().AcceptChunk(c, sessionToken, index, src, file.Size)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSessionNotFound):
			web.NotFoundResource(c, "no upload session for this token")
		case errors.Is(err, models.ErrChunkIndexOutOfRange):
			web.ParamsError(c, err.Error())
		case errors.Is(err, models.ErrSessionNotActive):
			web.Conflict(c, err.Error())
		case errors.Is(err, storage.ErrSessionExpired):
			web.Conflict(c, "backend session expired, re-init the upload")
		default:
			bootstrap.NewLogger().WithContext(c).Error(fmt.Sprintf("chunk upload failed: %s", err.Error()))
			web.InternalError(c, "chunk upload failed")
		}
		return
	}
	web.Success(c, resp)
}

// MergeChunksHandler finalize a session into the final object
//
//	@Summary		merge uploaded chunks
//	@Description	verifies contiguity against the backend, then merges
//	@Tags			multipart
//	@Param			fingerprint	path	string	true	"content fingerprint"
//	@Produce		application/json
//	@Success		200	{object}	web.Response{data=uploader.Result}
//	@Router			/api/upload/v1/multipart/merge/{fingerprint} [post]
func MergeChunksHandler(c *gin.Context) {
	fingerprint := c.Param("fingerprint")
	if fingerprint == "" {
		web.ParamsError(c, "fingerprint is required")
		return
	}

	// single merge at a time per fingerprint; finalize stays idempotent
	// if the lock ever leaks
	ctx := c.Request.Context()
	upRedis := new(plugins.ProxyRedis).NewRedis()
	lock := base.NewRedisLock(&ctx, upRedis, fmt.Sprintf("%s:%s", utils.MergeLockRedisPrefix, fingerprint))
	lock.SetExpire(30)
	if ok, err := lock.Acquire(); err != nil || !ok {
		web.Conflict(c, "merge already in progress")
		return
	}
	defer func() { _, _ = lock.Release() }()

	res, err := uploader.NewUploader().Finalize(c, fingerprint)
	if err != nil {
		var incomplete *models.IncompleteUploadError
		switch {
		case errors.As(err, &incomplete):
			web.Success(c, &uploader.Result{Code: uploader.CodeUploading, Missing: incomplete.Missing})
		case errors.Is(err, models.ErrSessionNotFound):
			web.NotFoundResource(c, "no upload session for this fingerprint")
		case errors.Is(err, models.ErrBackendUnavailable):
			web.InternalError(c, "object storage backend unavailable, retry later")
		default:
			bootstrap.NewLogger().WithContext(c).Error(fmt.Sprintf("merge failed: %s", err.Error()))
			web.InternalError(c, "merge failed")
		}
		return
	}
	web.Success(c, res)
}

// DeleteSessionHandler drop a session and its chunks
//
//	@Summary		delete an upload session
//	@Description	removes local state and aborts the backend session
//	@Tags			multipart
//	@Param			fingerprint	path	string	true	"content fingerprint"
//	@Produce		application/json
//	@Success		200	{object}	web.Response
//	@Router			/api/upload/v1/session/{fingerprint} [delete]
func DeleteSessionHandler(c *gin.Context) {
	fingerprint := c.Param("fingerprint")
	if fingerprint == "" {
		web.ParamsError(c, "fingerprint is required")
		return
	}

	if err := uploader.NewUploader().Delete(c, fingerprint); err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			web.NotFoundResource(c, "no upload session for this fingerprint")
			return
		}
		bootstrap.NewLogger().WithContext(c).Error(fmt.Sprintf("delete session failed: %s", err.Error()))
		web.InternalError(c, "delete session failed")
		return
	}
	web.Success(c, "")
}

// SingleUploadHandler one-shot upload without chunking
//
//	@Summary		upload a whole file
//	@Description	for files below the chunking threshold
//	@Tags			upload
//	@Accept			multipart/form-data
//	@Param			file	formData	file	true	"file body"
//	@Produce		application/json
//	@Success		200	{object}	web.Response{data=models.SingleUploadResp}
//	@Router			/api/upload/v1/single [post]
func SingleUploadHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		web.ParamsError(c, fmt.Sprintf("invalid file: %s", err.Error()))
		return
	}
	src, err := file.Open()
	if err != nil {
		web.InternalError(c, "open file failed")
		return
	}
	defer src.Close()

	url, err := uploader.NewUploader().PutDirect(c, file.Filename, src, file.Size)
	if err != nil {
		bootstrap.NewLogger().WithContext(c).Error(fmt.Sprintf("single upload failed: %s", err.Error()))
		web.InternalError(c, "upload failed")
		return
	}
	web.Success(c, models.SingleUploadResp{Url: url})
}
