package models

import (
	"errors"
	"fmt"
)

/*
Error kinds shared by the repositories and the upload session manager.
Business conditions (not-uploaded, uploading, duplicate) travel as result
codes; these errors cover contract violations, conflicts and backend faults.
*/

var (
	// ErrDuplicateFingerprint a non-FAILED session already holds this fingerprint.
	ErrDuplicateFingerprint = errors.New("upload session with this fingerprint already exists")

	// ErrSessionNotFound no session matches the given fingerprint or token.
	ErrSessionNotFound = errors.New("upload session not found")

	// ErrChunkIndexOutOfRange chunk index outside [1, totalChunkCount].
	ErrChunkIndexOutOfRange = errors.New("chunk index out of range")

	// ErrSessionNotActive the session is COMPLETE or FAILED, no more chunks.
	ErrSessionNotActive = errors.New("upload session is not accepting chunks")

	// ErrBackendUnavailable transient storage-backend failure, caller retries.
	ErrBackendUnavailable = errors.New("object storage backend unavailable")
)

// IncompleteUploadError finalize found gaps in the reconciled chunk set.
// The session stays UPLOADING; the caller re-uploads the missing indices.
type IncompleteUploadError struct {
	Missing []int
}

// Error .
func (e *IncompleteUploadError) Error() string {
	return fmt.Sprintf("upload incomplete, missing chunk indices %v", e.Missing)
}
