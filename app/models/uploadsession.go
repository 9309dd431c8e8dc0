package models

import "time"

/*
UploadSession: one multipart-upload lifecycle per content fingerprint.
*/

// SessionStatus upload session state
type SessionStatus int8

const (
	SessionUploading SessionStatus = iota // chunks may still arrive
	SessionComplete                       // merged into one object, immutable
	SessionFailed                         // unrecoverable finalize failure, fingerprint reusable
)

// String .
func (s SessionStatus) String() string {
	switch s {
	case SessionUploading:
		return "UPLOADING"
	case SessionComplete:
		return "COMPLETE"
	case SessionFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// UploadSession upload session table
type UploadSession struct {
	ID                  int64         `gorm:"column:id;primaryKey;not null" json:"id"`
	ContentFingerprint  string        `gorm:"column:content_fingerprint;type:varchar(128);not null;uniqueIndex:uk_session_fingerprint" json:"contentFingerprint"`
	BackendSessionToken string        `gorm:"column:backend_session_token;type:varchar(255)" json:"backendSessionToken"`
	OriginalFileName    string        `gorm:"column:original_file_name;type:varchar(500);not null" json:"originalFileName"`
	StorageKey          string        `gorm:"column:storage_key;type:varchar(500);not null" json:"storageKey"`
	Bucket              string        `gorm:"column:bucket;type:varchar(255);not null" json:"bucket"`
	TotalSizeBytes      int64         `gorm:"column:total_size_bytes;not null" json:"totalSizeBytes"`
	ChunkSizeBytes      int64         `gorm:"column:chunk_size_bytes;not null" json:"chunkSizeBytes"`
	TotalChunkCount     int           `gorm:"column:total_chunk_count;not null" json:"totalChunkCount"`
	Status              SessionStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt           *time.Time    `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt           *time.Time    `gorm:"column:updated_at;not null" json:"updatedAt"`
}

// TableName .
func (UploadSession) TableName() string {
	return "upload_session"
}
