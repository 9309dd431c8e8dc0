package models

import "time"

// ChunkReceipt proof that the backend durably accepted one chunk.
// (session_id, chunk_index) is unique; re-upload of an index overwrites
// the receipt. The backend listing, not this table, is ground truth at
// finalize time.
type ChunkReceipt struct {
	ID           int64      `gorm:"column:id;primaryKey;not null;autoIncrement" json:"id"`
	SessionID    int64      `gorm:"column:session_id;not null;uniqueIndex:uk_receipt_session_chunk" json:"sessionId"`
	ChunkIndex   int        `gorm:"column:chunk_index;not null;uniqueIndex:uk_receipt_session_chunk" json:"chunkIndex"`
	ReceiptToken string     `gorm:"column:receipt_token;type:varchar(255);not null" json:"receiptToken"`
	RecordedAt   *time.Time `gorm:"column:recorded_at;not null" json:"recordedAt"`
}

// TableName .
func (ChunkReceipt) TableName() string {
	return "chunk_receipt"
}
