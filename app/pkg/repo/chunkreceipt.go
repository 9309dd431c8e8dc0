package repo

import (
	"time"

	"github.com/openuploader/uploadproxy/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type chunkReceiptRepo struct{}

func NewChunkReceiptRepo() *chunkReceiptRepo { return &chunkReceiptRepo{} }

// Record upserts on (session_id, chunk_index), re-delivery of a chunk
// overwrites the receipt instead of erroring.
func (r *chunkReceiptRepo) Record(db *gorm.DB, m *models.ChunkReceipt) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "chunk_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"receipt_token", "recorded_at"}),
	}).Create(m).Error
	return err
}

// ListBySession .
func (r *chunkReceiptRepo) ListBySession(db *gorm.DB, sessionID int64) ([]models.ChunkReceipt, error) {
	var ret []models.ChunkReceipt
	if err := db.Where("session_id = ?", sessionID).Order("chunk_index asc").Find(&ret).Error; err != nil {
		return nil, err
	}
	return ret, nil
}

// CountBySession .
func (r *chunkReceiptRepo) CountBySession(db *gorm.DB, sessionID int64) (int64, error) {
	var count int64
	if err := db.Model(&models.ChunkReceipt{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceBySession swaps the whole ledger for what the backend reported
func (r *chunkReceiptRepo) ReplaceBySession(db *gorm.DB, sessionID int64, receipts []models.ChunkReceipt) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.ChunkReceipt{}).Error; err != nil {
			return err
		}
		if len(receipts) == 0 {
			return nil
		}
		now := time.Now()
		for i := range receipts {
			receipts[i].ID = 0
			receipts[i].SessionID = sessionID
			if receipts[i].RecordedAt == nil {
				receipts[i].RecordedAt = &now
			}
		}
		return tx.Create(&receipts).Error
	})
}
