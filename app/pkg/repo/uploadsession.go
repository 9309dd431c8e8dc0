package repo

import (
	"errors"

	"github.com/openuploader/uploadproxy/app/models"
	"gorm.io/gorm"
)

type uploadSessionRepo struct{}

func NewUploadSessionRepo() *uploadSessionRepo { return &uploadSessionRepo{} }

// GetByFingerprint .
func (r *uploadSessionRepo) GetByFingerprint(db *gorm.DB, fingerprint string) (*models.UploadSession, error) {
	ret := &models.UploadSession{}
	if err := db.Where("content_fingerprint = ?", fingerprint).First(ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, err
	}
	return ret, nil
}

// GetByBackendToken .
func (r *uploadSessionRepo) GetByBackendToken(db *gorm.DB, token string) (*models.UploadSession, error) {
	ret := &models.UploadSession{}
	if err := db.Where("backend_session_token = ?", token).First(ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, err
	}
	return ret, nil
}

// Create the unique index on content_fingerprint arbitrates concurrent
// begins, the loser surfaces ErrDuplicateFingerprint.
func (r *uploadSessionRepo) Create(db *gorm.DB, m *models.UploadSession) error {
	if err := db.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateFingerprint
		}
		return err
	}
	return nil
}

// UpdateStatus .
func (r *uploadSessionRepo) UpdateStatus(db *gorm.DB, sessionID int64, status models.SessionStatus) error {
	err := db.Model(&models.UploadSession{}).Where("id = ?", sessionID).
		UpdateColumn("status", status).Error
	return err
}

// FailIfUploading demotes the session only while it is still UPLOADING,
// a COMPLETE session is immutable. Reports whether a row changed.
func (r *uploadSessionRepo) FailIfUploading(db *gorm.DB, sessionID int64) (bool, error) {
	tx := db.Model(&models.UploadSession{}).
		Where("id = ? and status = ?", sessionID, models.SessionUploading).
		UpdateColumn("status", models.SessionFailed)
	return tx.RowsAffected > 0, tx.Error
}

// Updates .
func (r *uploadSessionRepo) Updates(db *gorm.DB, sessionID int64, columns map[string]interface{}) error {
	err := db.Model(&models.UploadSession{}).Where("id = ?", sessionID).Updates(columns).Error
	return err
}

// Delete removes the session with its receipts, receipts first so a
// half-done delete never orphans them.
func (r *uploadSessionRepo) Delete(db *gorm.DB, sessionID int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.ChunkReceipt{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", sessionID).Delete(&models.UploadSession{}).Error
	})
}
