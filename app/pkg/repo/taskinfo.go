package repo

import (
	"github.com/openuploader/uploadproxy/app/models"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"gorm.io/gorm"
)

func NewTaskRepo() *taskInfoRepo {
	return &taskInfoRepo{}
}

type taskInfoRepo struct{}

// GetByID .
func (r *taskInfoRepo) GetByID(db *gorm.DB, taskID int64) (*models.TaskInfo, error) {
	ret := &models.TaskInfo{}
	if err := db.Where("id = ?", taskID).First(ret).Error; err != nil {
		return ret, err
	}
	return ret, nil
}

// PreemptiveTaskByID claims a pending task for this node. Zero rows
// affected means another node won.
func (r *taskInfoRepo) PreemptiveTaskByID(db *gorm.DB, taskID int64, nodeId string) int64 {
	affected := db.Model(&models.TaskInfo{}).Where("id = ? and status = ?", taskID, utils.TaskStatusUndo).
		UpdateColumns(map[string]interface{}{
			"status":  utils.TaskStatusRunning,
			"node_id": nodeId,
		})
	return affected.RowsAffected
}

// FinishTaskByID .
func (r *taskInfoRepo) FinishTaskByID(db *gorm.DB, taskID int64) int64 {
	affected := db.Model(&models.TaskInfo{}).Where("id = ? and status = ?", taskID, utils.TaskStatusRunning).
		UpdateColumn("status", utils.TaskStatusFinish)
	return affected.RowsAffected
}

// ErrorTaskByID .
func (r *taskInfoRepo) ErrorTaskByID(db *gorm.DB, taskID int64) int64 {
	affected := db.Model(&models.TaskInfo{}).Where("id = ? and status = ?", taskID, utils.TaskStatusRunning).
		UpdateColumn("status", utils.TaskStatusError)
	return affected.RowsAffected
}

// ResetTaskByID hands a claimed task back to the queue
func (r *taskInfoRepo) ResetTaskByID(db *gorm.DB, taskID int64, nodeId string) int64 {
	affected := db.Model(&models.TaskInfo{}).Where(
		"id = ? and node_id = ? and status =?", taskID, nodeId, utils.TaskStatusRunning).
		UpdateColumns(map[string]interface{}{
			"status":  utils.TaskStatusUndo,
			"node_id": "",
		})
	return affected.RowsAffected
}

// FindByStatus .
func (r *taskInfoRepo) FindByStatus(db *gorm.DB, status int) ([]models.TaskInfo, error) {
	var ret []models.TaskInfo
	if err := db.Where("status = ?", status).Find(&ret).Error; err != nil {
		return ret, err
	}
	return ret, nil
}

// Create .
func (r *taskInfoRepo) Create(db *gorm.DB, m *models.TaskInfo) error {
	err := db.Create(m).Error
	return err
}

// UpdateColumn .
func (r *taskInfoRepo) UpdateColumn(db *gorm.DB, taskID int64, name string, value interface{}) error {
	err := db.Model(&models.TaskInfo{}).Where("id = ?", taskID).UpdateColumn(name, value).Error
	return err
}
