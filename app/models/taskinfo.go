package models

import "time"

// TaskInfo async cleanup task table
type TaskInfo struct {
	ID          int64      `gorm:"column:id;primaryKey;not null;autoIncrement" json:"id"`
	Status      int        `gorm:"column:status;not null;index:idx_task_status" json:"status"` // 0 undo 1 running 2 finish 99 error
	TaskType    string     `gorm:"column:task_type;not null;type:varchar(255)" json:"taskType"`
	ExtraData   string     `gorm:"column:extra_data;type:text" json:"extraData"`
	NodeId      string     `gorm:"column:node_id;type:varchar(255);index:idx_node_id" json:"nodeId"` // node currently running the task
	TaskLogID   int64      `gorm:"column:task_log_id" json:"taskLogId"`
	ExecuteTime int        `gorm:"column:execute_time;default:0" json:"executeTime"` // attempts so far
	CreatedAt   *time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

// TaskLog per-attempt task execution log
type TaskLog struct {
	ID        int64      `gorm:"column:id;primaryKey;not null;autoIncrement" json:"id"`
	TaskID    int64      `gorm:"column:task_id;index:idx_task_id" json:"taskId"`
	Status    int        `gorm:"column:status;index:idx_task_log_status" json:"status"`
	ErrorInfo string     `gorm:"column:error_info;type:text" json:"errorInfo"`
	CreatedAt *time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

// AbortInfo payload of a sessionAbort task: enough to drop an abandoned
// backend multipart session without the (possibly deleted) session row.
type AbortInfo struct {
	Bucket       string `json:"bucket"`
	StorageKey   string `json:"storageKey"`
	SessionToken string `json:"sessionToken"`
}
