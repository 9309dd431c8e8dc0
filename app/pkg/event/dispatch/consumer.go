package dispatch

import (
	"fmt"
	"sync"

	"github.com/openuploader/uploadproxy/app/models"
	"github.com/openuploader/uploadproxy/app/pkg/event"
	"github.com/openuploader/uploadproxy/app/pkg/repo"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

type Job struct {
	TaskID   int64
	TaskType string
}

type Worker struct {
	Wg *sync.WaitGroup
}

func NewWorker() *Worker {
	return &Worker{
		Wg: &sync.WaitGroup{},
	}
}

// Start consumes jobs until the dispatch context is cancelled. A failed
// job goes back to the queue until it hits the retry cap, then parks as
// error with its log row holding the reason.
func (w *Worker) Start() {
	go func() {
		defer w.Wg.Done()
		for {
			select {
			case job := <-JobQueue:
				handler := event.NewEventsHandler().GetHandler(job.TaskType)
				var upDB = new(plugins.ProxyDB).Use("default").NewDB()
				taskLogData := models.TaskLog{
					TaskID: job.TaskID,
					Status: utils.TaskStatusRunning,
				}
				_ = repo.TaskLogRepo.Create(upDB, &taskLogData)
				_ = repo.NewTaskRepo().UpdateColumn(upDB, job.TaskID, "task_log_id", taskLogData.ID)

				if handler == nil {
					if repo.NewTaskRepo().ErrorTaskByID(upDB, job.TaskID) == 1 {
						_ = repo.TaskLogRepo.UpdateColumn(upDB, taskLogData.ID, map[string]interface{}{
							"status":     utils.TaskStatusError,
							"error_info": fmt.Sprintf("no handler registered for task type %v", job.TaskType),
						})
					}
					continue
				}

				err := handler(job.TaskID)
				tkInfo, _ := repo.NewTaskRepo().GetByID(upDB, job.TaskID)
				_ = repo.NewTaskRepo().UpdateColumn(upDB, job.TaskID, "execute_time", tkInfo.ExecuteTime+1)
				if err == nil {
					if repo.NewTaskRepo().FinishTaskByID(upDB, job.TaskID) == 1 {
						_ = repo.TaskLogRepo.UpdateColumn(upDB, taskLogData.ID, map[string]interface{}{
							"status":     utils.TaskStatusFinish,
							"error_info": "",
						})
					}
				} else if tkInfo.ExecuteTime < utils.CompensationTotal {
					// retry later
					_ = repo.TaskLogRepo.UpdateColumn(upDB, taskLogData.ID, map[string]interface{}{
						"status":     utils.TaskStatusError,
						"error_info": err.Error(),
					})
					_ = repo.NewTaskRepo().ResetTaskByID(upDB, job.TaskID, tkInfo.NodeId)
				} else {
					// retry cap reached
					if repo.NewTaskRepo().ErrorTaskByID(upDB, job.TaskID) == 1 {
						_ = repo.TaskLogRepo.UpdateColumn(upDB, taskLogData.ID, map[string]interface{}{
							"status":     utils.TaskStatusError,
							"error_info": err.Error(),
						})
					}
				}
			case <-taskCtx.Done():
				return
			}
		}
	}()
}

func (w *Worker) Stop() {
	w.Wg.Wait()
}
