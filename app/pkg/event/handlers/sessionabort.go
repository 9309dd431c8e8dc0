package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openuploader/uploadproxy/app/models"
	"github.com/openuploader/uploadproxy/app/pkg/event"
	"github.com/openuploader/uploadproxy/app/pkg/repo"
	"github.com/openuploader/uploadproxy/app/pkg/storage"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

/*
sessionAbort drops an orphaned backend multipart session so its chunks
stop costing storage. Orphans come from begin races, failed finalizes
and explicit deletes.
*/

func init() {
	event.NewEventsHandler().RegPreProcess(utils.TaskSessionAbort, preProcessSessionAbort)
	event.NewEventsHandler().RegHandler(utils.TaskSessionAbort, handleSessionAbort)
}

func preProcessSessionAbort(i interface{}) bool {
	upDB := new(plugins.ProxyDB).Use("default").NewDB()

	taskID := i.(int64)
	taskInfo, err := repo.NewTaskRepo().GetByID(upDB, taskID)
	if err != nil {
		fmt.Printf("task not found %v", err)
		return false
	}
	var msg models.AbortInfo
	if err := json.Unmarshal([]byte(taskInfo.ExtraData), &msg); err != nil {
		fmt.Printf("bad abort payload %v", err)
		return false
	}
	return true
}

func handleSessionAbort(i interface{}) error {
	upDB := new(plugins.ProxyDB).Use("default").NewDB()

	taskID := i.(int64)
	taskInfo, err := repo.NewTaskRepo().GetByID(upDB, taskID)
	if err != nil {
		return err
	}
	var msg models.AbortInfo
	if err := json.Unmarshal([]byte(taskInfo.ExtraData), &msg); err != nil {
		return err
	}

	sto := storage.NewStorage().Storage
	// gateways treat an already-gone session as success, aborts may race
	return sto.AbortSession(context.Background(), msg.Bucket, msg.StorageKey, msg.SessionToken)
}
