package dispatch

import (
	"context"

	"github.com/openuploader/uploadproxy/app/pkg/base"
	_ "github.com/openuploader/uploadproxy/app/pkg/event/handlers" // handler init() registration
	"github.com/openuploader/uploadproxy/app/pkg/repo"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

var (
	taskCtx, taskCancel = context.WithCancel(context.Background())
	JobQueue            = make(chan Job, utils.MaxQueue)
)

// RunTask starts the producer and the worker pool
func RunTask() (*Producer, []Worker) {
	p := NewProduce()
	p.Wg.Add(1)
	go p.Produce()

	var consumers []Worker
	for i := 0; i < utils.MaxWorker; i++ {
		worker := NewWorker()
		consumers = append(consumers, *worker)
		worker.Wg.Add(1)
		worker.Start()
	}
	return p, consumers
}

// StopTask drains the pool and hands claimed-but-unfinished tasks back
func StopTask(p *Producer, consumers []Worker) {
	ip, err := base.GetClientIp()
	if err != nil {
		panic(err)
	}

	taskCancel()

	p.Stop()
	for i := 0; i < utils.MaxWorker; i++ {
		consumers[i].Stop()
	}

	// tasks this node claimed but never ran go back to the queue
	var upDB = new(plugins.ProxyDB).Use("default").NewDB()
	runningTask, _ := repo.NewTaskRepo().FindByStatus(upDB, utils.TaskStatusRunning)
	for _, i := range runningTask {
		_ = repo.NewTaskRepo().ResetTaskByID(upDB, i.ID, ip)
	}
}
