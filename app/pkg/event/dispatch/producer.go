package dispatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/openuploader/uploadproxy/app/pkg/base"
	"github.com/openuploader/uploadproxy/app/pkg/event"
	"github.com/openuploader/uploadproxy/app/pkg/repo"
	"github.com/openuploader/uploadproxy/app/pkg/utils"
	"github.com/openuploader/uploadproxy/bootstrap/plugins"
)

type Producer struct {
	Wg *sync.WaitGroup
}

func NewProduce() *Producer {
	return &Producer{
		Wg: &sync.WaitGroup{},
	}
}

// Produce polls pending tasks and claims them for this node
func (p *Producer) Produce() {
	timer := time.NewTimer(1 * time.Nanosecond)
	ip, err := base.GetClientIp()
	if err != nil {
		panic(err)
	}
	defer timer.Stop()
	defer p.Wg.Done()
	for {
		select {
		case <-timer.C:
			var upDB = new(plugins.ProxyDB).Use("default").NewDB()
			undoTaskList, _ := repo.NewTaskRepo().FindByStatus(upDB, utils.TaskStatusUndo)
			for _, i := range undoTaskList {
				preProcess := event.NewEventsHandler().GetPreProcess(i.TaskType)
				if preProcess != nil {
					if f := preProcess(i.ID); !f {
						continue
					}
				}
				// claim, zero rows means another node got it
				affectRow := repo.NewTaskRepo().PreemptiveTaskByID(upDB, i.ID, ip)
				if affectRow != 0 {
					JobQueue <- Job{
						TaskID:   i.ID,
						TaskType: i.TaskType,
					}
				}
			}

		case <-taskCtx.Done():
			fmt.Println("task producer stopped...")
			return
		}

		timer.Reset(500 * time.Millisecond)
	}
}

func (p *Producer) Stop() {
	p.Wg.Wait()
}
