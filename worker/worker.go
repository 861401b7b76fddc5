package worker

import (
	"sync"

	"github.com/robfig/cron/v3"
)

// IJob job的接口
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob cron driven job, a tick is skipped while the previous one still runs
type BaseJob struct {
	Cron      *cron.Cron
	OnWork    OnWork
	mu        sync.Mutex
	isRunning bool
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	job.mu.Lock()
	if job.isRunning {
		job.mu.Unlock()
		return
	}
	job.isRunning = true
	job.mu.Unlock()

	defer func() {
		job.mu.Lock()
		job.isRunning = false
		job.mu.Unlock()
	}()

	_ = job.OnWork()
}
