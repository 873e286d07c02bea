package worker

import (
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job a periodic job driven by its own cron schedule
type Job interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob shared cron plumbing for periodic jobs. The running latch
// serializes overlapping triggers: cron fires every tick in its own
// goroutine, so a tick that lands while the previous pass is still
// working is dropped.
type BaseJob struct {
	Cron    *cron.Cron
	Name    string
	OnWork  OnWork
	running atomic.Bool
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if !job.running.CompareAndSwap(false, true) {
		return
	}
	defer job.running.Store(false)

	if err := job.OnWork(); err != nil {
		logrus.WithError(err).Errorln("job aborted:", job.Name)
	}
}
