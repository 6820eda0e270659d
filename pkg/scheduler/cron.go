package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

type Cron struct {
	c   *cron.Cron
	loc *time.Location
}

func NewCron(loc *time.Location) *Cron {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	return &Cron{c: c, loc: loc}
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { ctx := cr.c.Stop(); <-ctx.Done() }

// Location 调度使用的时区
func (cr *Cron) Location() *time.Location { return cr.loc }

func (cr *Cron) Add(expr string, job Job) (cron.EntryID, error) {
	return cr.c.AddFunc(expr, func() { job.Run(context.Background()) })
}

// AddSchedule 注册自定义 Schedule，例如只触发一次的 At
func (cr *Cron) AddSchedule(s cron.Schedule, job Job) cron.EntryID {
	return cr.c.Schedule(s, cron.FuncJob(func() { job.Run(context.Background()) }))
}

func (cr *Cron) Remove(id cron.EntryID) { cr.c.Remove(id) }

func (cr *Cron) Entries() []cron.Entry { return cr.c.Entries() }

// At 在指定时刻触发一次，之后返回零值时间使 cron 不再调度
type At time.Time

func (a At) Next(now time.Time) time.Time {
	t := time.Time(a)
	if t.After(now) {
		return t
	}
	return time.Time{}
}
