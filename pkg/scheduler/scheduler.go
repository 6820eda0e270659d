package scheduler

import (
	"context"
	"sync"
	"time"
)

type Job interface{ Run(ctx context.Context) }

type FuncJob func(ctx context.Context)

func (f FuncJob) Run(ctx context.Context) { f(ctx) }

// Scheduler 进程内定时任务；每个任务返回独立的取消函数，Stop 取消全部并等待退出
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Stop 取消所有任务，阻塞到 goroutine 全部退出
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Every 每隔 d 执行一次 job，直到返回的 cancel 被调用或 Stop
func (s *Scheduler) Every(d time.Duration, job Job) context.CancelFunc {
	ctx, cancel := context.WithCancel(s.ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loopEvery(ctx, d, job)
	}()
	return cancel
}

// OnceAfter d 之后执行一次，取消后不会执行
func (s *Scheduler) OnceAfter(d time.Duration, job Job) context.CancelFunc {
	ctx, cancel := context.WithCancel(s.ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.onceAfter(ctx, d, job)
	}()
	return cancel
}

func (s *Scheduler) loopEvery(ctx context.Context, d time.Duration, job Job) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			job.Run(ctx)
		}
	}
}

func (s *Scheduler) onceAfter(ctx context.Context, d time.Duration, job Job) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return
	case <-t.C:
		job.Run(ctx)
	}
}
