package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/scheduler"
)

// TickInterval 计时器步长
const TickInterval = time.Second

// Exercise 训练计时器状态机：Idle → Running ⇄ Paused → Completed，Stop 回到 Idle
type Exercise struct {
	catalog  []models.Exercise
	sched    *scheduler.Scheduler
	interval time.Duration
	opts     Options

	mu        sync.Mutex
	state     models.SessionState
	active    *models.Exercise
	remaining int
	step      int
	stopTick  context.CancelFunc
	gen       uint64
}

func NewExercise(catalog []models.Exercise, sched *scheduler.Scheduler, opts Options) *Exercise {
	return &Exercise{
		catalog:  catalog,
		sched:    sched,
		interval: TickInterval,
		opts:     opts.withDefaults(),
		state:    models.SessionIdle,
	}
}

// SetInterval 只用于测试加速计时
func (e *Exercise) SetInterval(d time.Duration) {
	e.mu.Lock()
	e.interval = d
	e.mu.Unlock()
}

func (e *Exercise) Catalog() []models.Exercise {
	return append([]models.Exercise(nil), e.catalog...)
}

func (e *Exercise) Session() models.ExerciseSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Start 开始某个训练，已有会话会被替换
func (e *Exercise) Start(id string) (models.ExerciseSession, error) {
	var found *models.Exercise
	for i := range e.catalog {
		if e.catalog[i].ID == id {
			ex := e.catalog[i]
			found = &ex
			break
		}
	}
	if found == nil {
		return models.ExerciseSession{}, errors.NotFound("exercise", id)
	}

	e.mu.Lock()
	e.stopTickerLocked()
	e.active = found
	e.remaining = found.Duration
	e.step = 0
	e.state = models.SessionRunning
	e.startTickerLocked()
	s := e.snapshotLocked()
	e.mu.Unlock()

	e.opts.emit(PanelExercise, "started", s)
	return s, nil
}

// Tick 倒计时一秒，到 0 时进入 Completed
func (e *Exercise) Tick() models.ExerciseSession { return e.tick(0) }

// tick gen 非 0 时只接受当前计时器的回调，已取消计时器的迟到回调被忽略
func (e *Exercise) tick(gen uint64) models.ExerciseSession {
	e.mu.Lock()
	if e.state != models.SessionRunning || (gen != 0 && gen != e.gen) {
		s := e.snapshotLocked()
		e.mu.Unlock()
		return s
	}
	completed := false
	if e.remaining <= 1 {
		e.remaining = 0
		e.state = models.SessionCompleted
		e.stopTickerLocked()
		completed = true
	} else {
		e.remaining--
	}
	s := e.snapshotLocked()
	e.mu.Unlock()

	if completed {
		e.opts.emit(PanelExercise, "completed", s)
	} else {
		e.opts.Publisher.Publish(PanelExercise, "tick", s)
	}
	return s
}

// TogglePlayPause Idle 和 Completed 状态下无效
func (e *Exercise) TogglePlayPause() models.ExerciseSession {
	e.mu.Lock()
	switch e.state {
	case models.SessionRunning:
		e.state = models.SessionPaused
		e.stopTickerLocked()
	case models.SessionPaused:
		e.state = models.SessionRunning
		e.startTickerLocked()
	}
	s := e.snapshotLocked()
	e.mu.Unlock()

	e.opts.emit(PanelExercise, "toggled", s)
	return s
}

// Reset 恢复到完整时长并暂停，保留当前训练
func (e *Exercise) Reset() models.ExerciseSession {
	e.mu.Lock()
	if e.active != nil {
		e.stopTickerLocked()
		e.remaining = e.active.Duration
		e.step = 0
		e.state = models.SessionPaused
	}
	s := e.snapshotLocked()
	e.mu.Unlock()

	e.opts.emit(PanelExercise, "reset", s)
	return s
}

// Stop 丢弃会话
func (e *Exercise) Stop() models.ExerciseSession {
	e.mu.Lock()
	e.stopTickerLocked()
	e.active = nil
	e.remaining = 0
	e.step = 0
	e.state = models.SessionIdle
	s := e.snapshotLocked()
	e.mu.Unlock()

	e.opts.emit(PanelExercise, "stopped", s)
	return s
}

// SetStep 选择指导步骤，越界时截断
func (e *Exercise) SetStep(n int) models.ExerciseSession {
	e.mu.Lock()
	if e.active != nil {
		last := len(e.active.Instructions) - 1
		if n > last {
			n = last
		}
		if n < 0 {
			n = 0
		}
		e.step = n
	}
	s := e.snapshotLocked()
	e.mu.Unlock()
	return s
}

// Close 停止计时器
func (e *Exercise) Close() {
	e.mu.Lock()
	e.stopTickerLocked()
	e.mu.Unlock()
}

func (e *Exercise) startTickerLocked() {
	if e.sched == nil || e.stopTick != nil {
		return
	}
	e.gen++
	gen := e.gen
	e.stopTick = e.sched.Every(e.interval, scheduler.FuncJob(func(context.Context) { e.tick(gen) }))
}

func (e *Exercise) stopTickerLocked() {
	if e.stopTick != nil {
		e.stopTick()
		e.stopTick = nil
		e.gen++
	}
}

func (e *Exercise) snapshotLocked() models.ExerciseSession {
	s := models.ExerciseSession{
		State:         e.state,
		IsPlaying:     e.state == models.SessionRunning,
		TimeRemaining: e.remaining,
		CurrentStep:   e.step,
		Clock:         FormatClock(e.remaining),
	}
	if e.active != nil {
		ex := *e.active
		ex.Instructions = append([]string(nil), e.active.Instructions...)
		s.Exercise = &ex
	}
	return s
}

// FormatClock 秒数格式化为 m:ss
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
