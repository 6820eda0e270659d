package panel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/notification"
	"HealthPortal/pkg/scheduler"
	"HealthPortal/pkg/store"
	"HealthPortal/pkg/util"
)

const reminderTimeLayout = "15:04"

// Reminders 提醒的增删改，激活中的提醒按 cron 计划发送通知
type Reminders struct {
	repo     store.Repository[models.Reminder]
	cron     *scheduler.Cron
	notifier notification.Sender
	opts     Options

	mu      sync.Mutex
	entries map[string]cron.EntryID
	started bool
}

func NewReminders(repo store.Repository[models.Reminder], cr *scheduler.Cron, notifier notification.Sender, opts Options) *Reminders {
	if notifier == nil {
		notifier = notification.LogSender{}
	}
	if cr == nil {
		cr = scheduler.NewCron(time.Local)
	}
	return &Reminders{
		repo:     repo,
		cron:     cr,
		notifier: notifier,
		opts:     opts.withDefaults(),
		entries:  make(map[string]cron.EntryID),
	}
}

func (r *Reminders) List() []models.Reminder { return r.repo.List() }

func (r *Reminders) Get(id string) (models.Reminder, bool) { return r.repo.Get(id) }

// Save 新建或编辑。标题或时间为空时返回 false，不做任何修改；
// editingID 不存在时同样返回 false
func (r *Reminders) Save(form models.ReminderForm, editingID string) (models.Reminder, bool) {
	title := strings.TrimSpace(form.Title)
	if title == "" || strings.TrimSpace(form.Time) == "" {
		return models.Reminder{}, false
	}
	if _, err := time.Parse(reminderTimeLayout, form.Time); err != nil {
		return models.Reminder{}, false
	}
	if form.Frequency == "" {
		form.Frequency = models.FrequencyDaily
	}
	if form.Method == "" {
		form.Method = models.MethodBoth
	}
	if !form.Frequency.Valid() || !form.Method.Valid() {
		return models.Reminder{}, false
	}
	phone := strings.TrimSpace(form.PhoneNumber)
	if phone == models.DefaultPhonePrefix {
		phone = ""
	}

	if editingID != "" {
		now := r.opts.Clock()
		cur, ok := r.repo.Update(editingID, func(rm *models.Reminder) {
			rm.Title = form.Title
			rm.Description = form.Description
			rm.Time = form.Time
			rm.Frequency = form.Frequency
			rm.Method = form.Method
			rm.PhoneNumber = phone
			// 编辑即重新激活，从当前时间起重新排期
			rm.IsActive = true
			rm.NextDue = now
		})
		if !ok {
			return models.Reminder{}, false
		}
		r.reschedule(cur)
		r.opts.emit(PanelReminders, "updated", cur)
		return cur, true
	}

	rec := models.Reminder{
		ID:          util.NewID(),
		Title:       form.Title,
		Description: form.Description,
		Time:        form.Time,
		Frequency:   form.Frequency,
		Method:      form.Method,
		IsActive:    true,
		NextDue:     r.opts.Clock(),
		PhoneNumber: phone,
	}
	r.repo.Add(rec)
	r.reschedule(rec)
	r.opts.emit(PanelReminders, "created", rec)
	return rec, true
}

// Toggle 翻转激活状态
func (r *Reminders) Toggle(id string) (models.Reminder, bool) {
	rec, ok := r.repo.Update(id, func(rm *models.Reminder) { rm.IsActive = !rm.IsActive })
	if !ok {
		return rec, false
	}
	r.reschedule(rec)
	r.opts.emit(PanelReminders, "toggled", rec)
	return rec, true
}

func (r *Reminders) Delete(id string) bool {
	if !r.repo.Remove(id) {
		return false
	}
	r.unschedule(id)
	r.opts.emit(PanelReminders, "deleted", map[string]string{"id": id})
	return true
}

func (r *Reminders) Stats() models.ReminderStats {
	var s models.ReminderStats
	for _, rm := range r.repo.List() {
		if rm.IsActive {
			s.Active++
		}
		if rm.Frequency == models.FrequencyDaily {
			s.Daily++
		}
		if rm.Method.UsesWhatsApp() {
			s.WhatsApp++
		}
	}
	return s
}

// Start 为所有激活的提醒建立计划并启动 cron
func (r *Reminders) Start() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	for _, rm := range r.repo.List() {
		r.reschedule(rm)
	}
	r.cron.Start()
}

func (r *Reminders) Stop() {
	r.mu.Lock()
	started := r.started
	r.started = false
	for id, entry := range r.entries {
		r.cron.Remove(entry)
		delete(r.entries, id)
	}
	r.mu.Unlock()
	if started {
		r.cron.Stop()
	}
}

// Scheduled 已计划的提醒数量
func (r *Reminders) Scheduled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Reminders) reschedule(rm models.Reminder) {
	r.unschedule(rm.ID)
	if !rm.IsActive {
		return
	}
	sched, err := ReminderSchedule(rm, r.cron.Location())
	if err != nil {
		logger.Warn("reminder schedule skipped", zap.String("id", rm.ID), zap.Error(err))
		return
	}
	id := rm.ID
	entry := r.cron.AddSchedule(sched, scheduler.FuncJob(func(ctx context.Context) {
		r.fire(ctx, id)
	}))
	r.mu.Lock()
	r.entries[id] = entry
	r.mu.Unlock()
}

func (r *Reminders) unschedule(id string) {
	r.mu.Lock()
	entry, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		r.cron.Remove(entry)
	}
}

// fire 触发时重新读取记录，已删除或停用的提醒不发送
func (r *Reminders) fire(ctx context.Context, id string) {
	rm, ok := r.repo.Get(id)
	if !ok || !rm.IsActive {
		return
	}
	r.Dispatch(ctx, rm)
	if rm.Frequency == models.FrequencyOnce {
		r.unschedule(id)
	}
}

// Dispatch 按提醒方式发送短信和/或 WhatsApp，返回第一个错误
func (r *Reminders) Dispatch(ctx context.Context, rm models.Reminder) error {
	if rm.PhoneNumber == "" {
		logger.Debug("reminder has no phone number", zap.String("id", rm.ID))
		return nil
	}
	var channels []notification.Channel
	if rm.Method.UsesSMS() {
		channels = append(channels, notification.ChannelSMS)
	}
	if rm.Method.UsesWhatsApp() {
		channels = append(channels, notification.ChannelWhatsApp)
	}

	var first error
	for _, ch := range channels {
		err := r.notifier.Send(ctx, notification.Message{
			Channel: ch,
			Phone:   rm.PhoneNumber,
			Title:   rm.Title,
			Body:    reminderBody(rm),
		})
		r.opts.Observer.RecordNotification(string(ch), err)
		if err != nil {
			logger.Error("reminder notification failed", zap.String("id", rm.ID), zap.String("channel", string(ch)), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	r.opts.Publisher.Publish(PanelReminders, "dispatched", map[string]string{"id": rm.ID})
	return first
}

func reminderBody(rm models.Reminder) string {
	if rm.Description == "" {
		return fmt.Sprintf("%s at %s", rm.Title, rm.Time)
	}
	return fmt.Sprintf("%s at %s: %s", rm.Title, rm.Time, rm.Description)
}

// ReminderSchedule 由时间和频率推导 cron 计划；
// weekly 取 nextDue 的星期，monthly 取 nextDue 的日期，once 为 nextDue 之后第一个 HH:MM
func ReminderSchedule(rm models.Reminder, loc *time.Location) (cron.Schedule, error) {
	hm, err := time.Parse(reminderTimeLayout, rm.Time)
	if err != nil {
		return nil, fmt.Errorf("parse reminder time %q: %w", rm.Time, err)
	}
	if loc == nil {
		loc = time.Local
	}
	due := rm.NextDue.In(loc)
	h, m := hm.Hour(), hm.Minute()

	var expr string
	switch rm.Frequency {
	case models.FrequencyDaily:
		expr = fmt.Sprintf("%d %d * * *", m, h)
	case models.FrequencyWeekly:
		expr = fmt.Sprintf("%d %d * * %d", m, h, int(due.Weekday()))
	case models.FrequencyMonthly:
		expr = fmt.Sprintf("%d %d %d * *", m, h, due.Day())
	case models.FrequencyOnce:
		at := time.Date(due.Year(), due.Month(), due.Day(), h, m, 0, 0, loc)
		if at.Before(due) {
			at = at.AddDate(0, 0, 1)
		}
		return scheduler.At(at), nil
	default:
		return nil, fmt.Errorf("unknown frequency %q", rm.Frequency)
	}
	return cron.ParseStandard(expr)
}
