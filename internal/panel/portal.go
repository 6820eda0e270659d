package panel

import (
	"context"
	"time"

	"go.uber.org/zap"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/llm"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/notification"
	"HealthPortal/pkg/scheduler"
	"HealthPortal/pkg/search"
	"HealthPortal/pkg/sse"
	"HealthPortal/pkg/store"
)

type Config struct {
	Assistant           llm.Assistant
	Notifier            notification.Sender
	Search              search.Engine
	ReportAnalysisDelay time.Duration
	ChatTimeout         time.Duration
	Location            *time.Location
	Publisher           sse.Publisher
	Observer            Observer
	Clock               func() time.Time
}

// Portal 所有面板控制器的集合，种子数据在 New 时按当前时间生成
type Portal struct {
	Navigator    *Navigator
	Alerts       *Alerts
	Reminders    *Reminders
	Vaccinations *Vaccinations
	Symptoms     *Symptoms
	Forum        *Forum
	Reports      *Reports
	Exercise     *Exercise
	Rewards      *Rewards
	Chat         *Chat

	profile models.UserProfile
	sched   *scheduler.Scheduler
	cron    *scheduler.Cron
	search  search.Engine
}

func New(cfg Config) *Portal {
	opts := Options{Publisher: cfg.Publisher, Observer: cfg.Observer, Clock: cfg.Clock}.withDefaults()
	now := opts.Clock()
	sched := scheduler.New()
	cr := scheduler.NewCron(cfg.Location)

	return &Portal{
		Navigator:    NewNavigator(string(models.ViewDashboard)),
		Alerts:       NewAlerts(store.NewMemory(store.Append, models.SeedAlerts(now)...), opts),
		Reminders:    NewReminders(store.NewMemory(store.Prepend, models.SeedReminders(now)...), cr, cfg.Notifier, opts),
		Vaccinations: NewVaccinations(store.NewMemory(store.Append, models.SeedVaccinations(now)...), cfg.Notifier, opts),
		Symptoms:     NewSymptoms(models.SymptomCatalog()),
		Forum:        NewForum(store.NewMemory(store.Prepend, models.SeedPosts(now)...), cfg.Search, opts),
		Reports:      NewReports(store.NewMemory(store.Prepend, models.SeedReports(now)...), sched, cfg.ReportAnalysisDelay, opts),
		Exercise:     NewExercise(models.ExerciseCatalog(), sched, opts),
		Rewards:      NewRewards(models.SeedAchievements(), models.RewardCatalog(), models.SeedPoints, opts),
		Chat:         NewChat(cfg.Assistant, cfg.ChatTimeout, opts),
		profile:      models.DefaultProfile(),
		sched:        sched,
		cron:         cr,
		search:       cfg.Search,
	}
}

// Start 建立提醒计划并索引已有帖子
func (p *Portal) Start(ctx context.Context) error {
	if err := p.Forum.IndexAll(ctx); err != nil {
		return err
	}
	p.Reminders.Start()
	logger.Info("portal started", zap.Int("reminders_scheduled", p.Reminders.Scheduled()))
	return nil
}

func (p *Portal) Profile() models.UserProfile { return p.profile }

func (p *Portal) Dashboard() models.Dashboard { return models.SeedDashboard(p.profile) }

// Close 取消进行中的聊天和所有定时任务，等待 goroutine 退出
func (p *Portal) Close() error {
	p.Chat.Close()
	p.Exercise.Close()
	p.Reminders.Stop()
	p.sched.Stop()
	if p.search != nil {
		return p.search.Close()
	}
	return nil
}
