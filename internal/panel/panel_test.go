package panel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/notification"
	"HealthPortal/pkg/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type published struct {
	Topic, Name string
	Data        interface{}
}

// recorder 同时实现 sse.Publisher 和 Observer
type recorder struct {
	mu            sync.Mutex
	events        []published
	ops           []string
	chats         []string
	notifications []string
}

func (r *recorder) Publish(topic, name string, data interface{}) {
	r.mu.Lock()
	r.events = append(r.events, published{topic, name, data})
	r.mu.Unlock()
}

func (r *recorder) RecordPanelOperation(panel, op string) {
	r.mu.Lock()
	r.ops = append(r.ops, panel+"/"+op)
	r.mu.Unlock()
}

func (r *recorder) RecordChatExchange(outcome string, _ time.Duration) {
	r.mu.Lock()
	r.chats = append(r.chats, outcome)
	r.mu.Unlock()
}

func (r *recorder) RecordNotification(channel string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	r.mu.Lock()
	r.notifications = append(r.notifications, channel+"/"+status)
	r.mu.Unlock()
}

func (r *recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func (r *recorder) Notifications() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notifications...)
}

func (r *recorder) Chats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.chats...)
}

func testOptions(rec *recorder) Options {
	return Options{Publisher: rec, Observer: rec, Clock: func() time.Time { return testNow }}
}

// fakeSender 记录发送的消息，err 不为空时返回错误
type fakeSender struct {
	mu   sync.Mutex
	sent []notification.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg notification.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) Sent() []notification.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notification.Message(nil), f.sent...)
}

func TestNavigatorSelect(t *testing.T) {
	n := NewNavigator("")
	assert.Equal(t, models.ViewDashboard, n.Current())

	assert.Equal(t, models.ViewForum, n.Select("forum"))
	assert.Equal(t, models.ViewForum, n.Current())

	assert.Equal(t, models.ViewDashboard, n.Select("settings"))
	assert.Equal(t, models.ViewDashboard, n.Current())
	assert.Len(t, n.Menu(), len(models.Menu))
}

func TestAlertsMarkAsRead(t *testing.T) {
	rec := &recorder{}
	a := NewAlerts(store.NewMemory(store.Append, models.SeedAlerts(testNow)...), testOptions(rec))

	assert.Equal(t, models.AlertStats{Critical: 1, Warning: 1, Info: 1, Unread: 2}, a.Stats())

	got, ok := a.MarkAsRead("1")
	require.True(t, ok)
	assert.True(t, got.IsRead)
	assert.Equal(t, 1, a.Stats().Unread)

	// 已读保持已读，不重复发布
	got, ok = a.MarkAsRead("1")
	require.True(t, ok)
	assert.True(t, got.IsRead)
	assert.Equal(t, []string{"alerts/read"}, rec.Ops())

	_, ok = a.MarkAsRead("missing")
	assert.False(t, ok)
	assert.Len(t, a.List(), 3)
}

func TestVaccinationStats(t *testing.T) {
	v := NewVaccinations(store.NewMemory(store.Append, models.SeedVaccinations(testNow)...), nil, Options{})
	s := v.Stats()
	assert.Equal(t, 2, s.Due)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 25, s.CompletionRate)

	empty := NewVaccinations(store.NewMemory[models.Vaccination](store.Append), nil, Options{})
	assert.Equal(t, 0, empty.Stats().CompletionRate)
}

func TestVaccinationScheduleReminder(t *testing.T) {
	rec := &recorder{}
	sender := &fakeSender{}
	v := NewVaccinations(store.NewMemory(store.Append, models.SeedVaccinations(testNow)...), sender, testOptions(rec))
	ctx := context.Background()

	ok, err := v.ScheduleReminder(ctx, "1", "   ")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.ScheduleReminder(ctx, "missing", "+919876543210")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, sender.Sent())

	ok, err = v.ScheduleReminder(ctx, "1", "+919876543210")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, sender.Sent(), 1)
	assert.Equal(t, "+919876543210", sender.Sent()[0].Phone)
	assert.Equal(t, notification.ChannelSMS, sender.Sent()[0].Channel)
	assert.Equal(t, []string{"sms/sent"}, rec.Notifications())

	sender.err = assert.AnError
	ok, err = v.ScheduleReminder(ctx, "1", "+919876543210")
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, ok)
}

func TestAssess(t *testing.T) {
	s := NewSymptoms(models.SymptomCatalog())

	high := s.AssessByNames([]string{"Chest pain"})
	assert.Equal(t, models.UrgencyHigh, high.Urgency)
	assert.Equal(t, "Requires Immediate Medical Attention", high.Condition)

	medium := s.AssessByNames([]string{"Fever", "Dizziness"})
	assert.Equal(t, models.UrgencyMedium, medium.Urgency)
	require.Len(t, medium.Selected, 2)

	low := s.AssessByNames([]string{"Headache"})
	assert.Equal(t, models.UrgencyLow, low.Urgency)
	assert.Equal(t, "Headache", low.Selected[0].Name)

	// 一个 moderate 不够
	assert.Equal(t, models.UrgencyLow, s.AssessByIDs([]string{"1"}).Urgency)
	// severe 优先
	assert.Equal(t, models.UrgencyHigh, s.AssessByIDs([]string{"1", "10", "4"}).Urgency)
	// 未知 id 忽略
	unknown := s.AssessByIDs([]string{"99"})
	assert.Equal(t, models.UrgencyLow, unknown.Urgency)
	assert.Empty(t, unknown.Selected)
}

func TestAssessDoesNotShareSources(t *testing.T) {
	a := Assess(nil)
	a.Sources[0] = "changed"
	assert.Equal(t, "WHO Self-Care Guidelines", Assess(nil).Sources[0])
}

func TestRewardsSummary(t *testing.T) {
	r := NewRewards(models.SeedAchievements(), models.RewardCatalog(), models.SeedPoints, Options{})
	s := r.Summary()
	assert.Equal(t, 850, s.Points)
	assert.Equal(t, 5, s.Level)
	assert.Equal(t, 150, s.PointsToNextLevel)
	assert.InDelta(t, 33.33, s.LevelProgress, 0.01)
	assert.Equal(t, 2, s.Unlocked)
	assert.Equal(t, 7, s.DayStreak)

	for _, a := range r.Achievements() {
		assert.GreaterOrEqual(t, a.Progress, 0)
		assert.LessOrEqual(t, a.Progress, a.MaxProgress)
		if a.IsCompleted {
			assert.Equal(t, a.MaxProgress, a.Progress)
		}
	}
}

func TestRewardsNormalizeOnLoad(t *testing.T) {
	r := NewRewards([]models.Achievement{
		{ID: "x", Progress: 9, MaxProgress: 3},
		{ID: "y", Progress: 1, MaxProgress: 4, IsCompleted: true},
	}, nil, 0, Options{})
	got := r.Achievements()
	assert.Equal(t, 3, got[0].Progress)
	assert.Equal(t, 4, got[1].Progress)
}

func TestRewardsRedeem(t *testing.T) {
	rec := &recorder{}
	r := NewRewards(models.SeedAchievements(), models.RewardCatalog(), models.SeedPoints, testOptions(rec))

	s, err := r.Redeem("2") // 800
	require.NoError(t, err)
	assert.Equal(t, 50, s.Points)

	_, err = r.Redeem("3") // 300
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.Equal(t, 50, r.Summary().Points)

	_, err = r.Redeem("nope")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Equal(t, []string{"rewards/redeemed"}, rec.Ops())
}
