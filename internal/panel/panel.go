// Package panel holds one controller per portal panel. Every controller
// owns a repository and mutates it atomically; the HTTP layer only
// translates requests into controller calls.
package panel

import (
	"time"

	"HealthPortal/pkg/sse"
)

// Panel names, used as SSE topics and metric labels.
const (
	PanelAlerts       = "alerts"
	PanelReminders    = "reminders"
	PanelVaccinations = "vaccinations"
	PanelForum        = "forum"
	PanelReports      = "reports"
	PanelExercise     = "exercise"
	PanelRewards      = "rewards"
	PanelChat         = "chat"
)

// Observer receives business metrics. *metrics.Metrics implements it.
type Observer interface {
	RecordPanelOperation(panel, operation string)
	RecordChatExchange(outcome string, took time.Duration)
	RecordNotification(channel string, err error)
}

type nopObserver struct{}

func (nopObserver) RecordPanelOperation(string, string)          {}
func (nopObserver) RecordChatExchange(string, time.Duration)     {}
func (nopObserver) RecordNotification(string, error)             {}

// Options are shared by every controller.
type Options struct {
	Publisher sse.Publisher
	Observer  Observer
	Clock     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Publisher == nil {
		o.Publisher = sse.Nop{}
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// emit 发布变更事件并计数
func (o Options) emit(panel, op string, data interface{}) {
	o.Observer.RecordPanelOperation(panel, op)
	o.Publisher.Publish(panel, op, data)
}
