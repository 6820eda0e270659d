package panel

import (
	"context"
	"fmt"
	"math"
	"strings"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/notification"
	"HealthPortal/pkg/store"
)

type Vaccinations struct {
	repo     store.Repository[models.Vaccination]
	notifier notification.Sender
	opts     Options
}

func NewVaccinations(repo store.Repository[models.Vaccination], notifier notification.Sender, opts Options) *Vaccinations {
	if notifier == nil {
		notifier = notification.LogSender{}
	}
	return &Vaccinations{repo: repo, notifier: notifier, opts: opts.withDefaults()}
}

func (v *Vaccinations) List() []models.Vaccination { return v.repo.List() }

func (v *Vaccinations) Stats() models.VaccinationStats {
	var s models.VaccinationStats
	all := v.repo.List()
	for _, vac := range all {
		switch vac.Status {
		case models.VaccinationDue:
			s.Due++
		case models.VaccinationOverdue:
			s.Overdue++
		case models.VaccinationCompleted:
			s.Completed++
		}
	}
	if len(all) > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(len(all)) * 100))
	}
	return s
}

// ScheduleReminder 电话为空或疫苗不存在时什么都不做，返回 false
func (v *Vaccinations) ScheduleReminder(ctx context.Context, id, phone string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false, nil
	}
	vac, ok := v.repo.Get(id)
	if !ok {
		return false, nil
	}
	msg := notification.Message{
		Channel: notification.ChannelSMS,
		Phone:   phone,
		Title:   vac.Name,
		Body:    fmt.Sprintf("Reminder: %s is due on %s.", vac.Name, vac.DueDate.Format("02 Jan 2006")),
	}
	err := v.notifier.Send(ctx, msg)
	v.opts.Observer.RecordNotification(string(msg.Channel), err)
	if err != nil {
		return false, err
	}
	v.opts.emit(PanelVaccinations, "reminder_scheduled", map[string]string{"id": id})
	return true, nil
}
