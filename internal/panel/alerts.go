package panel

import (
	"HealthPortal/internal/models"
	"HealthPortal/pkg/store"
)

type Alerts struct {
	repo store.Repository[models.Alert]
	opts Options
}

func NewAlerts(repo store.Repository[models.Alert], opts Options) *Alerts {
	return &Alerts{repo: repo, opts: opts.withDefaults()}
}

func (a *Alerts) List() []models.Alert { return a.repo.List() }

// MarkAsRead 幂等，已读的告警保持已读
func (a *Alerts) MarkAsRead(id string) (models.Alert, bool) {
	changed := false
	rec, ok := a.repo.Update(id, func(al *models.Alert) {
		changed = !al.IsRead
		al.IsRead = true
	})
	if ok && changed {
		a.opts.emit(PanelAlerts, "read", rec)
	}
	return rec, ok
}

func (a *Alerts) Stats() models.AlertStats {
	var s models.AlertStats
	for _, al := range a.repo.List() {
		switch al.Type {
		case models.AlertCritical:
			s.Critical++
		case models.AlertWarning:
			s.Warning++
		case models.AlertInfo:
			s.Info++
		}
		if !al.IsRead {
			s.Unread++
		}
	}
	return s
}
