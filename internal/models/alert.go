package models

import "time"

type AlertSeverity string

const (
	AlertCritical AlertSeverity = "critical"
	AlertWarning  AlertSeverity = "warning"
	AlertInfo     AlertSeverity = "info"
)

// Alert 健康预警，IsRead 只能从 false 变为 true
type Alert struct {
	ID        string        `json:"id"`
	Type      AlertSeverity `json:"type"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Location  string        `json:"location"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
	IsRead    bool          `json:"isRead"`
}

func (a Alert) GetID() string { return a.ID }

type AlertStats struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
	Unread   int `json:"unread"`
}

func SeedAlerts(now time.Time) []Alert {
	return []Alert{
		{
			ID:        "1",
			Type:      AlertCritical,
			Title:     "Dengue Outbreak Alert",
			Message:   "High number of dengue cases reported in your district. Take immediate precautions - use mosquito nets, wear full sleeves, and remove standing water.",
			Location:  "Bangalore Urban",
			Timestamp: now,
			Source:    "Ministry of Health & Family Welfare",
		},
		{
			ID:        "2",
			Type:      AlertWarning,
			Title:     "Seasonal Flu Advisory",
			Message:   "Flu cases increasing due to weather changes. Get vaccinated and maintain hygiene. Vulnerable populations should take extra care.",
			Location:  "Karnataka State",
			Timestamp: now.Add(-time.Hour),
			Source:    "State Health Department",
		},
		{
			ID:        "3",
			Type:      AlertInfo,
			Title:     "COVID-19 Vaccination Drive",
			Message:   "Free COVID-19 booster shots available at nearby health centers. Senior citizens and immunocompromised individuals are prioritized.",
			Location:  "All Districts",
			Timestamp: now.Add(-24 * time.Hour),
			Source:    "National Health Mission",
			IsRead:    true,
		},
	}
}
