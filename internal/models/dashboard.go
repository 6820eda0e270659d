package models

type HealthMetric struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Status string `json:"status"`
	Change string `json:"change"`
	Color  string `json:"color"`
}

type ActivityItem struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

type Dashboard struct {
	Greeting string         `json:"greeting"`
	Goal     string         `json:"goal"`
	Metrics  []HealthMetric `json:"metrics"`
	Activity []ActivityItem `json:"activity"`
}

func SeedDashboard(p UserProfile) Dashboard {
	first := p.Name
	for i, r := range p.Name {
		if r == ' ' {
			first = p.Name[:i]
			break
		}
	}
	return Dashboard{
		Greeting: "Welcome back, " + first + "!",
		Goal:     "Complete your daily health checkup",
		Metrics: []HealthMetric{
			{Title: "Blood Pressure", Value: "120/80", Status: "Normal", Change: "-2%", Color: "green"},
			{Title: "Heart Rate", Value: "72 BPM", Status: "Healthy", Change: "+1%", Color: "blue"},
			{Title: "Next Checkup", Value: "15 Days", Status: "Scheduled", Color: "purple"},
			{Title: "Health Score", Value: "8.5/10", Status: "Excellent", Change: "+0.5", Color: "emerald"},
		},
		Activity: []ActivityItem{
			{Type: "warning", Message: "Dengue cases reported in your area - take precautions", Time: "2 hours ago"},
			{Type: "info", Message: "Flu vaccination reminder - due next week", Time: "1 day ago"},
			{Type: "success", Message: "Completed 7-day exercise streak!", Time: "2 days ago"},
		},
	}
}
