package models

// View 侧边栏可选的面板
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewChat         View = "chat"
	ViewSymptoms     View = "symptoms"
	ViewVaccinations View = "vaccinations"
	ViewAlerts       View = "alerts"
	ViewExercise     View = "exercise"
	ViewForum        View = "forum"
	ViewReports      View = "reports"
	ViewReminders    View = "reminders"
	ViewRewards      View = "rewards"
)

type MenuItem struct {
	ID    View   `json:"id"`
	Label string `json:"label"`
}

var Menu = []MenuItem{
	{ID: ViewDashboard, Label: "Dashboard"},
	{ID: ViewChat, Label: "AI Assistant"},
	{ID: ViewSymptoms, Label: "Symptom Checker"},
	{ID: ViewVaccinations, Label: "Vaccinations"},
	{ID: ViewAlerts, Label: "Health Alerts"},
	{ID: ViewExercise, Label: "Exercise Guide"},
	{ID: ViewForum, Label: "Community"},
	{ID: ViewReports, Label: "Upload Reports"},
	{ID: ViewReminders, Label: "Reminders"},
	{ID: ViewRewards, Label: "Health Rewards"},
}

// ParseView 未知值回落到 dashboard
func ParseView(s string) View {
	for _, m := range Menu {
		if string(m.ID) == s {
			return m.ID
		}
	}
	return ViewDashboard
}
