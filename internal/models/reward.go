package models

type AchievementCategory string

const (
	AchievementDaily   AchievementCategory = "daily"
	AchievementWeekly  AchievementCategory = "weekly"
	AchievementMonthly AchievementCategory = "monthly"
	AchievementSpecial AchievementCategory = "special"
)

// Achievement 0 <= Progress <= MaxProgress, IsCompleted 时 Progress == MaxProgress
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Points      int                 `json:"points"`
	Category    AchievementCategory `json:"category"`
	IsCompleted bool                `json:"isCompleted"`
	Progress    int                 `json:"progress"`
	MaxProgress int                 `json:"maxProgress"`
	Icon        string              `json:"icon"`
}

func (a Achievement) GetID() string { return a.ID }

// Normalize clamps progress into range and pins completed records to the max.
func (a Achievement) Normalize() Achievement {
	if a.MaxProgress < 0 {
		a.MaxProgress = 0
	}
	if a.Progress < 0 {
		a.Progress = 0
	}
	if a.Progress > a.MaxProgress {
		a.Progress = a.MaxProgress
	}
	if a.IsCompleted {
		a.Progress = a.MaxProgress
	}
	return a
}

type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Category    string `json:"category"`
}

func (r Reward) GetID() string { return r.ID }

type RewardsSummary struct {
	Points            int     `json:"points"`
	Level             int     `json:"level"`
	PointsToNextLevel int     `json:"pointsToNextLevel"`
	LevelProgress     float64 `json:"levelProgress"`
	Unlocked          int     `json:"unlocked"`
	DayStreak         int     `json:"dayStreak"`
}

const (
	SeedPoints            = 850
	SeedLevel             = 5
	SeedPointsToNextLevel = 150
	SeedDayStreak         = 7
	PointsPerLevel        = 200
)

func SeedAchievements() []Achievement {
	return []Achievement{
		{ID: "1", Title: "Daily Health Check", Description: "Complete 7 consecutive daily health check-ins", Points: 100, Category: AchievementWeekly, IsCompleted: true, Progress: 7, MaxProgress: 7, Icon: "✅"},
		{ID: "2", Title: "Exercise Streak", Description: "Exercise for 5 days in a row", Points: 150, Category: AchievementWeekly, Progress: 3, MaxProgress: 5, Icon: "💪"},
		{ID: "3", Title: "Medication Adherence", Description: "Take medications on time for 30 days", Points: 300, Category: AchievementMonthly, Progress: 22, MaxProgress: 30, Icon: "💊"},
		{ID: "4", Title: "Health Champion", Description: "Help 3 community members with health tips", Points: 200, Category: AchievementSpecial, Progress: 1, MaxProgress: 3, Icon: "🌟"},
		{ID: "5", Title: "Symptom Tracker", Description: "Log symptoms for 14 consecutive days", Points: 120, Category: AchievementWeekly, Progress: 8, MaxProgress: 14, Icon: "📊"},
		{ID: "6", Title: "Vaccination Hero", Description: "Complete all scheduled vaccinations", Points: 250, Category: AchievementSpecial, IsCompleted: true, Progress: 3, MaxProgress: 3, Icon: "🛡️"},
	}
}

func RewardCatalog() []Reward {
	return []Reward{
		{ID: "1", Name: "Health Certificate", Description: "Digital health achievement certificate", Cost: 500, Category: "recognition"},
		{ID: "2", Name: "Free Health Consultation", Description: "15-minute video call with a doctor", Cost: 800, Category: "service"},
		{ID: "3", Name: "Medication Reminder Plus", Description: "Premium reminder features for 3 months", Cost: 300, Category: "feature"},
		{ID: "4", Name: "Health Report Analysis", Description: "AI-powered detailed analysis of your reports", Cost: 600, Category: "service"},
	}
}
