package models

import "time"

type VaccinationStatus string

const (
	VaccinationDue       VaccinationStatus = "due"
	VaccinationOverdue   VaccinationStatus = "overdue"
	VaccinationCompleted VaccinationStatus = "completed"
)

// Vaccination status is seeded and never recomputed from DueDate.
type Vaccination struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	AgeGroup    string            `json:"ageGroup"`
	DueDate     time.Time         `json:"dueDate"`
	Status      VaccinationStatus `json:"status"`
	Description string            `json:"description"`
	Location    string            `json:"location,omitempty"`
}

func (v Vaccination) GetID() string { return v.ID }

type VaccinationStats struct {
	Due            int `json:"due"`
	Overdue        int `json:"overdue"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completionRate"`
}

const day = 24 * time.Hour

func SeedVaccinations(now time.Time) []Vaccination {
	return []Vaccination{
		{
			ID:          "1",
			Name:        "COVID-19 Booster",
			AgeGroup:    "Adults (18+)",
			DueDate:     now.Add(7 * day),
			Status:      VaccinationDue,
			Description: "Third dose of COVID-19 vaccine for enhanced protection",
			Location:    "Primary Health Center, Koramangala",
		},
		{
			ID:          "2",
			Name:        "Influenza Vaccine",
			AgeGroup:    "Senior Citizens (60+)",
			DueDate:     now.Add(14 * day),
			Status:      VaccinationDue,
			Description: "Annual flu vaccination recommended for elderly individuals",
		},
		{
			ID:          "3",
			Name:        "Hepatitis B",
			AgeGroup:    "Adults (18+)",
			DueDate:     now.Add(-7 * day),
			Status:      VaccinationOverdue,
			Description: "Second dose of Hepatitis B vaccine series",
		},
		{
			ID:          "4",
			Name:        "Tetanus",
			AgeGroup:    "Adults (18+)",
			DueDate:     now.Add(-30 * day),
			Status:      VaccinationCompleted,
			Description: "Tetanus toxoid vaccination - valid for 10 years",
		},
	}
}
