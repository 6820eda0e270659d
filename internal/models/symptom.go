package models

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

type Symptom struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
}

func (s Symptom) GetID() string { return s.ID }

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Assessment 症状评估结果，Selected 原样回显
type Assessment struct {
	Condition   string    `json:"condition"`
	Probability string    `json:"probability"`
	Urgency     Urgency   `json:"urgency"`
	Advice      string    `json:"advice"`
	Sources     []string  `json:"sources"`
	Selected    []Symptom `json:"selected"`
}

func SymptomCatalog() []Symptom {
	return []Symptom{
		{ID: "1", Name: "Fever", Severity: SeverityModerate},
		{ID: "2", Name: "Headache", Severity: SeverityMild},
		{ID: "3", Name: "Cough", Severity: SeverityMild},
		{ID: "4", Name: "Shortness of breath", Severity: SeveritySevere},
		{ID: "5", Name: "Chest pain", Severity: SeveritySevere},
		{ID: "6", Name: "Nausea", Severity: SeverityMild},
		{ID: "7", Name: "Fatigue", Severity: SeverityMild},
		{ID: "8", Name: "Body aches", Severity: SeverityMild},
		{ID: "9", Name: "Sore throat", Severity: SeverityMild},
		{ID: "10", Name: "Dizziness", Severity: SeverityModerate},
		{ID: "11", Name: "Abdominal pain", Severity: SeverityModerate},
		{ID: "12", Name: "Rash", Severity: SeverityMild},
	}
}
