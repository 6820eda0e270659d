package panel

import "HealthPortal/internal/models"

var (
	highAssessment = models.Assessment{
		Condition:   "Requires Immediate Medical Attention",
		Probability: "High Priority",
		Urgency:     models.UrgencyHigh,
		Advice:      "Your symptoms indicate a potentially serious condition. Please seek immediate medical attention or call emergency services (108).",
		Sources:     []string{"WHO Guidelines", "Ministry of Health & Family Welfare"},
	}
	mediumAssessment = models.Assessment{
		Condition:   "Common Viral Infection (Possible)",
		Probability: "Moderate",
		Urgency:     models.UrgencyMedium,
		Advice:      "Your symptoms suggest a possible viral infection. Monitor your symptoms, stay hydrated, and consult a healthcare provider if symptoms worsen.",
		Sources:     []string{"CDC Guidelines", "Indian Medical Association"},
	}
	lowAssessment = models.Assessment{
		Condition:   "Minor Illness (Likely)",
		Probability: "Low",
		Urgency:     models.UrgencyLow,
		Advice:      "Your symptoms appear to be mild. Rest, stay hydrated, and monitor your condition. Consult a doctor if symptoms persist or worsen.",
		Sources:     []string{"WHO Self-Care Guidelines", "National Health Portal"},
	}
)

// Assess 规则：任一 severe 为 high；否则至少两个 moderate 为 medium；其余 low
func Assess(selected []models.Symptom) models.Assessment {
	severe, moderate := 0, 0
	for _, s := range selected {
		switch s.Severity {
		case models.SeveritySevere:
			severe++
		case models.SeverityModerate:
			moderate++
		}
	}

	var a models.Assessment
	switch {
	case severe > 0:
		a = highAssessment
	case moderate >= 2:
		a = mediumAssessment
	default:
		a = lowAssessment
	}
	a.Sources = append([]string(nil), a.Sources...)
	a.Selected = append([]models.Symptom{}, selected...)
	return a
}

type Symptoms struct {
	catalog []models.Symptom
}

func NewSymptoms(catalog []models.Symptom) *Symptoms {
	return &Symptoms{catalog: catalog}
}

func (s *Symptoms) Catalog() []models.Symptom {
	return append([]models.Symptom(nil), s.catalog...)
}

// AssessByIDs 按目录解析，未知 id 和重复 id 忽略
func (s *Symptoms) AssessByIDs(ids []string) models.Assessment {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var selected []models.Symptom
	for _, sym := range s.catalog {
		if want[sym.ID] {
			selected = append(selected, sym)
		}
	}
	return Assess(selected)
}

// AssessByNames 名称大小写敏感，与目录一致
func (s *Symptoms) AssessByNames(names []string) models.Assessment {
	ids := make([]string, 0, len(names))
	for _, n := range names {
		for _, sym := range s.catalog {
			if sym.Name == n {
				ids = append(ids, sym.ID)
			}
		}
	}
	return s.AssessByIDs(ids)
}
