package models

import "time"

type ReportStatus string

const (
	ReportProcessing ReportStatus = "processing"
	ReportAnalyzed   ReportStatus = "analyzed"
	ReportError      ReportStatus = "error"
)

type MedicalReport struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	UploadDate time.Time    `json:"uploadDate"`
	Size       string       `json:"size"`
	Status     ReportStatus `json:"status"`
	AISummary  string       `json:"aiSummary,omitempty"`
}

func (r MedicalReport) GetID() string { return r.ID }

const ReportPendingSummary = "Report uploaded successfully. AI analysis will be available shortly. Please consult with your healthcare provider for detailed interpretation."

// AllowedReportExtensions 上传白名单
var AllowedReportExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

func SeedReports(now time.Time) []MedicalReport {
	return []MedicalReport{
		{
			ID:         "1",
			Name:       "Blood_Test_Report_Jan2025.pdf",
			Type:       "Blood Test",
			UploadDate: now.Add(-day),
			Size:       "2.4 MB",
			Status:     ReportAnalyzed,
			AISummary:  "Blood glucose levels are within normal range. Vitamin D deficiency detected - consider supplementation. Cholesterol levels are slightly elevated.",
		},
		{
			ID:         "2",
			Name:       "ECG_Report_Dec2024.pdf",
			Type:       "ECG",
			UploadDate: now.Add(-30 * day),
			Size:       "1.8 MB",
			Status:     ReportAnalyzed,
			AISummary:  "Heart rhythm is normal. No signs of arrhythmia or other cardiac abnormalities detected in this ECG.",
		},
		{
			ID:         "3",
			Name:       "Chest_Xray_Nov2024.jpg",
			Type:       "X-Ray",
			UploadDate: now.Add(-60 * day),
			Size:       "3.2 MB",
			Status:     ReportProcessing,
		},
	}
}
