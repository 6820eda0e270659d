package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/scheduler"
	"HealthPortal/pkg/store"
)

func TestReportType(t *testing.T) {
	cases := map[string]string{
		"Blood_Test_Jan.pdf": "Blood Test",
		"lab-results.png":    "Blood Test",
		"my_EKG.jpg":         "ECG",
		"chest-x-ray.jpeg":   "X-Ray",
		"knee_MRI.pdf":       "MRI",
		"head_scan.doc":      "CT Scan",
		"blood_ct.pdf":       "Blood Test",
		"prescription.docx":  "Medical Report",
	}
	for name, want := range cases {
		assert.Equal(t, want, ReportType(name), name)
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatSize(0))
	assert.Equal(t, "512 Bytes", FormatSize(512))
	assert.Equal(t, "1 KB", FormatSize(1024))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "2.4 MB", FormatSize(2516582))
	assert.Equal(t, "3 GB", FormatSize(3<<30))
	assert.Equal(t, "2048 GB", FormatSize(2<<40))
}

func newTestReports(t *testing.T, rec *recorder, delay time.Duration) *Reports {
	sched := scheduler.New()
	t.Cleanup(sched.Stop)
	return NewReports(store.NewMemory(store.Prepend, models.SeedReports(testNow)...), sched, delay, testOptions(rec))
}

func TestReportUploadRejectsExtension(t *testing.T) {
	r := newTestReports(t, &recorder{}, time.Hour)

	_, err := r.Upload("notes.txt", 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInvalid))
	_, err = r.Upload("", 100)
	assert.Error(t, err)
	assert.Len(t, r.List(), 3)
}

func TestReportUploadThenAnalyzed(t *testing.T) {
	rec := &recorder{}
	r := newTestReports(t, rec, 20*time.Millisecond)

	rep, err := r.Upload("ECG_march.PDF", 1887437)
	require.NoError(t, err)
	assert.Equal(t, models.ReportProcessing, rep.Status)
	assert.Equal(t, "ECG", rep.Type)
	assert.Equal(t, "1.8 MB", rep.Size)
	assert.Equal(t, rep.ID, r.List()[0].ID)

	assert.Eventually(t, func() bool {
		return r.List()[0].Status == models.ReportAnalyzed
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.ReportPendingSummary, r.List()[0].AISummary)
	assert.Equal(t, 0, r.Pending())
	assert.Contains(t, rec.Ops(), "reports/analyzed")
}

func TestReportDeleteCancelsAnalysis(t *testing.T) {
	rec := &recorder{}
	r := newTestReports(t, rec, 30*time.Millisecond)

	rep, err := r.Upload("xray.jpg", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Pending())
	assert.True(t, r.Delete(rep.ID))
	assert.Equal(t, 0, r.Pending())

	time.Sleep(60 * time.Millisecond)
	for _, got := range r.List() {
		assert.NotEqual(t, rep.ID, got.ID)
	}
	assert.NotContains(t, rec.Ops(), "reports/analyzed")
}

func TestReportDeleteAnyStatus(t *testing.T) {
	r := newTestReports(t, &recorder{}, time.Hour)
	assert.True(t, r.Delete("1")) // analyzed
	assert.True(t, r.Delete("3")) // processing
	assert.False(t, r.Delete("3"))
	assert.Len(t, r.List(), 1)
}

func TestReportPendingDrainsWithImmediateAnalysis(t *testing.T) {
	r := newTestReports(t, &recorder{}, time.Nanosecond)

	for i := 0; i < 50; i++ {
		_, err := r.Upload("blood.pdf", 2048)
		require.NoError(t, err)
	}
	assert.Eventually(t, func() bool {
		for _, rep := range r.List() {
			if rep.Status != models.ReportAnalyzed {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, r.Pending())
}
