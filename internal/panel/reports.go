package panel

import (
	"context"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/scheduler"
	"HealthPortal/pkg/store"
	"HealthPortal/pkg/util"
)

const DefaultReportAnalysisDelay = 3 * time.Second

// 按顺序匹配，第一个命中的关键字决定类型
var reportTypeRules = []struct {
	keywords []string
	kind     string
}{
	{[]string{"blood", "lab"}, "Blood Test"},
	{[]string{"ecg", "ekg"}, "ECG"},
	{[]string{"xray", "x-ray"}, "X-Ray"},
	{[]string{"mri"}, "MRI"},
	{[]string{"ct", "scan"}, "CT Scan"},
}

const defaultReportType = "Medical Report"

// ReportType 由文件名猜测报告类型
func ReportType(filename string) string {
	lower := strings.ToLower(filename)
	for _, rule := range reportTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.kind
			}
		}
	}
	return defaultReportType
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize 1024 进制，最多两位小数，去掉末尾的 0
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

func allowedReport(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range models.AllowedReportExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

type Reports struct {
	repo  store.Repository[models.MedicalReport]
	sched *scheduler.Scheduler
	delay time.Duration
	opts  Options

	mu      sync.Mutex
	pending map[string]context.CancelFunc
}

func NewReports(repo store.Repository[models.MedicalReport], sched *scheduler.Scheduler, delay time.Duration, opts Options) *Reports {
	if delay <= 0 {
		delay = DefaultReportAnalysisDelay
	}
	return &Reports{
		repo:    repo,
		sched:   sched,
		delay:   delay,
		opts:    opts.withDefaults(),
		pending: make(map[string]context.CancelFunc),
	}
}

func (r *Reports) List() []models.MedicalReport { return r.repo.List() }

// Upload 记录为 processing，延迟后变为 analyzed
func (r *Reports) Upload(filename string, size int64) (models.MedicalReport, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || !allowedReport(name) {
		return models.MedicalReport{}, errors.Invalid("unsupported report file type").WithContext("filename", filename)
	}
	rec := models.MedicalReport{
		ID:         util.NewID(),
		Name:       name,
		Type:       ReportType(name),
		UploadDate: r.opts.Clock(),
		Size:       FormatSize(size),
		Status:     models.ReportProcessing,
	}
	r.repo.Add(rec)

	id := rec.ID
	// 持锁登记，analyze 需要同一把锁，因此总在登记之后执行
	r.mu.Lock()
	r.pending[id] = r.sched.OnceAfter(r.delay, scheduler.FuncJob(func(ctx context.Context) {
		r.analyze(id)
	}))
	r.mu.Unlock()

	r.opts.emit(PanelReports, "uploaded", rec)
	return rec, nil
}

// analyze 记录已删除时 Update 不会生效
func (r *Reports) analyze(id string) {
	r.mu.Lock()
	delete(r.pending, id)
	r.mu.Unlock()

	rec, ok := r.repo.Update(id, func(m *models.MedicalReport) {
		m.Status = models.ReportAnalyzed
		m.AISummary = models.ReportPendingSummary
	})
	if !ok {
		logger.Debug("analysis finished for deleted report", zap.String("id", id))
		return
	}
	r.opts.emit(PanelReports, "analyzed", rec)
}

// Delete 无论什么状态都可以删除，并取消未完成的分析
func (r *Reports) Delete(id string) bool {
	r.mu.Lock()
	cancel, ok := r.pending[id]
	delete(r.pending, id)
	r.mu.Unlock()
	if ok {
		cancel()
	}
	if !r.repo.Remove(id) {
		return false
	}
	r.opts.emit(PanelReports, "deleted", map[string]string{"id": id})
	return true
}

// Pending 尚未完成分析的报告数
func (r *Reports) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
