package metrics

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemStats 健康检查返回的系统快照
type SystemStats struct {
	Timestamp time.Time    `json:"timestamp"`
	CPU       CPUStats     `json:"cpu"`
	Memory    MemoryStats  `json:"memory"`
	Process   ProcessStats `json:"process"`
	Host      HostStats    `json:"host"`
	Runtime   RuntimeStats `json:"runtime"`
}

type CPUStats struct {
	UsagePercent float64 `json:"usage_percent"`
	CountLogical int     `json:"count_logical"`
}

type MemoryStats struct {
	Total        uint64  `json:"total"`
	Available    uint64  `json:"available"`
	Used         uint64  `json:"used"`
	UsagePercent float64 `json:"usage_percent"`
}

type ProcessStats struct {
	PID        int32   `json:"pid"`
	MemoryRSS  uint64  `json:"memory_rss"`
	NumThreads int32   `json:"num_threads"`
	Uptime     float64 `json:"uptime_seconds"`
}

type HostStats struct {
	Hostname string `json:"hostname"`
	Uptime   uint64 `json:"uptime"`
	Platform string `json:"platform"`
}

type RuntimeStats struct {
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	NumGC      uint32 `json:"num_gc"`
}

// Collect 采集一次系统快照，单项失败时留零值
func Collect() *SystemStats {
	stats := &SystemStats{Timestamp: time.Now()}

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		stats.CPU.UsagePercent = pct[0]
	}
	stats.CPU.CountLogical = runtime.NumCPU()

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.Memory.Total = vm.Total
		stats.Memory.Available = vm.Available
		stats.Memory.Used = vm.Used
		stats.Memory.UsagePercent = vm.UsedPercent
	}

	pid := int32(os.Getpid())
	stats.Process.PID = pid
	if p, err := process.NewProcess(pid); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			stats.Process.MemoryRSS = mi.RSS
		}
		if n, err := p.NumThreads(); err == nil {
			stats.Process.NumThreads = n
		}
		if ct, err := p.CreateTime(); err == nil {
			stats.Process.Uptime = time.Since(time.UnixMilli(ct)).Seconds()
		}
	}

	if hi, err := host.Info(); err == nil {
		stats.Host.Hostname = hi.Hostname
		stats.Host.Uptime = hi.Uptime
		stats.Host.Platform = hi.Platform
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	stats.Runtime.Goroutines = runtime.NumGoroutine()
	stats.Runtime.HeapAlloc = ms.HeapAlloc
	stats.Runtime.NumGC = ms.NumGC
	return stats
}

// Observe 把快照写入系统指标
func (m *Metrics) Observe(s *SystemStats) {
	m.SetSystemCPUUsage(s.CPU.UsagePercent)
	m.SetSystemMemoryUsage("used", s.Memory.Used)
	m.SetSystemMemoryUsage("available", s.Memory.Available)
	m.SetSystemMemoryUsage("process_rss", s.Process.MemoryRSS)
}
