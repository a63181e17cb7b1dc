package telemetry

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/process"
)

// HostUsage is the process resource snapshot reported alongside the
// run-id telemetry line. It is sampled once, after a run completes;
// the simulation core never observes the environment.
type HostUsage struct {
	CPUPercent float64
	RSSBytes   uint64
}

// CurrentUsage samples this process's own CPU and memory usage.
func CurrentUsage() (HostUsage, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return HostUsage{}, fmt.Errorf("telemetry: inspecting own process: %w", err)
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		return HostUsage{}, fmt.Errorf("telemetry: reading cpu percent: %w", err)
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return HostUsage{}, fmt.Errorf("telemetry: reading memory info: %w", err)
	}

	return HostUsage{CPUPercent: cpuPercent, RSSBytes: memInfo.RSS}, nil
}
