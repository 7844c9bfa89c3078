package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	ModelName    string `json:"modelName"`
	LogicalCPUs  int    `json:"logicalCpus"`
	PhysicalCPUs int    `json:"physicalCpus"`
	TotalMemory  uint64 `json:"totalMemory"` // Bytes
}

// DetectHost queries CPU and memory details. Fields that cannot be read
// are left at their zero value, except LogicalCPUs which falls back to
// the Go runtime's count.
func DetectHost() HostInfo {
	info := HostInfo{LogicalCPUs: DefaultBlockCount()}

	if physical, err := cpu.Counts(false); err == nil {
		info.PhysicalCPUs = physical
	}
	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		info.ModelName = cpuInfo[0].ModelName
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = memInfo.Total
	}

	return info
}

// String formats the host for a log line
func (h HostInfo) String() string {
	model := h.ModelName
	if model == "" {
		model = "unknown CPU"
	}
	return fmt.Sprintf("%s, %d logical / %d physical cores, %d GB RAM",
		model, h.LogicalCPUs, h.PhysicalCPUs, h.TotalMemory/(1024*1024*1024))
}

// DefaultBlockCount returns the number of logical CPUs, used when a render
// does not set an explicit block count
func DefaultBlockCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}
	return count
}
