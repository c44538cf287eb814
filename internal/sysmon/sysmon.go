// Package sysmon samples system-wide CPU and memory usage and reports the
// CPU features relevant to big-number arithmetic.
package sysmon

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// CPUFeatures lists the detected instruction set extensions used by the
// math/big and GMP multiplication kernels, in a fixed order.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(xcpu.X86.HasAVX2, "AVX2")
		add(xcpu.X86.HasAVX512F && xcpu.X86.HasAVX512DQ, "AVX-512")
		add(xcpu.X86.HasBMI2, "BMI2")
		add(xcpu.X86.HasADX, "ADX")
	case "arm64":
		add(xcpu.ARM64.HasASIMD, "ASIMD")
		add(xcpu.ARM64.HasSVE, "SVE")
	}
	return features
}

// Describe returns a one-line summary of the CPU: logical processors,
// architecture and features.
func Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d logical processors, %s", runtime.NumCPU(), runtime.GOARCH)
	features := CPUFeatures()
	if len(features) == 0 {
		b.WriteString(", no SIMD extensions detected")
	} else {
		b.WriteString(", ")
		b.WriteString(strings.Join(features, " "))
	}
	return b.String()
}
