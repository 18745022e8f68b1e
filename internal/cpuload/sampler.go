// Package cpuload exposes per-core CPU load to the view as a list model.
package cpuload

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/prometheus/procfs"
)

// Sampler reports the load of every logical CPU since its previous call.
type Sampler interface {
	Cores() int
	Sample() ([]float64, error)
}

// ProcSampler reads /proc/stat. The first Sample has no previous reading
// and reports zero for every core.
type ProcSampler struct {
	fs   procfs.FS
	mu   sync.Mutex
	prev map[int64]procfs.CPUStat
}

// NewProcSampler opens the proc filesystem at its default mount point.
func NewProcSampler() (*ProcSampler, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("open procfs: %w", err)
	}
	return &ProcSampler{fs: fs}, nil
}

// NewProcSamplerAt opens a proc filesystem mounted at mountPoint.
func NewProcSamplerAt(mountPoint string) (*ProcSampler, error) {
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("open procfs %s: %w", mountPoint, err)
	}
	return &ProcSampler{fs: fs}, nil
}

// Cores returns the number of logical CPUs listed in /proc/stat.
func (p *ProcSampler) Cores() int {
	stat, err := p.fs.Stat()
	if err != nil {
		return 0
	}
	return len(stat.CPU)
}

func (p *ProcSampler) Sample() ([]float64, error) {
	stat, err := p.fs.Stat()
	if err != nil {
		return nil, fmt.Errorf("read cpu stat: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]int64, 0, len(stat.CPU))
	for id := range stat.CPU {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]float64, len(ids))
	for i, id := range ids {
		if prev, ok := p.prev[id]; ok {
			out[i] = loadPercent(prev, stat.CPU[id])
		}
	}
	p.prev = stat.CPU
	return out, nil
}

func busy(s procfs.CPUStat) float64 {
	return s.User + s.Nice + s.System + s.IRQ + s.SoftIRQ + s.Steal
}

func idle(s procfs.CPUStat) float64 {
	return s.Idle + s.Iowait
}

// loadPercent is the busy share of the time elapsed between two readings,
// rounded to one decimal.
func loadPercent(prev, cur procfs.CPUStat) float64 {
	dBusy := busy(cur) - busy(prev)
	dTotal := dBusy + idle(cur) - idle(prev)
	if dTotal <= 0 || dBusy <= 0 {
		return 0
	}
	pct := 100 * dBusy / dTotal
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}
