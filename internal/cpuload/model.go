package cpuload

import (
	"strconv"
	"time"

	"github.com/OliveiraNt/netbind/internal/binding"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Module      = "PsUtils"
	ModuleMajor = 1
	ModuleMinor = 0
	TypeName    = "CpuLoadModel"

	DefaultInterval = time.Second
)

// NewGauge creates the per-core load gauge and registers it with reg when
// reg is not nil.
func NewGauge(reg prometheus.Registerer) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "netbind_cpu_load_percent",
		Help: "CPU load percentage per logical core.",
	}, []string{"core"})
	if reg != nil {
		reg.MustRegister(g)
	}
	return g
}

// Model lists the load of each logical CPU, refreshed on the engine loop.
type Model struct {
	binding.ListModel
	src   Sampler
	gauge *prometheus.GaugeVec
	loads []float64
	stop  func()
}

// NewModel primes sampler and starts refreshing every interval. A nil
// gauge disables metrics.
func NewModel(e *binding.Engine, sampler Sampler, interval time.Duration, gauge *prometheus.GaugeVec) *Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	m := &Model{
		src:   sampler,
		gauge: gauge,
		loads: make([]float64, sampler.Cores()),
	}
	m.InitModel(TypeName, m)

	// the first reading has nothing to compare against
	if _, err := sampler.Sample(); err != nil {
		utils.Logger.Warn("priming cpu sampler failed", "err", err)
	}
	m.stop = e.Every(interval, m.refresh)
	return m
}

func (m *Model) RowCount() int { return len(m.loads) }

// Data returns the load of core row, or nil when row is out of range.
func (m *Model) Data(row int) any {
	if row < 0 || row >= len(m.loads) {
		return nil
	}
	return m.loads[row]
}

// Destroy stops the refresh timer.
func (m *Model) Destroy() {
	m.stop()
}

func (m *Model) refresh() {
	loads, err := m.src.Sample()
	if err != nil {
		utils.Logger.Warn("cpu sample failed", "err", err)
		return
	}
	countChanged := len(loads) != len(m.loads)
	m.loads = loads
	if countChanged {
		m.Changed("count")
	}
	if m.gauge != nil {
		for i, v := range loads {
			m.gauge.WithLabelValues(strconv.Itoa(i)).Set(v)
		}
	}
	m.DataChanged(0, len(loads)-1)
}

// Register makes CpuLoadModel instantiable from the view. Each instance
// gets its own sampler from newSampler.
func Register(e *binding.Engine, newSampler func() (Sampler, error), interval time.Duration, gauge *prometheus.GaugeVec) {
	e.RegisterType(Module, ModuleMajor, ModuleMinor, TypeName, func(e *binding.Engine) (binding.Object, error) {
		sampler, err := newSampler()
		if err != nil {
			return nil, err
		}
		return NewModel(e, sampler, interval, gauge), nil
	})
}
