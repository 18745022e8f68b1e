package cpuload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OliveiraNt/netbind/internal/binding"
	"github.com/OliveiraNt/netbind/internal/testutil"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func runEngine(t *testing.T) (*binding.Engine, func()) {
	t.Helper()
	utils.InitLogger()
	e := binding.NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = e.Run(ctx)
		close(stopped)
	}()
	return e, func() {
		cancel()
		<-stopped
	}
}

func newModelOnLoop(t *testing.T, e *binding.Engine, s Sampler, g *prometheus.GaugeVec) (*Model, chan binding.Event) {
	t.Helper()
	events := make(chan binding.Event, 64)
	var m *Model
	require.NoError(t, e.Call(context.Background(), func() error {
		m = NewModel(e, s, 5*time.Millisecond, g)
		m.Subscribe(func(ev binding.Event) {
			select {
			case events <- ev:
			default:
			}
		})
		return nil
	}))
	return m, events
}

func nextRows(t *testing.T, events chan binding.Event) binding.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Kind == binding.RowsChanged {
				return ev
			}
		case <-deadline:
			t.Fatal("no data change")
		}
	}
}

func TestModel_RefreshesRowsAndGauge(t *testing.T) {
	defer goleak.VerifyNone(t)
	e, stop := runEngine(t)
	defer stop()

	sampler := testutil.NewFakeSampler(2, []float64{99, 99}, []float64{12.5, 80})
	reg := prometheus.NewRegistry()
	gauge := NewGauge(reg)
	m, events := newModelOnLoop(t, e, sampler, gauge)

	var initial []any
	require.NoError(t, e.Call(context.Background(), func() error {
		initial = m.Describe().Rows
		return nil
	}))
	assert.Equal(t, []any{0.0, 0.0}, initial, "priming reading is discarded")

	ev := nextRows(t, events)
	assert.Equal(t, 0, ev.First)
	assert.Equal(t, 1, ev.Last)
	assert.Equal(t, []any{12.5, 80.0}, ev.Rows)
	assert.InDelta(t, 80.0, promtest.ToFloat64(gauge.WithLabelValues("1")), 0.001)

	require.NoError(t, e.Call(context.Background(), func() error {
		assert.Nil(t, m.Data(2))
		assert.Nil(t, m.Data(-1))
		assert.Equal(t, 12.5, m.Data(0))
		m.Destroy()
		return nil
	}))
}

func TestModel_SamplerErrorSkipsTick(t *testing.T) {
	defer goleak.VerifyNone(t)
	e, stop := runEngine(t)
	defer stop()

	sampler := testutil.NewFakeSampler(1, []float64{40})
	sampler.SetErr(errors.New("proc gone"))
	m, events := newModelOnLoop(t, e, sampler, nil)

	require.Eventually(t, func() bool { return sampler.Calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v", ev.Kind)
	default:
	}

	sampler.SetErr(nil)
	ev := nextRows(t, events)
	assert.Equal(t, []any{40.0}, ev.Rows)
	require.NoError(t, e.Call(context.Background(), func() error {
		m.Destroy()
		return nil
	}))
}

func TestRegister_EngineStopReleasesTimer(t *testing.T) {
	defer goleak.VerifyNone(t)
	e, stop := runEngine(t)

	sampler := testutil.NewFakeSampler(4)
	Register(e, func() (Sampler, error) { return sampler, nil }, 5*time.Millisecond, nil)
	assert.Equal(t, []binding.TypeInfo{{Module: "PsUtils", Major: 1, Minor: 0, Name: "CpuLoadModel"}}, e.Types())

	var info binding.ObjectInfo
	require.NoError(t, e.Call(context.Background(), func() error {
		obj, err := e.Create(TypeName)
		if err != nil {
			return err
		}
		info = obj.Describe()
		return nil
	}))
	assert.Equal(t, 4, info.Properties["count"])
	assert.Len(t, info.Rows, 4)
	require.Eventually(t, func() bool { return sampler.Calls() >= 2 }, 2*time.Second, 5*time.Millisecond)

	stop()
}

func TestRegister_SamplerFailure(t *testing.T) {
	e, stop := runEngine(t)
	defer stop()
	Register(e, func() (Sampler, error) { return nil, errors.New("no procfs") }, time.Second, nil)

	var err error
	require.NoError(t, e.Call(context.Background(), func() error {
		_, err = e.Create(TypeName)
		return nil
	}))
	require.Error(t, err)
}
