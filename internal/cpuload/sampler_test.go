package cpuload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/procfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPercent(t *testing.T) {
	prev := procfs.CPUStat{User: 100, System: 50, Idle: 800, Iowait: 50}
	tests := []struct {
		name string
		cur  procfs.CPUStat
		want float64
	}{
		{"idle", procfs.CPUStat{User: 100, System: 50, Idle: 900, Iowait: 50}, 0},
		{"half", procfs.CPUStat{User: 150, System: 100, Idle: 900, Iowait: 50}, 50},
		{"full", procfs.CPUStat{User: 200, System: 100, Idle: 800, Iowait: 50, IRQ: 50}, 100},
		{"third", procfs.CPUStat{User: 110, System: 50, Idle: 810, Iowait: 60}, 33.3},
		{"no time passed", prev, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, loadPercent(prev, tt.cur), 0.001)
		})
	}
}

func writeStat(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(body), 0644))
}

const statHeader = "intr 0\nctxt 0\nbtime 0\nprocesses 0\nprocs_running 1\nprocs_blocked 0\n"

func TestProcSampler(t *testing.T) {
	dir := t.TempDir()
	writeStat(t, dir, "cpu  200 0 100 1600 0 0 0 0 0 0\n"+
		"cpu0 100 0 50 800 0 0 0 0 0 0\n"+
		"cpu1 100 0 50 800 0 0 0 0 0 0\n"+statHeader)

	s, err := NewProcSamplerAt(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Cores())

	first, err := s.Sample()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, first)

	writeStat(t, dir, "cpu  400 0 100 1800 0 0 0 0 0 0\n"+
		"cpu0 200 0 50 800 0 0 0 0 0 0\n"+
		"cpu1 200 0 50 900 0 0 0 0 0 0\n"+statHeader)

	second, err := s.Sample()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100, 50}, second, 0.001)
}

func TestProcSampler_MissingStat(t *testing.T) {
	s, err := NewProcSamplerAt(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cores())
	_, err = s.Sample()
	require.Error(t, err)
}
