package testutil

import "sync"

// FakeSampler is a cpuload.Sampler replaying scripted readings. After the
// last reading it keeps returning it.
type FakeSampler struct {
	mu       sync.Mutex
	CoreN    int
	Readings [][]float64
	Err      error
	calls    int
}

func NewFakeSampler(cores int, readings ...[]float64) *FakeSampler {
	return &FakeSampler{CoreN: cores, Readings: readings}
}

func (f *FakeSampler) Cores() int { return f.CoreN }

func (f *FakeSampler) Sample() ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Readings) == 0 {
		return make([]float64, f.CoreN), nil
	}
	i := f.calls - 1
	if i >= len(f.Readings) {
		i = len(f.Readings) - 1
	}
	return append([]float64(nil), f.Readings[i]...), nil
}

// Calls returns how many times Sample ran.
func (f *FakeSampler) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// SetErr makes later samples fail with err.
func (f *FakeSampler) SetErr(err error) {
	f.mu.Lock()
	f.Err = err
	f.mu.Unlock()
}
