package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/OliveiraNt/netbind/internal/domain"
	"github.com/OliveiraNt/netbind/internal/utils"
)

//go:embed seed/colors.json
var defaultSeed []byte

// ColorRepository keeps colors in memory. Nothing is written back to the
// seed file.
type ColorRepository struct {
	mu     sync.RWMutex
	colors []domain.Color
}

// NewColorRepository creates a repository holding a copy of seed.
func NewColorRepository(seed []domain.Color) *ColorRepository {
	colors := make([]domain.Color, len(seed))
	copy(colors, seed)
	return &ColorRepository{colors: colors}
}

// LoadSeed reads a JSON array of colors from path. An empty path returns
// the embedded default palette.
func LoadSeed(path string) ([]domain.Color, error) {
	data := defaultSeed
	source := "embedded"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		source = path
	}

	var colors []domain.Color
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", source, err)
	}
	utils.Logger.Info("colors seeded", "source", source, "count", len(colors))
	return colors, nil
}

// FindAll returns a copy of the list.
func (r *ColorRepository) FindAll() []domain.Color {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Color, len(r.colors))
	copy(out, r.colors)
	return out
}

// FindByName returns the first color named name.
func (r *ColorRepository) FindByName(name string) (domain.Color, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(name); i >= 0 {
		return r.colors[i], true
	}
	return domain.Color{}, false
}

// Add appends c.
func (r *ColorRepository) Add(c domain.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors = append(r.colors, c)
}

// Update sets the value of the first color named name when value is not nil.
func (r *ColorRepository) Update(name string, value *string) (domain.Color, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(name)
	if i < 0 {
		return domain.Color{}, false
	}
	if value != nil {
		r.colors[i].Value = *value
	}
	return r.colors[i], true
}

// Delete removes the first color named name.
func (r *ColorRepository) Delete(name string) (domain.Color, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(name)
	if i < 0 {
		return domain.Color{}, false
	}
	c := r.colors[i]
	r.colors = append(r.colors[:i], r.colors[i+1:]...)
	return c, true
}

func (r *ColorRepository) index(name string) int {
	for i := range r.colors {
		if r.colors[i].Name == name {
			return i
		}
	}
	return -1
}
