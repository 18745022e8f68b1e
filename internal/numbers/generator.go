// Package numbers holds the number generator objects exposed to the view.
package numbers

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/OliveiraNt/netbind/internal/binding"
)

const (
	// Module and version under which NumberGenerator is registered.
	Module       = "Generators"
	ModuleMajor  = 1
	ModuleMinor  = 0
	TypeName     = "NumberGenerator"
	ContextName  = "numberGenerator"
	generatorMax = 99
)

// Generator emits a random number whenever the view asks for one.
type Generator struct {
	binding.Base
	intn func(n int) int
}

// NewGenerator returns a Generator drawing from math/rand.
func NewGenerator() *Generator {
	return newGenerator(rand.IntN)
}

func newGenerator(intn func(int) int) *Generator {
	g := &Generator{intn: intn}
	g.Init(TypeName)
	g.DefineSignal("nextNumber", "number")
	g.DefineSlot("giveNumber", func([]json.RawMessage) error {
		g.GiveNumber()
		return nil
	})
	return g
}

// GiveNumber emits nextNumber with a value in [0, 99].
func (g *Generator) GiveNumber() {
	g.Emit("nextNumber", g.intn(generatorMax+1))
}

// Register makes NumberGenerator instantiable from the view.
func Register(e *binding.Engine) {
	e.RegisterType(Module, ModuleMajor, ModuleMinor, TypeName, func(*binding.Engine) (binding.Object, error) {
		return NewGenerator(), nil
	})
}
