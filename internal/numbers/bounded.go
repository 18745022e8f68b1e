package numbers

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/OliveiraNt/netbind/internal/binding"
)

const (
	defaultNumber    = 42
	defaultMaxNumber = 99
)

// BoundedGenerator keeps a number that never exceeds maxNumber.
type BoundedGenerator struct {
	binding.Base
	number    int
	maxNumber int
	intn      func(n int) int
}

// NewBoundedGenerator returns a generator starting at 42 with a max of 99.
func NewBoundedGenerator() *BoundedGenerator {
	return newBoundedGenerator(rand.IntN)
}

func newBoundedGenerator(intn func(int) int) *BoundedGenerator {
	g := &BoundedGenerator{number: defaultNumber, maxNumber: defaultMaxNumber, intn: intn}
	g.Init(TypeName)
	g.DefineProperty("number", binding.Property{
		Get:    func() any { return g.number },
		Notify: "numberChanged",
	})
	g.DefineProperty("maxNumber", binding.Property{
		Get: func() any { return g.maxNumber },
		Set: func(raw json.RawMessage) error {
			v, err := binding.IntValue(raw)
			if err != nil {
				return err
			}
			g.SetMaxNumber(v)
			return nil
		},
		Notify: "maxNumberChanged",
	})
	g.DefineSlot("updateNumber", func([]json.RawMessage) error {
		g.UpdateNumber()
		return nil
	})
	g.DefineSlot("setMaxNumber", func(args []json.RawMessage) error {
		v, err := binding.IntArg(args, 0)
		if err != nil {
			return err
		}
		g.SetMaxNumber(v)
		return nil
	})
	return g
}

func (g *BoundedGenerator) Number() int    { return g.number }
func (g *BoundedGenerator) MaxNumber() int { return g.maxNumber }

// UpdateNumber picks a new number in [0, maxNumber].
func (g *BoundedGenerator) UpdateNumber() {
	g.setNumber(g.intn(g.maxNumber + 1))
}

// SetMaxNumber sets the bound, treating negative values as 0, and pulls the
// number down to it when needed.
func (g *BoundedGenerator) SetMaxNumber(v int) {
	if v < 0 {
		v = 0
	}
	if v != g.maxNumber {
		g.maxNumber = v
		g.Changed("maxNumber")
	}
	if g.number > g.maxNumber {
		g.setNumber(g.maxNumber)
	}
}

func (g *BoundedGenerator) setNumber(v int) {
	if v == g.number {
		return
	}
	g.number = v
	g.Changed("number")
}
