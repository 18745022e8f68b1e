package numbers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/OliveiraNt/netbind/internal/binding"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed returns an intn that always yields v and records the bound it got.
func fixed(v int, bound *int) func(int) int {
	return func(n int) int {
		*bound = n
		return v
	}
}

func record(obj binding.Object) *[]binding.Event {
	var events []binding.Event
	obj.Subscribe(func(ev binding.Event) { events = append(events, ev) })
	return &events
}

func TestGenerator_GiveNumber(t *testing.T) {
	var bound int
	g := newGenerator(fixed(17, &bound))
	events := record(g)

	require.NoError(t, g.Invoke("giveNumber", nil))
	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, binding.SignalEmitted, ev.Kind)
	assert.Equal(t, "nextNumber", ev.Name)
	assert.Equal(t, map[string]any{"number": 17}, ev.Args)
	assert.Equal(t, 100, bound)
}

func TestGenerator_RandomRange(t *testing.T) {
	g := NewGenerator()
	var got []int
	g.Subscribe(func(ev binding.Event) { got = append(got, ev.Args["number"].(int)) })
	for i := 0; i < 500; i++ {
		g.GiveNumber()
	}
	for _, n := range got {
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 99)
	}
}

func TestRegister(t *testing.T) {
	utils.InitLogger()
	e := binding.NewEngine()
	Register(e)
	assert.Equal(t, []binding.TypeInfo{{Module: "Generators", Major: 1, Minor: 0, Name: "NumberGenerator"}}, e.Types())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = e.Run(ctx) }()

	var obj binding.Object
	require.NoError(t, e.Call(ctx, func() error {
		var err error
		obj, err = e.Create(TypeName)
		return err
	}))
	assert.IsType(t, &Generator{}, obj)
	assert.Contains(t, obj.Describe().Slots, "giveNumber")
}

func TestBoundedGenerator_Defaults(t *testing.T) {
	g := NewBoundedGenerator()
	info := g.Describe()
	assert.Equal(t, map[string]any{"number": 42, "maxNumber": 99}, info.Properties)
	assert.Equal(t, []string{"maxNumber"}, info.Writable)
	assert.Equal(t, []string{"setMaxNumber", "updateNumber"}, info.Slots)
	require.ErrorIs(t, g.SetProperty("number", json.RawMessage(`1`)), binding.ErrReadOnlyProperty)
}

func TestBoundedGenerator_ClampFiresOneNumberChange(t *testing.T) {
	g := NewBoundedGenerator()
	events := record(g)

	require.NoError(t, g.Invoke("setMaxNumber", []json.RawMessage{json.RawMessage(`10`)}))

	assert.Equal(t, 10, g.MaxNumber())
	assert.Equal(t, 10, g.Number())
	require.Len(t, *events, 2)
	assert.Equal(t, "maxNumberChanged", (*events)[0].Signal)
	assert.Equal(t, 10, (*events)[0].Value)

	var numberChanges int
	for _, ev := range *events {
		if ev.Signal == "numberChanged" {
			numberChanges++
			assert.Equal(t, 10, ev.Value)
		}
	}
	assert.Equal(t, 1, numberChanges)
}

func TestBoundedGenerator_SetMaxNumber(t *testing.T) {
	t.Run("negative clamps to zero", func(t *testing.T) {
		g := NewBoundedGenerator()
		events := record(g)
		g.SetMaxNumber(-5)
		assert.Equal(t, 0, g.MaxNumber())
		assert.Equal(t, 0, g.Number())
		assert.Len(t, *events, 2)
	})

	t.Run("same value does not notify", func(t *testing.T) {
		g := NewBoundedGenerator()
		events := record(g)
		g.SetMaxNumber(99)
		assert.Empty(t, *events)
	})

	t.Run("raising the max keeps the number", func(t *testing.T) {
		g := NewBoundedGenerator()
		events := record(g)
		require.NoError(t, g.SetProperty("maxNumber", json.RawMessage(`500`)))
		assert.Equal(t, 42, g.Number())
		require.Len(t, *events, 1)
		assert.Equal(t, "maxNumber", (*events)[0].Name)
	})

	t.Run("max equal to number does not touch number", func(t *testing.T) {
		g := NewBoundedGenerator()
		events := record(g)
		g.SetMaxNumber(42)
		assert.Equal(t, 42, g.Number())
		assert.Len(t, *events, 1)
	})

	t.Run("bad argument", func(t *testing.T) {
		g := NewBoundedGenerator()
		require.ErrorIs(t, g.Invoke("setMaxNumber", nil), binding.ErrBadArguments)
	})
}

func TestBoundedGenerator_UpdateNumber(t *testing.T) {
	var bound int
	g := newBoundedGenerator(fixed(7, &bound))
	events := record(g)

	require.NoError(t, g.Invoke("updateNumber", nil))
	assert.Equal(t, 100, bound)
	assert.Equal(t, 7, g.Number())
	require.Len(t, *events, 1)
	assert.Equal(t, "numberChanged", (*events)[0].Signal)

	// same number again: no notification
	g.UpdateNumber()
	assert.Len(t, *events, 1)

	g.SetMaxNumber(3)
	g.UpdateNumber()
	assert.Equal(t, 4, bound)
}
