package binding

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// EventKind identifies what an Event notifies.
type EventKind string

const (
	PropertyChanged EventKind = "changed"
	SignalEmitted   EventKind = "signal"
	RowsChanged     EventKind = "data_changed"
)

// Event is delivered to listeners of an object.
type Event struct {
	Kind   EventKind
	Object string
	// Name is the property for PropertyChanged and the signal for SignalEmitted.
	Name string
	// Signal is the notify signal of a changed property, if any.
	Signal string
	Value  any
	Args   map[string]any
	First  int
	Last   int
	Rows   []any
}

// Listener receives object notifications. Listeners run on the goroutine
// that caused the change and must not block.
type Listener func(Event)

// Property describes a property exposed to the view.
type Property struct {
	Get func() any
	// Set is nil for read-only properties.
	Set    func(raw json.RawMessage) error
	Notify string
}

// Slot is a method the view can invoke.
type Slot func(args []json.RawMessage) error

// ObjectInfo is the view-facing description of an object.
type ObjectInfo struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	Properties map[string]any      `json:"properties"`
	Writable   []string            `json:"writable,omitempty"`
	Slots      []string            `json:"slots,omitempty"`
	Signals    map[string][]string `json:"signals,omitempty"`
	Rows       []any               `json:"rows,omitempty"`
}

// Object is anything the engine can hand to the view.
type Object interface {
	ID() string
	TypeName() string
	Describe() ObjectInfo
	SetProperty(name string, raw json.RawMessage) error
	Invoke(method string, args []json.RawMessage) error
	Subscribe(fn Listener) (cancel func())
}

// Destroyer is implemented by objects that hold resources, such as timers,
// which must be released when the view destroys them.
type Destroyer interface {
	Destroy()
}

// Base implements Object and is embedded by concrete types.
type Base struct {
	id       string
	typeName string
	props    map[string]Property
	slots    map[string]Slot
	signals  map[string][]string

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// Init assigns a fresh identifier and type name. It must be called before
// any other method.
func (b *Base) Init(typeName string) {
	b.id = uuid.NewString()
	b.typeName = typeName
	b.props = make(map[string]Property)
	b.slots = make(map[string]Slot)
	b.signals = make(map[string][]string)
	b.listeners = make(map[int]Listener)
}

func (b *Base) ID() string       { return b.id }
func (b *Base) TypeName() string { return b.typeName }

// DefineProperty exposes a property. A notify signal named in p is
// declared implicitly with the property name as its only parameter.
func (b *Base) DefineProperty(name string, p Property) {
	b.props[name] = p
	if p.Notify != "" {
		if _, ok := b.signals[p.Notify]; !ok {
			b.signals[p.Notify] = []string{name}
		}
	}
}

// DefineSlot exposes an invokable method.
func (b *Base) DefineSlot(name string, fn Slot) {
	b.slots[name] = fn
}

// DefineSignal declares a signal and the names of its parameters.
func (b *Base) DefineSignal(name string, params ...string) {
	b.signals[name] = params
}

// Describe returns a snapshot of the object for the view.
func (b *Base) Describe() ObjectInfo {
	info := ObjectInfo{
		ID:         b.id,
		Type:       b.typeName,
		Properties: make(map[string]any, len(b.props)),
		Signals:    make(map[string][]string, len(b.signals)),
	}
	for name, p := range b.props {
		info.Properties[name] = p.Get()
		if p.Set != nil {
			info.Writable = append(info.Writable, name)
		}
	}
	for name := range b.slots {
		info.Slots = append(info.Slots, name)
	}
	for name, params := range b.signals {
		info.Signals[name] = params
	}
	sort.Strings(info.Writable)
	sort.Strings(info.Slots)
	return info
}

// SetProperty writes a property from a JSON value.
func (b *Base) SetProperty(name string, raw json.RawMessage) error {
	p, ok := b.props[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, b.typeName, name)
	}
	if p.Set == nil {
		return fmt.Errorf("%w: %s.%s", ErrReadOnlyProperty, b.typeName, name)
	}
	return p.Set(raw)
}

// Invoke calls a slot with JSON arguments.
func (b *Base) Invoke(method string, args []json.RawMessage) error {
	fn, ok := b.slots[method]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownMethod, b.typeName, method)
	}
	return fn(args)
}

// Subscribe adds a listener and returns a function removing it.
func (b *Base) Subscribe(fn Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Changed notifies listeners that a property has a new value.
func (b *Base) Changed(property string) {
	p, ok := b.props[property]
	if !ok {
		return
	}
	b.notify(Event{
		Kind:   PropertyChanged,
		Object: b.id,
		Name:   property,
		Signal: p.Notify,
		Value:  p.Get(),
	})
}

// Emit notifies listeners of a signal. Arguments are matched positionally
// to the parameter names given to DefineSignal.
func (b *Base) Emit(signal string, args ...any) {
	params := b.signals[signal]
	named := make(map[string]any, len(args))
	for i, a := range args {
		key := fmt.Sprintf("arg%d", i)
		if i < len(params) {
			key = params[i]
		}
		named[key] = a
	}
	b.notify(Event{
		Kind:   SignalEmitted,
		Object: b.id,
		Name:   signal,
		Args:   named,
	})
}

func (b *Base) notify(ev Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.listeners[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
