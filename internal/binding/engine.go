package binding

import (
	"context"
	"fmt"
	"html/template"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OliveiraNt/netbind/internal/utils"
)

// Factory creates an instance of a registered type.
type Factory func(e *Engine) (Object, error)

// TypeInfo describes a type the view can instantiate.
type TypeInfo struct {
	Module string `json:"module"`
	Major  int    `json:"major"`
	Minor  int    `json:"minor"`
	Name   string `json:"name"`
}

type registeredType struct {
	info    TypeInfo
	factory Factory
}

// Engine owns the objects exposed to the view and runs the event loop they
// live on.
type Engine struct {
	mu      sync.RWMutex
	context map[string]Object
	objects map[string]Object
	types   map[string]registeredType
	view    *template.Template
	name    string

	qmu     sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}

	done     chan struct{}
	drained  chan struct{}
	stopOnce sync.Once
}

// NewEngine creates an engine with the embedded default view loaded.
func NewEngine() *Engine {
	e := &Engine{
		context: make(map[string]Object),
		objects: make(map[string]Object),
		types:   make(map[string]registeredType),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
	if err := e.Load(""); err != nil {
		panic(err)
	}
	return e
}

// SetContextProperty exposes obj to the view under name.
func (e *Engine) SetContextProperty(name string, obj Object) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if old, ok := e.context[name]; ok {
		delete(e.objects, old.ID())
	}
	e.context[name] = obj
	e.objects[obj.ID()] = obj
	utils.Logger.Debug("context property set", "name", name, "type", obj.TypeName(), "id", obj.ID())
}

// RegisterType makes a type instantiable from the view as module major.minor name.
func (e *Engine) RegisterType(module string, major, minor int, name string, factory Factory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types[name] = registeredType{
		info:    TypeInfo{Module: module, Major: major, Minor: minor, Name: name},
		factory: factory,
	}
	utils.Logger.Debug("type registered", "module", module, "version", fmt.Sprintf("%d.%d", major, minor), "name", name)
}

// ContextObjects returns a copy of the named context objects.
func (e *Engine) ContextObjects() map[string]Object {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]Object, len(e.context))
	for k, v := range e.context {
		out[k] = v
	}
	return out
}

// Types returns the registered types sorted by name.
func (e *Engine) Types() []TypeInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]TypeInfo, 0, len(e.types))
	for _, t := range e.types {
		out = append(out, t.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds an object by identifier or by context property name.
func (e *Engine) Lookup(ref string) (Object, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if obj, ok := e.objects[ref]; ok {
		return obj, true
	}
	obj, ok := e.context[ref]
	return obj, ok
}

// Create instantiates a registered type. It should be called on the loop.
func (e *Engine) Create(typeName string) (Object, error) {
	e.mu.RLock()
	t, ok := e.types[typeName]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	obj, err := t.factory(e)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", typeName, err)
	}
	e.mu.Lock()
	e.objects[obj.ID()] = obj
	e.mu.Unlock()
	utils.Logger.Debug("object created", "type", typeName, "id", obj.ID())
	return obj, nil
}

// Destroy releases an object created with Create. Context objects are
// never destroyed.
func (e *Engine) Destroy(id string) {
	e.mu.Lock()
	obj, ok := e.objects[id]
	if ok {
		for _, c := range e.context {
			if c.ID() == id {
				e.mu.Unlock()
				return
			}
		}
		delete(e.objects, id)
	}
	e.mu.Unlock()
	if !ok {
		return
	}
	if d, ok := obj.(Destroyer); ok {
		d.Destroy()
	}
	utils.Logger.Debug("object destroyed", "type", obj.TypeName(), "id", id)
}

// Run processes posted work until ctx is canceled. Every object created by
// the view is destroyed when the loop exits.
func (e *Engine) Run(ctx context.Context) error {
	defer e.stop()
	utils.Logger.Info("engine loop started", "view", e.name)
	for {
		select {
		case <-ctx.Done():
			utils.Logger.Info("engine loop stopping")
			return nil
		case <-e.wake:
			for _, fn := range e.take() {
				fn()
			}
		}
	}
}

// Done is closed once the loop has exited.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) take() []func() {
	e.qmu.Lock()
	defer e.qmu.Unlock()
	q := e.queue
	e.queue = nil
	return q
}

// stop rejects new work, runs what was queued before the loop exited and
// destroys the created objects. drained is closed last.
func (e *Engine) stop() {
	e.stopOnce.Do(func() {
		e.qmu.Lock()
		e.stopped = true
		pending := e.queue
		e.queue = nil
		e.qmu.Unlock()

		close(e.done)
		for _, fn := range pending {
			fn()
		}

		e.mu.RLock()
		var created []string
		for id := range e.objects {
			created = append(created, id)
		}
		e.mu.RUnlock()
		for _, id := range created {
			e.Destroy(id)
		}
		close(e.drained)
	})
}

// Post queues fn on the loop. It reports false once the loop has stopped;
// a true result means fn runs, on the loop or in the final drain.
func (e *Engine) Post(fn func()) bool {
	e.qmu.Lock()
	if e.stopped {
		e.qmu.Unlock()
		return false
	}
	e.queue = append(e.queue, fn)
	e.qmu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for its result.
func (e *Engine) Call(ctx context.Context, fn func() error) error {
	res := make(chan error, 1)
	if !e.Post(func() { res <- fn() }) {
		return ErrEngineStopped
	}
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrEngineStopped
	}
}

// Every runs fn on the loop at the given interval until stop is called or
// the loop exits. A tick is skipped while the previous one is still queued.
func (e *Engine) Every(interval time.Duration, fn func()) (stop func()) {
	quit := make(chan struct{})
	var pending atomic.Bool

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if !pending.CompareAndSwap(false, true) {
					continue
				}
				if !e.Post(func() {
					pending.Store(false)
					select {
					case <-quit:
						return
					default:
					}
					fn()
				}) {
					return
				}
			case <-quit:
				return
			case <-e.done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(quit) }) }
}
