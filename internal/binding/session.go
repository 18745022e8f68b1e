package binding

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/OliveiraNt/netbind/internal/utils"
)

// Message types sent to the view.
const (
	MsgHello       = "hello"
	MsgChanged     = "changed"
	MsgSignal      = "signal"
	MsgDataChanged = "data_changed"
	MsgCreated     = "created"
	MsgError       = "error"
)

// Request types received from the view.
const (
	ReqInvoke  = "invoke"
	ReqSet     = "set"
	ReqCreate  = "create"
	ReqDestroy = "destroy"
)

// Request is a message from the view.
type Request struct {
	Type      string            `json:"type"`
	RequestID string            `json:"request_id,omitempty"`
	Object    string            `json:"object,omitempty"`
	Method    string            `json:"method,omitempty"`
	Property  string            `json:"property,omitempty"`
	TypeName  string            `json:"type_name,omitempty"`
	Args      []json.RawMessage `json:"args,omitempty"`
	Value     json.RawMessage   `json:"value,omitempty"`
}

// Message is sent to the view.
type Message struct {
	Type      string                `json:"type"`
	RequestID string                `json:"request_id,omitempty"`
	Object    string                `json:"object,omitempty"`
	Property  string                `json:"property,omitempty"`
	Signal    string                `json:"signal,omitempty"`
	Value     any                   `json:"value,omitempty"`
	Args      map[string]any        `json:"args,omitempty"`
	First     *int                  `json:"first,omitempty"`
	Last      *int                  `json:"last,omitempty"`
	Rows      []any                 `json:"rows,omitempty"`
	Objects   map[string]ObjectInfo `json:"objects,omitempty"`
	Types     []TypeInfo            `json:"types,omitempty"`
	Created   *ObjectInfo           `json:"created,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// Session is one connected view. All of its state is touched on the
// engine loop only.
type Session struct {
	engine  *Engine
	out     chan Message
	cancels map[string]func()
	owned   map[string]struct{}
	closed  bool

	closeOnce sync.Once
}

// NewSession creates a session whose outgoing queue holds up to backlog messages.
func NewSession(e *Engine, backlog int) *Session {
	return &Session{
		engine:  e,
		out:     make(chan Message, backlog),
		cancels: make(map[string]func()),
		owned:   make(map[string]struct{}),
	}
}

// Out delivers messages for the view. It is closed by Close.
func (s *Session) Out() <-chan Message {
	return s.out
}

// Start subscribes to the context objects and queues the hello message.
func (s *Session) Start(ctx context.Context) error {
	return s.engine.Call(ctx, func() error {
		hello := Message{
			Type:    MsgHello,
			Objects: make(map[string]ObjectInfo),
			Types:   s.engine.Types(),
		}
		for name, obj := range s.engine.ContextObjects() {
			s.watch(obj)
			hello.Objects[name] = obj.Describe()
		}
		s.send(hello)
		return nil
	})
}

// Handle queues req for processing on the loop.
func (s *Session) Handle(req Request) bool {
	return s.engine.Post(func() { s.handle(req) })
}

// Close unsubscribes from every object, destroys the objects this session
// created and closes Out. It must not be called on the engine loop.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.engine.Post(s.release) {
			return
		}
		// The loop is gone. Wait for the final drain, which may still
		// deliver notifications to this session.
		<-s.engine.drained
		s.release()
	})
}

func (s *Session) release() {
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
	for id := range s.owned {
		s.engine.Destroy(id)
		delete(s.owned, id)
	}
	s.closed = true
	close(s.out)
}

func (s *Session) handle(req Request) {
	if s.closed {
		return
	}
	var err error
	switch req.Type {
	case ReqInvoke:
		err = s.invoke(req)
	case ReqSet:
		err = s.set(req)
	case ReqCreate:
		err = s.create(req)
	case ReqDestroy:
		err = s.destroy(req)
	default:
		err = fmt.Errorf("unknown request type %q", req.Type)
	}
	if err != nil {
		utils.Logger.Warn("view request failed", "type", req.Type, "object", req.Object, "err", err)
		s.send(Message{Type: MsgError, RequestID: req.RequestID, Object: req.Object, Message: err.Error()})
	}
}

func (s *Session) invoke(req Request) error {
	obj, ok := s.engine.Lookup(req.Object)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, req.Object)
	}
	return obj.Invoke(req.Method, req.Args)
}

func (s *Session) set(req Request) error {
	obj, ok := s.engine.Lookup(req.Object)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, req.Object)
	}
	return obj.SetProperty(req.Property, req.Value)
}

func (s *Session) create(req Request) error {
	obj, err := s.engine.Create(req.TypeName)
	if err != nil {
		return err
	}
	s.owned[obj.ID()] = struct{}{}
	s.watch(obj)
	info := obj.Describe()
	s.send(Message{Type: MsgCreated, RequestID: req.RequestID, Object: obj.ID(), Created: &info})
	return nil
}

func (s *Session) destroy(req Request) error {
	if _, ok := s.owned[req.Object]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, req.Object)
	}
	if cancel, ok := s.cancels[req.Object]; ok {
		cancel()
		delete(s.cancels, req.Object)
	}
	delete(s.owned, req.Object)
	s.engine.Destroy(req.Object)
	return nil
}

func (s *Session) watch(obj Object) {
	if _, ok := s.cancels[obj.ID()]; ok {
		return
	}
	s.cancels[obj.ID()] = obj.Subscribe(s.forward)
}

func (s *Session) forward(ev Event) {
	switch ev.Kind {
	case PropertyChanged:
		s.send(Message{Type: MsgChanged, Object: ev.Object, Property: ev.Name, Signal: ev.Signal, Value: ev.Value})
	case SignalEmitted:
		s.send(Message{Type: MsgSignal, Object: ev.Object, Signal: ev.Name, Args: ev.Args})
	case RowsChanged:
		first, last := ev.First, ev.Last
		s.send(Message{Type: MsgDataChanged, Object: ev.Object, First: &first, Last: &last, Rows: ev.Rows})
	}
}

func (s *Session) send(msg Message) {
	if s.closed {
		return
	}
	select {
	case s.out <- msg:
	default:
		utils.Logger.Warn("view session backlog full, dropping message", "type", msg.Type, "object", msg.Object)
	}
}
