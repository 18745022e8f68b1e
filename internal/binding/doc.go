// Package binding exposes Go objects to a declarative view running in a browser.
//
// Objects
//
// An object embeds Base and declares what the view may see: properties
// (with an optional setter and a notify signal), signals with named
// parameters, and slots the view can invoke.
//
//	type Counter struct {
//		binding.Base
//		value int
//	}
//
//	func NewCounter() *Counter {
//		c := &Counter{}
//		c.Init("Counter")
//		c.DefineProperty("value", binding.Property{Get: func() any { return c.value }, Notify: "valueChanged"})
//		c.DefineSlot("increment", func([]json.RawMessage) error {
//			c.value++
//			c.Changed("value")
//			return nil
//		})
//		return c
//	}
//
// Changed notifies listeners of a property change and Emit notifies a
// signal. Listeners are plain functions held in a list on the object.
//
// Data Models
//
// ListModel is embedded instead of Base for list data. The embedding type
// implements ModelSource and calls DataChanged when rows change.
//
// Engine
//
// Engine owns the objects handed to the view. SetContextProperty exposes a
// named instance, RegisterType makes a type instantiable from the view, and
// Load selects the view document. Run executes a single cooperative event
// loop: every object access from a Session, and every timer created with
// Every, runs on it.
//
// Sessions
//
// A Session is one connected view. It receives a hello message describing
// the context objects and registered types, forwards notifications as
// messages, and applies requests (invoke, set, create, destroy).
package binding
