package domain

import "context"

// ColorRepository holds the color list in insertion order. Lookups by name
// return the first match.
type ColorRepository interface {
	FindAll() []Color
	FindByName(name string) (Color, bool)
	Add(c Color)
	Update(name string, value *string) (Color, bool)
	Delete(name string) (Color, bool)
}

// EventPublisher delivers color change events to the change feed.
type EventPublisher interface {
	Publish(ctx context.Context, ev ColorEvent) error
	Close()
}
