package domain

import "time"

// Color is a named color value, e.g. {"name": "red", "value": "#ff0000"}.
type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ColorEventType tells what happened to a color.
type ColorEventType string

const (
	ColorCreated ColorEventType = "created"
	ColorUpdated ColorEventType = "updated"
	ColorDeleted ColorEventType = "deleted"
)

// ColorEvent is published on the change feed after every successful mutation.
type ColorEvent struct {
	Type  ColorEventType `json:"type"`
	Color Color          `json:"color"`
	At    time.Time      `json:"at"`
}

// CreateColorRequest is the body of POST /colors.
type CreateColorRequest struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// UpdateColorRequest is the body of PUT /colors/{name}. A nil Value keeps
// the current one.
type UpdateColorRequest struct {
	Value *string `json:"value"`
}
