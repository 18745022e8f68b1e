package application

import "errors"

var (
	// ErrColorNotFound is returned when no color has the requested name
	ErrColorNotFound = errors.New("color not found")

	// ErrInvalidColor is returned when a new color lacks a name or value
	ErrInvalidColor = errors.New("invalid color")
)
