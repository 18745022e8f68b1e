package binding

import (
	"encoding/json"
	"fmt"
)

// IntArg decodes args[i] as an integer. Fractions and values out of range
// are rejected.
func IntArg(args []json.RawMessage, i int) (int, error) {
	if i < 0 || i >= len(args) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrBadArguments, i)
	}
	var v int64
	if err := json.Unmarshal(args[i], &v); err != nil {
		return 0, fmt.Errorf("%w: argument %d: %v", ErrBadArguments, i, err)
	}
	if int64(int(v)) != v {
		return 0, fmt.Errorf("%w: argument %d: %d overflows int", ErrBadArguments, i, v)
	}
	return int(v), nil
}

// StringArg decodes args[i] as a string.
func StringArg(args []json.RawMessage, i int) (string, error) {
	if i < 0 || i >= len(args) {
		return "", fmt.Errorf("%w: missing argument %d", ErrBadArguments, i)
	}
	var s string
	if err := json.Unmarshal(args[i], &s); err != nil {
		return "", fmt.Errorf("%w: argument %d: %v", ErrBadArguments, i, err)
	}
	return s, nil
}

// IntValue decodes a property value as an integer.
func IntValue(raw json.RawMessage) (int, error) {
	return IntArg([]json.RawMessage{raw}, 0)
}
