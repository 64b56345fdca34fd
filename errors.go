package glint

import "fmt"

// ArgumentError reports an invalid argument: wrong count, wrong type, or a
// malformed index string. The calling-convention adapters give it special
// treatment on indexed property access.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// RangeError reports an out-of-range index.
type RangeError struct {
	Message string
}

func (e *RangeError) Error() string { return e.Message }

func argErrorf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Message: fmt.Sprintf(format, args...)}
}

func rangeErrorf(format string, args ...any) *RangeError {
	return &RangeError{Message: fmt.Sprintf(format, args...)}
}

// orMessage returns msg unless it is empty, in which case def is used.
// Validation helpers take caller-suppliable messages with this rule.
func orMessage(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}
