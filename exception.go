package glint

import (
	"errors"

	"github.com/glint-lang/glint/engine"
)

// Exception is an engine exception carried through native code. It preserves
// the thrown engine value so the exception can be re-surfaced unchanged, and
// exposes the value's string rendering as the Go error message.
type Exception struct {
	value engine.Value
	msg   string
}

// NewException wraps an already-raised engine exception value.
func NewException(ctx *engine.Context, value engine.Value) *Exception {
	return &Exception{value: value, msg: ctx.ToString(value)}
}

// Error returns the string rendering of the wrapped engine value.
func (e *Exception) Error() string { return e.msg }

// Value returns the wrapped engine value unchanged.
func (e *Exception) Value() engine.Value { return e.value }

// WrapError converts an error returned by an engine primitive into a bridge
// error: engine exceptions become *Exception (value preserved), everything
// else passes through.
func WrapError(ctx *engine.Context, err error) error {
	if err == nil {
		return nil
	}
	var ee *engine.Exception
	if errors.As(err, &ee) {
		return &Exception{value: ee.Value(), msg: ee.Error()}
	}
	return err
}

// MakeError builds the engine value for a native error: a wrapped engine
// exception re-surfaces verbatim; any other error becomes a fresh engine
// error object carrying the message text.
func MakeError(ctx *engine.Context, err error) engine.Value {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex.value
	}
	var ee *engine.Exception
	if errors.As(err, &ee) {
		return ee.Value()
	}
	return ctx.NewError(err.Error()).Value()
}

// MakeErrorString builds an engine error value from a message.
func MakeErrorString(ctx *engine.Context, message string) engine.Value {
	return ctx.NewError(message).Value()
}

// raise converts a native error into the engine exception returned to the
// engine at the adapter boundary.
func raise(ctx *engine.Context, err error) *engine.Exception {
	if ee, ok := err.(*engine.Exception); ok {
		return ee
	}
	return ctx.Throw(MakeError(ctx, err))
}
