package glint

import (
	"errors"
	"fmt"

	"github.com/glint-lang/glint/engine"
)

// Native callback shapes. The adapters below wrap these into the engine's
// callback types, handling argument plumbing and error translation so native
// code works entirely in Go errors.

// MethodFunc is a native method: receiver plus argument vector.
type MethodFunc func(ctx *engine.Context, this engine.Object, args []engine.Value) (engine.Value, error)

// ConstructorFunc builds a new instance from an argument vector.
type ConstructorFunc func(ctx *engine.Context, args []engine.Value) (engine.Object, error)

// GetterFunc produces a property value for a receiver.
type GetterFunc func(ctx *engine.Context, this engine.Object) (engine.Value, error)

// SetterFunc consumes a property write on a receiver.
type SetterFunc func(ctx *engine.Context, this engine.Object, value engine.Value) error

// IndexedGetterFunc produces the value at a non-negative integer index.
type IndexedGetterFunc func(ctx *engine.Context, this engine.Object, index int) (engine.Value, error)

// IndexedSetterFunc consumes a write at a non-negative integer index.
type IndexedSetterFunc func(ctx *engine.Context, this engine.Object, index int, value engine.Value) error

// capture converts a panic escaping native code into a raised engine
// exception so a misbehaving callback cannot unwind through the engine.
func capture(ctx *engine.Context, errp *error) {
	if r := recover(); r != nil {
		*errp = raise(ctx, fmt.Errorf("native callback panic: %v", r))
	}
}

// Method adapts fn to the engine's function calling convention. Any native
// error is raised as an engine exception, with wrapped engine exceptions
// re-surfacing their original value.
func Method(fn MethodFunc) engine.CallFunc {
	return func(ctx *engine.Context, _ engine.Object, this engine.Object, args []engine.Value) (v engine.Value, err error) {
		defer capture(ctx, &err)
		v, nerr := fn(ctx, this, args)
		if nerr != nil {
			return engine.Value{}, raise(ctx, nerr)
		}
		return v, nil
	}
}

// Constructor adapts fn to the engine's constructor calling convention.
func Constructor(fn ConstructorFunc) engine.ConstructFunc {
	return func(ctx *engine.Context, _ engine.Object, args []engine.Value) (obj engine.Object, err error) {
		defer capture(ctx, &err)
		obj, nerr := fn(ctx, args)
		if nerr != nil {
			return engine.Object{}, raise(ctx, nerr)
		}
		return obj, nil
	}
}

// Getter adapts fn to a named property getter. The property name is fixed by
// the binding site, so fn never sees it.
func Getter(fn GetterFunc) engine.GetPropertyFunc {
	return func(ctx *engine.Context, this engine.Object, _ string) (v engine.Value, err error) {
		defer capture(ctx, &err)
		v, nerr := fn(ctx, this)
		if nerr != nil {
			return engine.Value{}, raise(ctx, nerr)
		}
		return v, nil
	}
}

// Setter adapts fn to a named property setter. A successful native call
// always consumes the write.
func Setter(fn SetterFunc) engine.SetPropertyFunc {
	return func(ctx *engine.Context, this engine.Object, _ string, value engine.Value) (handled bool, err error) {
		defer capture(ctx, &err)
		if nerr := fn(ctx, this, value); nerr != nil {
			return false, raise(ctx, nerr)
		}
		return true, nil
	}
}

// IndexedGetter adapts fn to a property getter keyed by decimal index
// strings. A key that does not parse as a non-negative integer declines, so
// resolution falls through to the rest of the class chain. Once fn runs, an
// out-of-range index reads as undefined, an invalid-argument failure
// declines, and any other failure raises.
func IndexedGetter(fn IndexedGetterFunc) engine.GetPropertyFunc {
	return func(ctx *engine.Context, this engine.Object, name string) (v engine.Value, err error) {
		defer capture(ctx, &err)
		index, perr := ParseIndex(name)
		if perr != nil {
			return engine.Value{}, nil
		}
		v, nerr := fn(ctx, this, index)
		if nerr == nil {
			return v, nil
		}
		var re *RangeError
		if errors.As(nerr, &re) {
			return engine.Undefined(), nil
		}
		var ae *ArgumentError
		if errors.As(nerr, &ae) {
			return engine.Value{}, nil
		}
		return engine.Value{}, raise(ctx, nerr)
	}
}

// IndexedSetter adapts fn to a property setter keyed by decimal index
// strings. Unlike the getter, a bad key is an error here, not a decline: a
// write that names an index must land or raise. Invalid-argument failures
// from either the key parse or fn report as "Invalid index"; out-of-range
// failures report their own message.
func IndexedSetter(fn IndexedSetterFunc) engine.SetPropertyFunc {
	return func(ctx *engine.Context, this engine.Object, name string, value engine.Value) (handled bool, err error) {
		defer capture(ctx, &err)
		index, perr := ParseIndex(name)
		if perr == nil {
			perr = fn(ctx, this, index, value)
		}
		if perr != nil {
			var ae *ArgumentError
			if errors.As(perr, &ae) {
				return false, raise(ctx, errors.New("Invalid index"))
			}
			return false, raise(ctx, perr)
		}
		return true, nil
	}
}

// CallFunction invokes fn with the given receiver, rethrowing an engine
// exception raised by the call as a wrapped *Exception.
func CallFunction(ctx *engine.Context, fn engine.Object, this engine.Object, args ...engine.Value) (engine.Value, error) {
	v, err := ctx.Call(fn, this, args)
	if err != nil {
		return engine.Value{}, WrapError(ctx, err)
	}
	return v, nil
}

// IsObjectOfType reports whether v is an instance of the named type, looked
// up as a constructor on the global object. Engine exceptions raised along
// the way rethrow as *Exception.
func IsObjectOfType(ctx *engine.Context, v engine.Value, typeName string) (bool, error) {
	ctorVal, err := PropertyValue(ctx, ctx.Global(), typeName)
	if err != nil {
		return false, err
	}
	ctor, err := FunctionValue(ctx, ctorVal, fmt.Sprintf("Constructor '%s' is not defined", typeName))
	if err != nil {
		return false, err
	}
	ok, err := ctx.InstanceOf(v, ctor)
	if err != nil {
		return false, WrapError(ctx, err)
	}
	return ok, nil
}

// IsObjectOfClass reports whether v is an object whose class chain includes cls.
func IsObjectOfClass(ctx *engine.Context, v engine.Value, cls *engine.Class) bool {
	return ctx.IsObjectOfClass(v, cls)
}
