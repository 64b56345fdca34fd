package glint

import (
	"io"

	"github.com/glint-lang/glint/engine"
)

// Destroyer is implemented by wrapped native objects that need explicit
// teardown when their engine wrapper is finalized.
type Destroyer interface {
	Destroy()
}

// Finalizer returns an engine finalizer for wrappers owning a native T.
// The finalizer destroys the private-slot value (via Destroy or Close when
// implemented) and nulls the slot. It is idempotent and never fails:
// finalization is not allowed to raise, so a Close error is dropped.
func Finalizer[T any]() engine.FinalizeFunc {
	return func(obj engine.Object) {
		p := obj.Private()
		if p == nil {
			return
		}
		if t, ok := p.(T); ok {
			switch d := any(t).(type) {
			case Destroyer:
				d.Destroy()
			case io.Closer:
				_ = d.Close()
			}
		}
		obj.SetPrivate(nil)
	}
}

// Internal returns the wrapper's private-slot value as T without ownership
// transfer. The result must not be retained past the wrapper's finalization.
// A null or foreign slot yields the zero T.
func Internal[T any](obj engine.Object) T {
	t, _ := obj.Private().(T)
	return t
}

// NewWrapperClass builds the class definition for wrappers owning a native
// T: the supplied callbacks form the dispatch table, Finalizer[T] is bound
// as the destructor hook, and parent enables delegation for property lookups
// the class declines. Any callback, table, or parent may be nil.
func NewWrapperClass[T any](
	ctx *engine.Context,
	name string,
	getter engine.GetPropertyFunc,
	setter engine.SetPropertyFunc,
	funcs []engine.StaticFunction,
	propertyNames engine.PropertyNamesFunc,
	parent *engine.Class,
	values []engine.StaticValue,
) *engine.Class {
	return ctx.DefineClass(engine.ClassDefinition{
		Name:            name,
		Finalize:        Finalizer[T](),
		GetProperty:     getter,
		SetProperty:     setter,
		PropertyNames:   propertyNames,
		Parent:          parent,
		StaticFunctions: funcs,
		StaticValues:    values,
	})
}

// WrapObject creates the engine wrapper owning native. Ownership transfers
// to the wrapper: the native object is destroyed exactly once, when the
// engine finalizes it, never by native code directly.
func WrapObject[T any](ctx *engine.Context, cls *engine.Class, native T) engine.Object {
	return ctx.NewObject(cls, native)
}
