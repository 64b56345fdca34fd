// Package glint bridges native Go objects into an embedded dynamic runtime.
//
// # Overview
//
// glint sits between native Go code and the object model of the
// [github.com/glint-lang/glint/engine] package. It provides:
//
//   - Conversion helpers that turn engine values into validated Go values
//   - An exception bridge that carries engine exceptions through Go code
//     and re-surfaces them unchanged
//   - Wrapper classes that tie a native Go object's lifetime to its
//     engine wrapper, with exactly-once teardown
//   - Calling-convention adapters that expose plain Go functions as
//     engine methods, constructors, getters, setters, and indexed
//     accessors
//   - Schema-driven bulk conversion between positional arrays and named
//     dictionaries
//
// # Quick Start
//
//	import (
//	    "github.com/glint-lang/glint"
//	    "github.com/glint-lang/glint/engine"
//	)
//
//	type Counter struct{ value float64 }
//
//	func (c *Counter) Destroy() {} // teardown hook, runs once
//
//	func main() {
//	    ctx := engine.NewContext()
//	    defer ctx.Close()
//
//	    cls := glint.NewWrapperClass[*Counter](ctx, "Counter",
//	        nil, nil,
//	        []engine.StaticFunction{{
//	            Name: "add",
//	            Call: glint.Method(func(ctx *engine.Context, this engine.Object, args []engine.Value) (engine.Value, error) {
//	                if err := glint.ValidateArgCount(len(args), 1, ""); err != nil {
//	                    return engine.Value{}, err
//	                }
//	                n, err := glint.NumberValue(ctx, args[0])
//	                if err != nil {
//	                    return engine.Value{}, err
//	                }
//	                c := glint.Internal[*Counter](this)
//	                c.value += n
//	                return engine.Number(c.value), nil
//	            }),
//	        }},
//	        nil, nil, nil)
//
//	    obj := glint.WrapObject(ctx, cls, &Counter{})
//	    add, _ := glint.ObjectProperty(ctx, obj, "add", "")
//	    sum, _ := glint.CallFunction(ctx, add, obj, engine.Number(2))
//	    _ = sum // 2
//	}
//
// # Error Handling
//
// Native callbacks report failure with ordinary Go errors. At the adapter
// boundary an error is raised into the engine as an exception; an
// [*Exception] (a wrapped engine exception traveling through Go code)
// re-surfaces its original engine value rather than a re-rendered copy.
// Two error types get special treatment from the indexed accessors:
// [*ArgumentError] marks an invalid argument and [*RangeError] an
// out-of-range index, letting indexed reads distinguish "not my property"
// from "mine, but absent".
package glint
