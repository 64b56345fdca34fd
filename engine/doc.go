// Package engine is a minimal embedded dynamic runtime: tagged values, an
// object heap with class-based dispatch, engine exceptions, and the fixed
// primitive surface the glint bridge builds on (coercion, property access,
// invocation, class creation).
//
// The engine executes no script syntax. Function and constructor objects are
// always backed by native callbacks; the value of the package is the object
// model those callbacks plug into.
//
// A Context is single-threaded: all operations run synchronously on the
// goroutine that owns it, and finalizers run only from explicit
// [Context.Finalize] or [Context.Close], never concurrently.
package engine
