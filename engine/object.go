package engine

import (
	"time"

	"github.com/dlclark/regexp2"
)

type objectKind uint8

const (
	objPlain objectKind = iota
	objArray
	objFunction
	objDate
	objBuffer
	objRegExp
	objError
)

// object is the heap record behind every object-kind Value. Exotic kinds
// (array, date, buffer, regexp, function, error) carry their payload in the
// dedicated fields; plain objects and class instances use only props.
type object struct {
	kind  objectKind
	class *Class

	props map[string]Value
	order []string

	priv      any  // private native data slot
	finalized bool // finalizer chain already ran

	elems []Value // objArray
	date  time.Time
	buf   []byte
	re    *regexp2.Regexp
	reSrc string
	reFlg string

	call      CallFunc // objFunction
	construct ConstructFunc
	ctorClass *Class // class this function constructs, if any
	fnName    string

	fnCache map[string]Value // lazily created static-function objects
}

// Object is a handle to an object-kind value. The zero Object is invalid.
type Object struct {
	o *object
}

// Valid reports whether the handle refers to an object.
func (o Object) Valid() bool { return o.o != nil }

// Value returns the object as a Value.
func (o Object) Value() Value {
	if o.o == nil {
		return Value{}
	}
	return Value{kind: KindObject, obj: o.o}
}

// Class returns the class the object was created with, or nil.
func (o Object) Class() *Class {
	if o.o == nil {
		return nil
	}
	return o.o.class
}

// Callable reports whether the object can be invoked as a function.
func (o Object) Callable() bool {
	return o.o != nil && o.o.call != nil
}

// Private returns the object's private native data slot.
func (o Object) Private() any {
	if o.o == nil {
		return nil
	}
	return o.o.priv
}

// SetPrivate stores p in the object's private native data slot.
func (o Object) SetPrivate(p any) {
	if o.o != nil {
		o.o.priv = p
	}
}

// Same reports whether two handles refer to the same object.
func (o Object) Same(p Object) bool { return o.o == p.o }

func (o *object) setOwn(name string, v Value) {
	if o.props == nil {
		o.props = make(map[string]Value)
	}
	if _, ok := o.props[name]; !ok {
		o.order = append(o.order, name)
	}
	o.props[name] = v
}

func (o *object) own(name string) (Value, bool) {
	v, ok := o.props[name]
	return v, ok
}
