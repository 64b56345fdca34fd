package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
)

// Context owns an object heap, the registered classes, and the global
// object. A Context is not safe for concurrent use from multiple goroutines;
// callers that share one must serialize access externally. Always call
// [Context.Close] when done so wrapper finalizers run.
type Context struct {
	global    Object
	classes   []*Class
	instances []*object // class instances awaiting finalization
	closed    bool
}

// NewContext creates an empty Context with a plain global object.
func NewContext() *Context {
	c := &Context{}
	c.global = Object{o: &object{kind: objPlain}}
	return c
}

// Global returns the context's global object.
func (c *Context) Global() Object { return c.global }

// Close finalizes every live class instance. Safe to call more than once.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, o := range c.instances {
		c.Finalize(Object{o: o})
	}
	c.instances = nil
}

// Finalize runs the object's class finalizer chain. It runs at most once per
// object; repeated calls are no-ops. Finalizers never fail.
func (c *Context) Finalize(obj Object) {
	o := obj.o
	if o == nil || o.finalized {
		return
	}
	o.finalized = true
	for cls := o.class; cls != nil; cls = cls.parent {
		if cls.finalize != nil {
			cls.finalize(obj)
		}
	}
}

// -----------------------------------------------------------------------------
// Object creation
// -----------------------------------------------------------------------------

// NewObject creates an object. cls may be nil for a plain object; private is
// stored in the object's private native data slot. Objects whose class chain
// carries a finalizer are tracked and finalized by Close.
func (c *Context) NewObject(cls *Class, private any) Object {
	o := &object{kind: objPlain, class: cls, priv: private}
	if cls != nil && cls.hasFinalizer() {
		c.instances = append(c.instances, o)
	}
	return Object{o: o}
}

// NewArray creates an array object holding items.
func (c *Context) NewArray(items ...Value) Object {
	elems := make([]Value, len(items))
	for i, v := range items {
		if !v.Valid() {
			v = Undefined()
		}
		elems[i] = v
	}
	return Object{o: &object{kind: objArray, elems: elems}}
}

// NewDate creates a date object for t.
func (c *Context) NewDate(t time.Time) Object {
	return Object{o: &object{kind: objDate, date: t}}
}

// NewArrayBuffer creates a byte buffer object backed by data.
func (c *Context) NewArrayBuffer(data []byte) Object {
	return Object{o: &object{kind: objBuffer, buf: data}}
}

// NewRegExp compiles pattern with the given flag string ("i", "m", "s" in
// any combination) into a regexp object. Backtracking semantics follow
// regexp2 rather than RE2.
func (c *Context) NewRegExp(pattern, flags string) (Object, error) {
	var opts regexp2.RegexOptions
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		default:
			return Object{}, fmt.Errorf("invalid regular expression flag %q", string(f))
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return Object{}, err
	}
	return Object{o: &object{kind: objRegExp, re: re, reSrc: pattern, reFlg: flags}}, nil
}

// NewFunction creates a function object backed by call.
func (c *Context) NewFunction(name string, call CallFunc) Object {
	return Object{o: &object{kind: objFunction, fnName: name, call: call}}
}

// NewConstructor creates a constructor function object for cls. Instances
// report true from InstanceOf against it. Calling the object as a plain
// function raises an exception.
func (c *Context) NewConstructor(cls *Class, construct ConstructFunc) Object {
	name := ""
	if cls != nil {
		name = cls.name
	}
	o := &object{
		kind:      objFunction,
		fnName:    name,
		ctorClass: cls,
		construct: construct,
	}
	o.call = func(ec *Context, fn, this Object, args []Value) (Value, error) {
		return Value{}, fmt.Errorf("constructor %s requires 'new'", name)
	}
	return Object{o: o}
}

// NewError creates an error object with the given message.
func (c *Context) NewError(message string) Object {
	o := &object{kind: objError}
	o.setOwn("name", String("Error"))
	o.setOwn("message", String(message))
	return Object{o: o}
}

// -----------------------------------------------------------------------------
// Type predicates
// -----------------------------------------------------------------------------

// IsArray reports whether v is an array object.
func (c *Context) IsArray(v Value) bool { return v.kind == KindObject && v.obj.kind == objArray }

// IsDate reports whether v is a date object.
func (c *Context) IsDate(v Value) bool { return v.kind == KindObject && v.obj.kind == objDate }

// IsArrayBuffer reports whether v is a byte buffer object.
func (c *Context) IsArrayBuffer(v Value) bool {
	return v.kind == KindObject && v.obj.kind == objBuffer
}

// IsRegExp reports whether v is a regexp object.
func (c *Context) IsRegExp(v Value) bool { return v.kind == KindObject && v.obj.kind == objRegExp }

// IsError reports whether v is an error object.
func (c *Context) IsError(v Value) bool { return v.kind == KindObject && v.obj.kind == objError }

// IsObjectOfClass reports whether v is an object whose class chain includes cls.
func (c *Context) IsObjectOfClass(v Value, cls *Class) bool {
	if v.kind != KindObject || cls == nil {
		return false
	}
	for k := v.obj.class; k != nil; k = k.parent {
		if k == cls {
			return true
		}
	}
	return false
}

// ArrayLen returns the element count of an array object, or 0.
func (c *Context) ArrayLen(obj Object) int {
	if obj.o == nil || obj.o.kind != objArray {
		return 0
	}
	return len(obj.o.elems)
}

// BufferBytes returns the backing bytes of a byte buffer object, or nil.
func (c *Context) BufferBytes(obj Object) []byte {
	if obj.o == nil || obj.o.kind != objBuffer {
		return nil
	}
	return obj.o.buf
}

// DateTime returns the time behind a date object.
func (c *Context) DateTime(obj Object) (time.Time, bool) {
	if obj.o == nil || obj.o.kind != objDate {
		return time.Time{}, false
	}
	return obj.o.date, true
}

// RegExpMatch reports whether the regexp object matches s.
func (c *Context) RegExpMatch(re Object, s string) (bool, error) {
	if re.o == nil || re.o.kind != objRegExp {
		return false, fmt.Errorf("value is not a regular expression")
	}
	return re.o.re.MatchString(s)
}

// -----------------------------------------------------------------------------
// Property access
// -----------------------------------------------------------------------------

// Property reads a named property. Resolution order: intrinsic properties of
// exotic kinds, array index names, then per class in the chain the
// GetProperty callback, static values, and static functions, then own
// properties. Missing properties read as undefined. A callback error is
// raised as an engine exception.
func (c *Context) Property(obj Object, name string) (Value, error) {
	o := obj.o
	if o == nil {
		return Value{}, c.throw(fmt.Errorf("property %q read on invalid object", name))
	}

	if v, ok := o.intrinsic(name); ok {
		return v, nil
	}
	if o.kind == objArray {
		if idx, err := strconv.Atoi(name); err == nil && idx >= 0 {
			if idx < len(o.elems) {
				return o.elems[idx], nil
			}
			return Undefined(), nil
		}
	}

	for cls := o.class; cls != nil; cls = cls.parent {
		if cls.getProperty != nil {
			v, err := cls.getProperty(c, obj, name)
			if err != nil {
				return Value{}, c.throw(err)
			}
			if v.Valid() {
				return v, nil
			}
		}
		for _, sv := range cls.staticVals {
			if sv.Name == name && sv.Get != nil {
				v, err := sv.Get(c, obj, name)
				if err != nil {
					return Value{}, c.throw(err)
				}
				if v.Valid() {
					return v, nil
				}
			}
		}
		for _, sf := range cls.staticFuncs {
			if sf.Name == name {
				return c.staticFuncValue(o, sf), nil
			}
		}
	}

	if v, ok := o.own(name); ok {
		return v, nil
	}
	return Undefined(), nil
}

// staticFuncValue returns the per-object function value for a static
// function entry, creating and caching it on first access.
func (c *Context) staticFuncValue(o *object, sf StaticFunction) Value {
	if v, ok := o.fnCache[sf.Name]; ok {
		return v
	}
	fn := c.NewFunction(sf.Name, sf.Call).Value()
	if o.fnCache == nil {
		o.fnCache = make(map[string]Value)
	}
	o.fnCache[sf.Name] = fn
	return fn
}

// SetProperty writes a named property. Class SetProperty callbacks and
// static value setters run first and may consume the write; otherwise the
// value lands in the object's own properties. A callback error is raised as
// an engine exception.
func (c *Context) SetProperty(obj Object, name string, v Value) error {
	o := obj.o
	if o == nil {
		return c.throw(fmt.Errorf("property %q write on invalid object", name))
	}
	if !v.Valid() {
		v = Undefined()
	}

	for cls := o.class; cls != nil; cls = cls.parent {
		if cls.setProperty != nil {
			handled, err := cls.setProperty(c, obj, name, v)
			if err != nil {
				return c.throw(err)
			}
			if handled {
				return nil
			}
		}
		for _, sv := range cls.staticVals {
			if sv.Name == name && sv.Set != nil {
				handled, err := sv.Set(c, obj, name, v)
				if err != nil {
					return c.throw(err)
				}
				if handled {
					return nil
				}
			}
		}
	}

	if o.kind == objArray {
		if idx, err := strconv.Atoi(name); err == nil && idx >= 0 {
			o.setElem(idx, v)
			return nil
		}
	}
	o.setOwn(name, v)
	return nil
}

// PropertyAtIndex reads an indexed property. Arrays resolve directly with
// out-of-range reads yielding undefined; other objects route through the
// named property machinery with the decimal index as key.
func (c *Context) PropertyAtIndex(obj Object, index int) (Value, error) {
	o := obj.o
	if o != nil && o.kind == objArray {
		if index >= 0 && index < len(o.elems) {
			return o.elems[index], nil
		}
		return Undefined(), nil
	}
	return c.Property(obj, strconv.Itoa(index))
}

// SetPropertyAtIndex writes an indexed property, growing arrays as needed.
func (c *Context) SetPropertyAtIndex(obj Object, index int, v Value) error {
	o := obj.o
	if o != nil && o.kind == objArray && index >= 0 {
		if !v.Valid() {
			v = Undefined()
		}
		o.setElem(index, v)
		return nil
	}
	return c.SetProperty(obj, strconv.Itoa(index), v)
}

func (o *object) setElem(idx int, v Value) {
	for len(o.elems) <= idx {
		o.elems = append(o.elems, Undefined())
	}
	o.elems[idx] = v
}

// PropertyNames enumerates the object's own property names, array indices,
// and whatever the class chain's PropertyNames callbacks contribute.
func (c *Context) PropertyNames(obj Object) []string {
	o := obj.o
	if o == nil {
		return nil
	}
	var names []string
	if o.kind == objArray {
		for i := range o.elems {
			names = append(names, strconv.Itoa(i))
		}
	}
	names = append(names, o.order...)
	for cls := o.class; cls != nil; cls = cls.parent {
		if cls.propertyNames != nil {
			names = append(names, cls.propertyNames(c, obj)...)
		}
		for _, sv := range cls.staticVals {
			names = append(names, sv.Name)
		}
		for _, sf := range cls.staticFuncs {
			names = append(names, sf.Name)
		}
	}
	return names
}

// intrinsic resolves the built-in properties of exotic object kinds.
func (o *object) intrinsic(name string) (Value, bool) {
	switch o.kind {
	case objArray:
		if name == "length" {
			return Number(float64(len(o.elems))), true
		}
	case objBuffer:
		if name == "byteLength" {
			return Number(float64(len(o.buf))), true
		}
	case objRegExp:
		switch name {
		case "source":
			return String(o.reSrc), true
		case "flags":
			return String(o.reFlg), true
		}
	case objFunction:
		if name == "name" {
			return String(o.fnName), true
		}
	}
	return Value{}, false
}

// -----------------------------------------------------------------------------
// Invocation
// -----------------------------------------------------------------------------

// Call invokes fn as a function with the given receiver and arguments. An
// error from the callback is raised as an engine exception; an invalid
// result reads as undefined.
func (c *Context) Call(fn Object, this Object, args []Value) (Value, error) {
	if fn.o == nil || fn.o.call == nil {
		return Value{}, c.throw(fmt.Errorf("value is not a function"))
	}
	v, err := fn.o.call(c, fn, this, args)
	if err != nil {
		return Value{}, c.throw(err)
	}
	if !v.Valid() {
		v = Undefined()
	}
	return v, nil
}

// Construct invokes ctor as a constructor.
func (c *Context) Construct(ctor Object, args []Value) (Object, error) {
	if ctor.o == nil || ctor.o.construct == nil {
		return Object{}, c.throw(fmt.Errorf("value is not a constructor"))
	}
	obj, err := ctor.o.construct(c, ctor, args)
	if err != nil {
		return Object{}, c.throw(err)
	}
	return obj, nil
}

// InstanceOf reports whether v is an instance of the class ctor constructs.
// Raises an engine exception when ctor is not a constructor.
func (c *Context) InstanceOf(v Value, ctor Object) (bool, error) {
	if ctor.o == nil || ctor.o.ctorClass == nil {
		name := "value"
		if ctor.o != nil && ctor.o.fnName != "" {
			name = ctor.o.fnName
		}
		return false, c.throw(fmt.Errorf("%s is not a constructor", name))
	}
	return c.IsObjectOfClass(v, ctor.o.ctorClass), nil
}
