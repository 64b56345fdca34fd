package engine

// GetPropertyFunc handles a named property read on a class instance.
// Returning an invalid Value with a nil error declines: the engine continues
// property resolution (static values, static functions, parent class, own
// properties). A non-nil error raises an engine exception.
type GetPropertyFunc func(c *Context, obj Object, name string) (Value, error)

// SetPropertyFunc handles a named property write on a class instance.
// Returning (false, nil) declines; (true, nil) means the write was handled.
// A non-nil error raises an engine exception.
type SetPropertyFunc func(c *Context, obj Object, name string, value Value) (bool, error)

// CallFunc is the calling shape of a function object: callee, receiver,
// argument vector. An invalid result Value is treated as undefined.
type CallFunc func(c *Context, fn Object, this Object, args []Value) (Value, error)

// ConstructFunc is the calling shape of a constructor invocation.
type ConstructFunc func(c *Context, ctor Object, args []Value) (Object, error)

// FinalizeFunc is invoked when an object is finalized. Finalizers must not
// fail and must not run engine operations.
type FinalizeFunc func(obj Object)

// PropertyNamesFunc enumerates the property names a class instance exposes
// beyond its own properties.
type PropertyNamesFunc func(c *Context, obj Object) []string

// StaticFunction binds a function-valued property shared by all instances of
// a class.
type StaticFunction struct {
	Name string
	Call CallFunc
}

// StaticValue binds a named property to getter/setter callbacks shared by
// all instances of a class. Either callback may be nil.
type StaticValue struct {
	Name string
	Get  GetPropertyFunc
	Set  SetPropertyFunc
}

// ClassDefinition describes a class to register with DefineClass. The
// definition is copied; later mutation has no effect on the class.
type ClassDefinition struct {
	Name            string
	Finalize        FinalizeFunc
	GetProperty     GetPropertyFunc
	SetProperty     SetPropertyFunc
	PropertyNames   PropertyNamesFunc
	Parent          *Class
	StaticFunctions []StaticFunction
	StaticValues    []StaticValue
}

// Class is an immutable dispatch descriptor shared by a family of objects.
// Classes live for the lifetime of the Context that defined them.
type Class struct {
	name          string
	finalize      FinalizeFunc
	getProperty   GetPropertyFunc
	setProperty   SetPropertyFunc
	propertyNames PropertyNamesFunc
	parent        *Class
	staticFuncs   []StaticFunction
	staticVals    []StaticValue
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the parent class, or nil.
func (c *Class) Parent() *Class { return c.parent }

// DefineClass registers a class from def and returns it.
func (c *Context) DefineClass(def ClassDefinition) *Class {
	cls := &Class{
		name:          def.Name,
		finalize:      def.Finalize,
		getProperty:   def.GetProperty,
		setProperty:   def.SetProperty,
		propertyNames: def.PropertyNames,
		parent:        def.Parent,
		staticFuncs:   append([]StaticFunction(nil), def.StaticFunctions...),
		staticVals:    append([]StaticValue(nil), def.StaticValues...),
	}
	c.classes = append(c.classes, cls)
	return cls
}

// hasFinalizer reports whether the class chain carries any finalizer.
func (cls *Class) hasFinalizer() bool {
	for c := cls; c != nil; c = c.parent {
		if c.finalize != nil {
			return true
		}
	}
	return false
}
