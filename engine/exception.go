package engine

// Exception is an engine exception in flight: an error carrying the thrown
// engine value. The string rendering is captured when the exception is
// created so Error never needs a Context.
type Exception struct {
	value Value
	msg   string
}

// Error returns the string rendering of the thrown value.
func (e *Exception) Error() string { return e.msg }

// Value returns the thrown engine value unchanged.
func (e *Exception) Value() Value { return e.value }

// Throw builds an engine exception from an arbitrary value.
func (c *Context) Throw(v Value) *Exception {
	if !v.Valid() {
		v = Undefined()
	}
	return &Exception{value: v, msg: c.ToString(v)}
}

// throw normalizes a callback error into an *Exception: exceptions pass
// through unchanged, anything else becomes a fresh error object.
func (c *Context) throw(err error) *Exception {
	if ex, ok := err.(*Exception); ok {
		return ex
	}
	return &Exception{value: c.NewError(err.Error()).Value(), msg: err.Error()}
}
