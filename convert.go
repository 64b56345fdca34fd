package glint

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/glint-lang/glint/engine"
)

// NumberValue converts v to a float64. Null is rejected outright, an engine
// exception raised during coercion is rethrown wrapped, and a result that is
// not a number fails as an invalid argument.
func NumberValue(ctx *engine.Context, v engine.Value) (float64, error) {
	if v.IsNull() {
		return 0, &ArgumentError{Message: "`null` is not a number."}
	}
	n, err := ctx.ToNumber(v)
	if err != nil {
		return 0, WrapError(ctx, err)
	}
	if math.IsNaN(n) {
		return 0, &ArgumentError{Message: "Value not convertible to a number."}
	}
	return n, nil
}

// BoolValue converts v to a bool. Only values whose declared kind is boolean
// pass; there is no truthy coercion of numbers, strings, or objects.
func BoolValue(ctx *engine.Context, v engine.Value) (bool, error) {
	if !v.IsBoolean() {
		return false, &ArgumentError{Message: "Value is not a boolean."}
	}
	return v.Bool(), nil
}

// StringForValue renders v as a string. Every engine value has a rendering.
func StringForValue(ctx *engine.Context, v engine.Value) string {
	return ctx.ToString(v)
}

// ValidatedString renders v as a string and fails when the result is empty,
// naming the offending property when name is non-empty.
func ValidatedString(ctx *engine.Context, v engine.Value, name string) (string, error) {
	s := ctx.ToString(v)
	if s == "" {
		if name != "" {
			return "", argErrorf("Property '%s' must be a non-empty string", name)
		}
		return "", &ArgumentError{Message: "Value must be a non-empty string"}
	}
	return s, nil
}

// ObjectValue validates that v converts to an engine object. The failure
// message defaults to "Value is not an object." unless msg is supplied.
func ObjectValue(ctx *engine.Context, v engine.Value, msg string) (engine.Object, error) {
	obj, err := ctx.ToObject(v)
	if err != nil || !obj.Valid() {
		return engine.Object{}, errors.New(orMessage(msg, "Value is not an object."))
	}
	return obj, nil
}

// FunctionValue validates that v is a callable object.
func FunctionValue(ctx *engine.Context, v engine.Value, msg string) (engine.Object, error) {
	obj, err := ctx.ToObject(v)
	if err != nil || !obj.Valid() || !obj.Callable() {
		return engine.Object{}, errors.New(orMessage(msg, "Value is not a function."))
	}
	return obj, nil
}

// DateValue validates that v is a date object.
func DateValue(ctx *engine.Context, v engine.Value, msg string) (engine.Object, error) {
	obj, err := ctx.ToObject(v)
	if err != nil || !obj.Valid() || !ctx.IsDate(obj.Value()) {
		return engine.Object{}, errors.New(orMessage(msg, "Value is not a date."))
	}
	return obj, nil
}

// PropertyValue reads a named property, rethrowing an engine exception
// raised by the read as a wrapped *Exception.
func PropertyValue(ctx *engine.Context, obj engine.Object, name string) (engine.Value, error) {
	v, err := ctx.Property(obj, name)
	if err != nil {
		return engine.Value{}, WrapError(ctx, err)
	}
	return v, nil
}

// PropertyAtIndex reads an indexed property, rethrowing engine exceptions.
func PropertyAtIndex(ctx *engine.Context, obj engine.Object, index int) (engine.Value, error) {
	v, err := ctx.PropertyAtIndex(obj, index)
	if err != nil {
		return engine.Value{}, WrapError(ctx, err)
	}
	return v, nil
}

// ObjectProperty reads a named property and validates it is a defined
// object. An undefined property is reported by name unless msg is supplied.
func ObjectProperty(ctx *engine.Context, obj engine.Object, name, msg string) (engine.Object, error) {
	v, err := PropertyValue(ctx, obj, name)
	if err != nil {
		return engine.Object{}, err
	}
	if v.IsUndefined() {
		return engine.Object{}, errors.New(orMessage(msg, fmt.Sprintf("Object property '%s' is undefined", name)))
	}
	return ObjectValue(ctx, v, msg)
}

// ObjectAtIndex reads an indexed property and validates it is an object.
func ObjectAtIndex(ctx *engine.Context, obj engine.Object, index int) (engine.Object, error) {
	v, err := PropertyAtIndex(ctx, obj, index)
	if err != nil {
		return engine.Object{}, err
	}
	return ObjectValue(ctx, v, "")
}

// StringProperty reads a named property as a validated non-empty string.
func StringProperty(ctx *engine.Context, obj engine.Object, name string) (string, error) {
	v, err := PropertyValue(ctx, obj, name)
	if err != nil {
		return "", err
	}
	return ValidatedString(ctx, v, name)
}

// SetProperty writes a named property, rethrowing engine exceptions.
func SetProperty(ctx *engine.Context, obj engine.Object, name string, v engine.Value) error {
	return WrapError(ctx, ctx.SetProperty(obj, name, v))
}

// ListLength reads the conventional "length" property of a list-like object.
func ListLength(ctx *engine.Context, obj engine.Object) (int, error) {
	v, err := PropertyValue(ctx, obj, "length")
	if err != nil {
		return 0, err
	}
	if !v.IsNumber() {
		return 0, errors.New("Missing property 'length'")
	}
	n, err := NumberValue(ctx, v)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ValidateArgCount fails unless exactly expected arguments were passed.
// These guards run first inside every adapted call.
func ValidateArgCount(argc, expected int, message string) error {
	if argc != expected {
		return &ArgumentError{Message: orMessage(message, "Invalid arguments")}
	}
	return nil
}

// ValidateArgCountAtLeast fails unless at least expected arguments were passed.
func ValidateArgCountAtLeast(argc, expected int, message string) error {
	if argc < expected {
		return &ArgumentError{Message: orMessage(message, "Invalid arguments")}
	}
	return nil
}

// ValidateArgRange fails unless the argument count lies in [min, max].
func ValidateArgRange(argc, min, max int, message string) error {
	if argc < min || argc > max {
		return &ArgumentError{Message: orMessage(message, "Invalid arguments")}
	}
	return nil
}

// ParseIndex parses a property key as a base-10 non-negative integer index.
// A malformed key is an invalid argument; a negative one is out of range.
func ParseIndex(key string) (int, error) {
	n, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, argErrorf("Cannot convert string '%s'", key)
	}
	if n < 0 {
		return 0, rangeErrorf("Index %s cannot be less than zero.", key)
	}
	return int(n), nil
}
