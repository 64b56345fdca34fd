package engine

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean coerces v to a boolean: undefined, null, NaN, zero, and the
// empty string are false; every object is true.
func (c *Context) ToBoolean(v Value) bool {
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindString:
		return v.str != ""
	case KindObject:
		return true
	default:
		return false
	}
}

// ToNumber coerces v to a number. Objects convert through their primitive
// value (dates to epoch milliseconds, otherwise a "valueOf" call falling
// back to the string rendering), so an exception raised by a class getter
// along that path propagates.
func (c *Context) ToNumber(v Value) (float64, error) {
	switch v.kind {
	case KindNull:
		return 0, nil
	case KindBoolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindNumber:
		return v.num, nil
	case KindString:
		return parseNumeric(v.str), nil
	case KindObject:
		if v.obj.kind == objDate {
			return float64(v.obj.date.UnixMilli()), nil
		}
		prim, err := c.toPrimitive(v)
		if err != nil {
			return math.NaN(), err
		}
		if prim.kind == KindObject {
			return math.NaN(), nil
		}
		return c.ToNumber(prim)
	default:
		return math.NaN(), nil
	}
}

// toPrimitive converts an object value to a primitive: a callable "valueOf"
// property wins when it yields a primitive, otherwise the string rendering.
func (c *Context) toPrimitive(v Value) (Value, error) {
	obj, _ := v.Object()
	vf, err := c.Property(obj, "valueOf")
	if err != nil {
		return Value{}, err
	}
	if fo, ok := vf.Object(); ok && fo.Callable() {
		r, err := c.Call(fo, obj, nil)
		if err != nil {
			return Value{}, err
		}
		if r.Valid() && r.kind != KindObject {
			return r, nil
		}
	}
	return String(c.ToString(v)), nil
}

// parseNumeric applies string-to-number rules: whitespace-only is zero,
// "Infinity" forms are infinite, anything unparsable is NaN.
func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if n, err := strconv.ParseUint(s[2:], 16, 64); err == nil {
			return float64(n)
		}
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToString renders v as a string. ToString is total: every value has a
// rendering, including exotic objects.
func (c *Context) ToString(v Value) string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	case KindObject:
		return c.objectString(v.obj)
	default:
		return ""
	}
}

func (c *Context) objectString(o *object) string {
	switch o.kind {
	case objArray:
		parts := make([]string, len(o.elems))
		for i, e := range o.elems {
			if e.IsUndefined() || e.IsNull() {
				continue
			}
			parts[i] = c.ToString(e)
		}
		return strings.Join(parts, ",")
	case objDate:
		return o.date.UTC().Format("Mon Jan 02 2006 15:04:05 GMT-0700")
	case objFunction:
		return "function " + o.fnName + "() { [native code] }"
	case objRegExp:
		return "/" + o.reSrc + "/" + o.reFlg
	case objBuffer:
		return "[object ArrayBuffer]"
	case objError:
		name, _ := o.own("name")
		msg, _ := o.own("message")
		if msg.kind == KindString && msg.str != "" {
			return c.ToString(name) + ": " + msg.str
		}
		return c.ToString(name)
	default:
		if o.class != nil {
			return "[object " + o.class.name + "]"
		}
		return "[object Object]"
	}
}

// FormatNumber renders a number the way script code expects: integral
// values without a fraction, NaN and infinities by name.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// ToObject returns v as an object. Only object-kind values convert; null,
// undefined, and primitives fail.
func (c *Context) ToObject(v Value) (Object, error) {
	if obj, ok := v.Object(); ok {
		return obj, nil
	}
	return Object{}, c.throw(&coercionError{kind: v.kind})
}

type coercionError struct {
	kind Kind
}

func (e *coercionError) Error() string {
	return "cannot convert " + e.kind.String() + " to an object"
}
