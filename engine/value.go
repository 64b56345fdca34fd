package engine

// Kind identifies the primitive category of a Value.
type Kind uint8

const (
	// KindInvalid is the kind of the zero Value. It means "no value" and is
	// distinct from KindUndefined: callbacks return an invalid Value to
	// decline handling a property, while an explicit undefined result is a
	// real value.
	KindInvalid Kind = iota
	KindUndefined
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a runtime value. Values are small handles; object-kind values
// share the underlying object record, so copying a Value never copies an
// object. The zero Value is invalid (see KindInvalid).
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	obj  *object
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{kind: KindUndefined} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number returns a number value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Valid reports whether v carries a value at all.
func (v Value) Valid() bool { return v.kind != KindInvalid }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsBoolean() bool   { return v.kind == KindBoolean }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsObject() bool    { return v.kind == KindObject }

// Bool returns the raw boolean payload. Only meaningful for boolean values;
// use Context.ToBoolean for coercion.
func (v Value) Bool() bool { return v.b }

// Num returns the raw number payload. Only meaningful for number values.
func (v Value) Num() float64 { return v.num }

// Str returns the raw string payload. Only meaningful for string values.
func (v Value) Str() string { return v.str }

// Object returns the value as an Object handle. The second result is false
// when the value is not object-kind.
func (v Value) Object() (Object, bool) {
	if v.kind != KindObject {
		return Object{}, false
	}
	return Object{o: v.obj}, true
}

// Same reports whether two values are identical: same kind and same payload,
// with object values compared by identity. NaN is identical to NaN here.
func (v Value) Same(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindBoolean:
		return v.b == w.b
	case KindNumber:
		return v.num == w.num || (v.num != v.num && w.num != w.num)
	case KindString:
		return v.str == w.str
	case KindObject:
		return v.obj == w.obj
	default:
		return true
	}
}
