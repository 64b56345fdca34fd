package engine_test

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/glint-lang/glint/engine"
)

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		v    engine.Value
		kind engine.Kind
	}{
		{"zero value", engine.Value{}, engine.KindInvalid},
		{"undefined", engine.Undefined(), engine.KindUndefined},
		{"null", engine.Null(), engine.KindNull},
		{"boolean", engine.Boolean(true), engine.KindBoolean},
		{"number", engine.Number(1.5), engine.KindNumber},
		{"string", engine.String("x"), engine.KindString},
	}
	for _, tt := range tests {
		if got := tt.v.Kind(); got != tt.kind {
			t.Errorf("%s: Kind() = %v, want %v", tt.name, got, tt.kind)
		}
	}
	if (engine.Value{}).Valid() {
		t.Error("zero Value should be invalid")
	}
	if !engine.Undefined().Valid() {
		t.Error("undefined should be a valid value")
	}
}

func TestSame(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	a := ctx.NewArray().Value()
	b := ctx.NewArray().Value()

	if !a.Same(a) {
		t.Error("object should be identical to itself")
	}
	if a.Same(b) {
		t.Error("distinct objects should not be identical")
	}
	nan := engine.Number(math.NaN())
	if !nan.Same(engine.Number(math.NaN())) {
		t.Error("NaN should be identical to NaN")
	}
	if engine.Number(0).Same(engine.String("0")) {
		t.Error("values of different kinds should not be identical")
	}
}

func TestToBoolean(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	tests := []struct {
		v    engine.Value
		want bool
	}{
		{engine.Undefined(), false},
		{engine.Null(), false},
		{engine.Boolean(true), true},
		{engine.Number(0), false},
		{engine.Number(math.NaN()), false},
		{engine.Number(-3), true},
		{engine.String(""), false},
		{engine.String("false"), true},
		{ctx.NewArray().Value(), true},
	}
	for _, tt := range tests {
		if got := ctx.ToBoolean(tt.v); got != tt.want {
			t.Errorf("ToBoolean(%s) = %v, want %v", ctx.ToString(tt.v), got, tt.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	tests := []struct {
		name string
		v    engine.Value
		want float64
	}{
		{"null", engine.Null(), 0},
		{"true", engine.Boolean(true), 1},
		{"false", engine.Boolean(false), 0},
		{"number", engine.Number(2.5), 2.5},
		{"empty string", engine.String(""), 0},
		{"whitespace string", engine.String("  \t"), 0},
		{"decimal string", engine.String("12.5"), 12.5},
		{"hex string", engine.String("0x10"), 16},
		{"infinity string", engine.String("Infinity"), math.Inf(1)},
		{"negative infinity string", engine.String("-Infinity"), math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.ToNumber(tt.v)
			if err != nil {
				t.Fatalf("ToNumber failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToNumber = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("undefined is NaN", func(t *testing.T) {
		got, err := ctx.ToNumber(engine.Undefined())
		if err != nil {
			t.Fatalf("ToNumber failed: %v", err)
		}
		if !math.IsNaN(got) {
			t.Errorf("ToNumber(undefined) = %v, want NaN", got)
		}
	})

	t.Run("garbage string is NaN", func(t *testing.T) {
		got, err := ctx.ToNumber(engine.String("pelican"))
		if err != nil {
			t.Fatalf("ToNumber failed: %v", err)
		}
		if !math.IsNaN(got) {
			t.Errorf("ToNumber(\"pelican\") = %v, want NaN", got)
		}
	})

	t.Run("date converts to epoch milliseconds", func(t *testing.T) {
		at := time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC)
		got, err := ctx.ToNumber(ctx.NewDate(at).Value())
		if err != nil {
			t.Fatalf("ToNumber failed: %v", err)
		}
		if want := float64(at.UnixMilli()); got != want {
			t.Errorf("ToNumber(date) = %v, want %v", got, want)
		}
	})

	t.Run("object converts through valueOf", func(t *testing.T) {
		obj := ctx.NewObject(nil, nil)
		ctx.SetProperty(obj, "valueOf", ctx.NewFunction("valueOf",
			func(c *engine.Context, fn, this engine.Object, args []engine.Value) (engine.Value, error) {
				return engine.Number(42), nil
			}).Value())
		got, err := ctx.ToNumber(obj.Value())
		if err != nil {
			t.Fatalf("ToNumber failed: %v", err)
		}
		if got != 42 {
			t.Errorf("ToNumber = %v, want 42", got)
		}
	})

	t.Run("exception from valueOf propagates", func(t *testing.T) {
		obj := ctx.NewObject(nil, nil)
		ctx.SetProperty(obj, "valueOf", ctx.NewFunction("valueOf",
			func(c *engine.Context, fn, this engine.Object, args []engine.Value) (engine.Value, error) {
				return engine.Value{}, errors.New("boom")
			}).Value())
		_, err := ctx.ToNumber(obj.Value())
		var ex *engine.Exception
		if !errors.As(err, &ex) {
			t.Fatalf("expected *engine.Exception, got %v", err)
		}
	})
}

func TestToString(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	fn := ctx.NewFunction("greet", func(c *engine.Context, f, this engine.Object, args []engine.Value) (engine.Value, error) {
		return engine.Undefined(), nil
	})
	re, err := ctx.NewRegExp("a+b", "i")
	if err != nil {
		t.Fatalf("NewRegExp failed: %v", err)
	}
	cls := ctx.DefineClass(engine.ClassDefinition{Name: "Widget"})

	tests := []struct {
		name string
		v    engine.Value
		want string
	}{
		{"undefined", engine.Undefined(), "undefined"},
		{"null", engine.Null(), "null"},
		{"boolean", engine.Boolean(false), "false"},
		{"integral number", engine.Number(3), "3"},
		{"fractional number", engine.Number(2.5), "2.5"},
		{"NaN", engine.Number(math.NaN()), "NaN"},
		{"infinity", engine.Number(math.Inf(1)), "Infinity"},
		{"string", engine.String("hi"), "hi"},
		{"array joins with commas", ctx.NewArray(engine.Number(1), engine.Null(), engine.String("x")).Value(), "1,,x"},
		{"function", fn.Value(), "function greet() { [native code] }"},
		{"regexp", re.Value(), "/a+b/i"},
		{"buffer", ctx.NewArrayBuffer([]byte{1}).Value(), "[object ArrayBuffer]"},
		{"error", ctx.NewError("bad input").Value(), "Error: bad input"},
		{"class instance", ctx.NewObject(cls, nil).Value(), "[object Widget]"},
		{"plain object", ctx.NewObject(nil, nil).Value(), "[object Object]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.ToString(tt.v); got != tt.want {
				t.Errorf("ToString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToObject(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	arr := ctx.NewArray()
	obj, err := ctx.ToObject(arr.Value())
	if err != nil {
		t.Fatalf("ToObject(array) failed: %v", err)
	}
	if !obj.Same(arr) {
		t.Error("ToObject should return the same object")
	}

	for _, v := range []engine.Value{engine.Undefined(), engine.Null(), engine.Number(1), engine.String("x")} {
		if _, err := ctx.ToObject(v); err == nil {
			t.Errorf("ToObject(%s) should fail", ctx.ToString(v))
		}
	}
}

func TestPropertyResolutionOrder(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	parent := ctx.DefineClass(engine.ClassDefinition{
		Name: "Base",
		GetProperty: func(c *engine.Context, obj engine.Object, name string) (engine.Value, error) {
			if name == "inherited" {
				return engine.String("from parent"), nil
			}
			return engine.Value{}, nil
		},
	})
	cls := ctx.DefineClass(engine.ClassDefinition{
		Name:   "Derived",
		Parent: parent,
		GetProperty: func(c *engine.Context, obj engine.Object, name string) (engine.Value, error) {
			if name == "dynamic" {
				return engine.Number(7), nil
			}
			return engine.Value{}, nil
		},
		StaticValues: []engine.StaticValue{{
			Name: "answer",
			Get: func(c *engine.Context, obj engine.Object, name string) (engine.Value, error) {
				return engine.Number(42), nil
			},
		}},
		StaticFunctions: []engine.StaticFunction{{
			Name: "ping",
			Call: func(c *engine.Context, fn, this engine.Object, args []engine.Value) (engine.Value, error) {
				return engine.String("pong"), nil
			},
		}},
	})
	obj := ctx.NewObject(cls, nil)

	get := func(name string) engine.Value {
		t.Helper()
		v, err := ctx.Property(obj, name)
		if err != nil {
			t.Fatalf("Property(%q) failed: %v", name, err)
		}
		return v
	}

	if v := get("dynamic"); v.Num() != 7 {
		t.Errorf("class getter: got %v", ctx.ToString(v))
	}
	if v := get("answer"); v.Num() != 42 {
		t.Errorf("static value: got %v", ctx.ToString(v))
	}
	if v := get("inherited"); v.Str() != "from parent" {
		t.Errorf("parent getter: got %v", ctx.ToString(v))
	}
	if v := get("missing"); !v.IsUndefined() {
		t.Errorf("missing property: got %v, want undefined", ctx.ToString(v))
	}

	t.Run("static function value is cached per object", func(t *testing.T) {
		first := get("ping")
		second := get("ping")
		if !first.Same(second) {
			t.Error("repeated reads of a static function should yield the same object")
		}
		r, err := ctx.Call(mustObject(t, first), obj, nil)
		if err != nil {
			t.Fatalf("Call failed: %v", err)
		}
		if r.Str() != "pong" {
			t.Errorf("ping() = %q, want %q", ctx.ToString(r), "pong")
		}
	})

	t.Run("own property fills in when the chain declines", func(t *testing.T) {
		if err := ctx.SetProperty(obj, "note", engine.String("mine")); err != nil {
			t.Fatalf("SetProperty failed: %v", err)
		}
		if v := get("note"); v.Str() != "mine" {
			t.Errorf("own property: got %v", ctx.ToString(v))
		}
	})

	t.Run("getter error raises an exception", func(t *testing.T) {
		bad := ctx.DefineClass(engine.ClassDefinition{
			Name: "Bad",
			GetProperty: func(c *engine.Context, obj engine.Object, name string) (engine.Value, error) {
				return engine.Value{}, errors.New("nope")
			},
		})
		_, err := ctx.Property(ctx.NewObject(bad, nil), "anything")
		var ex *engine.Exception
		if !errors.As(err, &ex) {
			t.Fatalf("expected *engine.Exception, got %v", err)
		}
		if !ctx.IsError(ex.Value()) {
			t.Error("exception value should be an error object")
		}
	})
}

func TestSetPropertyInterception(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	var captured engine.Value
	cls := ctx.DefineClass(engine.ClassDefinition{
		Name: "Guard",
		SetProperty: func(c *engine.Context, obj engine.Object, name string, v engine.Value) (bool, error) {
			switch name {
			case "guarded":
				captured = v
				return true, nil
			case "locked":
				return false, errors.New("read only")
			}
			return false, nil
		},
	})
	obj := ctx.NewObject(cls, nil)

	if err := ctx.SetProperty(obj, "guarded", engine.Number(9)); err != nil {
		t.Fatalf("SetProperty failed: %v", err)
	}
	if captured.Num() != 9 {
		t.Errorf("setter captured %v, want 9", ctx.ToString(captured))
	}
	v, _ := ctx.Property(obj, "guarded")
	if !v.IsUndefined() {
		t.Error("handled write should not land in own properties")
	}

	if err := ctx.SetProperty(obj, "plain", engine.Boolean(true)); err != nil {
		t.Fatalf("SetProperty failed: %v", err)
	}
	v, _ = ctx.Property(obj, "plain")
	if !v.IsBoolean() || !v.Bool() {
		t.Error("declined write should land in own properties")
	}

	var ex *engine.Exception
	if err := ctx.SetProperty(obj, "locked", engine.Number(1)); !errors.As(err, &ex) {
		t.Errorf("setter error should raise an exception, got %v", err)
	}
}

func TestArrays(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	arr := ctx.NewArray(engine.Number(10), engine.Number(20))
	if n := ctx.ArrayLen(arr); n != 2 {
		t.Fatalf("ArrayLen = %d, want 2", n)
	}

	v, err := ctx.Property(arr, "length")
	if err != nil || v.Num() != 2 {
		t.Errorf("length = %v, %v; want 2", v.Num(), err)
	}

	v, err = ctx.PropertyAtIndex(arr, 1)
	if err != nil || v.Num() != 20 {
		t.Errorf("arr[1] = %v, %v; want 20", ctx.ToString(v), err)
	}

	v, err = ctx.PropertyAtIndex(arr, 5)
	if err != nil || !v.IsUndefined() {
		t.Errorf("out-of-range read = %v, %v; want undefined", ctx.ToString(v), err)
	}

	if err := ctx.SetPropertyAtIndex(arr, 4, engine.Number(50)); err != nil {
		t.Fatalf("SetPropertyAtIndex failed: %v", err)
	}
	if n := ctx.ArrayLen(arr); n != 5 {
		t.Errorf("ArrayLen after grow = %d, want 5", n)
	}
	v, _ = ctx.PropertyAtIndex(arr, 3)
	if !v.IsUndefined() {
		t.Error("gap element should read as undefined")
	}

	v, err = ctx.Property(arr, "1")
	if err != nil {
		t.Fatalf("Property failed: %v", err)
	}
	if v.Num() != 20 {
		t.Errorf("named index read = %v, want 20", ctx.ToString(v))
	}
}

func TestArrayBuffers(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	data := []byte{1, 2, 3}
	buf := ctx.NewArrayBuffer(data)
	if !ctx.IsArrayBuffer(buf.Value()) {
		t.Fatal("expected a byte buffer object")
	}
	got := ctx.BufferBytes(buf)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("BufferBytes = %v, want %v", got, data)
	}
	v, err := ctx.Property(buf, "byteLength")
	if err != nil || v.Num() != 3 {
		t.Errorf("byteLength = %v, %v; want 3", ctx.ToString(v), err)
	}
	if ctx.BufferBytes(ctx.NewArray()) != nil {
		t.Error("BufferBytes on a non-buffer should be nil")
	}
}

func TestDates(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	d := ctx.NewDate(at)
	if !ctx.IsDate(d.Value()) {
		t.Fatal("expected a date object")
	}
	got, ok := ctx.DateTime(d)
	if !ok || !got.Equal(at) {
		t.Errorf("DateTime = %v, %v; want %v", got, ok, at)
	}
	if _, ok := ctx.DateTime(ctx.NewArray()); ok {
		t.Error("DateTime on a non-date should report false")
	}
}

func TestFinalize(t *testing.T) {
	t.Run("runs at most once", func(t *testing.T) {
		ctx := engine.NewContext()
		defer ctx.Close()

		count := 0
		cls := ctx.DefineClass(engine.ClassDefinition{
			Name:     "Res",
			Finalize: func(obj engine.Object) { count++ },
		})
		obj := ctx.NewObject(cls, nil)

		ctx.Finalize(obj)
		ctx.Finalize(obj)
		if count != 1 {
			t.Errorf("finalizer ran %d times, want 1", count)
		}
	})

	t.Run("Close finalizes live instances", func(t *testing.T) {
		ctx := engine.NewContext()
		count := 0
		cls := ctx.DefineClass(engine.ClassDefinition{
			Name:     "Res",
			Finalize: func(obj engine.Object) { count++ },
		})
		a := ctx.NewObject(cls, nil)
		ctx.NewObject(cls, nil)
		ctx.Finalize(a) // early, must not run again on Close

		ctx.Close()
		ctx.Close()
		if count != 2 {
			t.Errorf("finalizers ran %d times, want 2", count)
		}
	})

	t.Run("parent finalizers run too", func(t *testing.T) {
		ctx := engine.NewContext()
		defer ctx.Close()

		var order []string
		parent := ctx.DefineClass(engine.ClassDefinition{
			Name:     "Base",
			Finalize: func(obj engine.Object) { order = append(order, "base") },
		})
		cls := ctx.DefineClass(engine.ClassDefinition{
			Name:     "Derived",
			Parent:   parent,
			Finalize: func(obj engine.Object) { order = append(order, "derived") },
		})
		ctx.Finalize(ctx.NewObject(cls, nil))
		if len(order) != 2 || order[0] != "derived" || order[1] != "base" {
			t.Errorf("finalizer order = %v, want [derived base]", order)
		}
	})
}

func TestRegExp(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	re, err := ctx.NewRegExp("^ab+c$", "i")
	if err != nil {
		t.Fatalf("NewRegExp failed: %v", err)
	}
	ok, err := ctx.RegExpMatch(re, "ABBC")
	if err != nil || !ok {
		t.Errorf("match = %v, %v; want true", ok, err)
	}
	ok, err = ctx.RegExpMatch(re, "ac")
	if err != nil || ok {
		t.Errorf("match = %v, %v; want false", ok, err)
	}

	v, _ := ctx.Property(re, "source")
	if v.Str() != "^ab+c$" {
		t.Errorf("source = %q", v.Str())
	}
	v, _ = ctx.Property(re, "flags")
	if v.Str() != "i" {
		t.Errorf("flags = %q", v.Str())
	}

	if _, err := ctx.NewRegExp("a", "x"); err == nil {
		t.Error("invalid flag should fail")
	}
	if _, err := ctx.NewRegExp("(", ""); err == nil {
		t.Error("malformed pattern should fail")
	}
}

func TestCallAndConstruct(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	cls := ctx.DefineClass(engine.ClassDefinition{Name: "Point"})
	ctor := ctx.NewConstructor(cls, func(c *engine.Context, ct engine.Object, args []engine.Value) (engine.Object, error) {
		return c.NewObject(cls, nil), nil
	})

	t.Run("construct yields an instance", func(t *testing.T) {
		obj, err := ctx.Construct(ctor, nil)
		if err != nil {
			t.Fatalf("Construct failed: %v", err)
		}
		ok, err := ctx.InstanceOf(obj.Value(), ctor)
		if err != nil || !ok {
			t.Errorf("InstanceOf = %v, %v; want true", ok, err)
		}
	})

	t.Run("calling a constructor without new raises", func(t *testing.T) {
		_, err := ctx.Call(ctor, engine.Object{}, nil)
		var ex *engine.Exception
		if !errors.As(err, &ex) {
			t.Fatalf("expected exception, got %v", err)
		}
	})

	t.Run("instanceof against a non-constructor raises", func(t *testing.T) {
		fn := ctx.NewFunction("plain", func(c *engine.Context, f, this engine.Object, args []engine.Value) (engine.Value, error) {
			return engine.Undefined(), nil
		})
		_, err := ctx.InstanceOf(engine.Number(1), fn)
		var ex *engine.Exception
		if !errors.As(err, &ex) {
			t.Fatalf("expected exception, got %v", err)
		}
	})

	t.Run("invalid callback result reads as undefined", func(t *testing.T) {
		fn := ctx.NewFunction("void", func(c *engine.Context, f, this engine.Object, args []engine.Value) (engine.Value, error) {
			return engine.Value{}, nil
		})
		v, err := ctx.Call(fn, engine.Object{}, nil)
		if err != nil {
			t.Fatalf("Call failed: %v", err)
		}
		if !v.IsUndefined() {
			t.Errorf("got %v, want undefined", ctx.ToString(v))
		}
	})

	t.Run("arguments arrive in order", func(t *testing.T) {
		fn := ctx.NewFunction("join", func(c *engine.Context, f, this engine.Object, args []engine.Value) (engine.Value, error) {
			s := ""
			for i, a := range args {
				if i > 0 {
					s += "|"
				}
				s += c.ToString(a)
			}
			return engine.String(s), nil
		})
		v, err := ctx.Call(fn, engine.Object{}, []engine.Value{engine.Number(1), engine.String("two")})
		if err != nil {
			t.Fatalf("Call failed: %v", err)
		}
		if v.Str() != "1|two" {
			t.Errorf("got %q, want %q", v.Str(), "1|two")
		}
	})
}

func TestThrowPreservesValue(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	thrown := ctx.NewArray(engine.Number(1)).Value()
	ex := ctx.Throw(thrown)
	if !ex.Value().Same(thrown) {
		t.Error("Throw should carry the thrown value unchanged")
	}

	fn := ctx.NewFunction("thrower", func(c *engine.Context, f, this engine.Object, args []engine.Value) (engine.Value, error) {
		return engine.Value{}, c.Throw(thrown)
	})
	_, err := ctx.Call(fn, engine.Object{}, nil)
	var got *engine.Exception
	if !errors.As(err, &got) {
		t.Fatalf("expected exception, got %v", err)
	}
	if !got.Value().Same(thrown) {
		t.Error("exception value should survive the call boundary unchanged")
	}
}

func TestPropertyNames(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	cls := ctx.DefineClass(engine.ClassDefinition{
		Name: "Named",
		PropertyNames: func(c *engine.Context, obj engine.Object) []string {
			return []string{"virtual"}
		},
		StaticValues:    []engine.StaticValue{{Name: "sv"}},
		StaticFunctions: []engine.StaticFunction{{Name: "sf"}},
	})
	obj := ctx.NewObject(cls, nil)
	ctx.SetProperty(obj, "own", engine.Number(1))

	names := ctx.PropertyNames(obj)
	want := map[string]bool{"own": true, "virtual": true, "sv": true, "sf": true}
	got := make(map[string]bool, len(names))
	for _, n := range names {
		got[n] = true
	}
	for n := range want {
		if !got[n] {
			t.Errorf("missing property name %q in %v", n, names)
		}
	}
}

func mustObject(t *testing.T, v engine.Value) engine.Object {
	t.Helper()
	obj, ok := v.Object()
	if !ok {
		t.Fatalf("value %v is not an object", v.Kind())
	}
	return obj
}

func ExampleContext_ToString() {
	ctx := engine.NewContext()
	defer ctx.Close()

	arr := ctx.NewArray(engine.Number(1), engine.Number(2), engine.String("three"))
	fmt.Println(ctx.ToString(arr.Value()))
	fmt.Println(engine.FormatNumber(1e21))
	// Output:
	// 1,2,three
	// 1e+21
}
