package reflect

import (
	"errors"
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func TypeName[T any]() string {
	return TypeOf[T]().String()
}

func TypeNameOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// Func describes a constructor function: its parameter types, its result type
// and whether a trailing error is returned.
type Func struct {
	Value    reflect.Value
	Params   []reflect.Type
	Result   reflect.Type
	HasError bool
}

var ErrNotFunc = errors.New("constructor must be a function")

// Inspect validates fn as a constructor: a function returning one value, or one
// value and an error.
func Inspect(fn any) (*Func, error) {
	if fn == nil {
		return nil, ErrNotFunc
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w, got %s", ErrNotFunc, t)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("constructor %s must not be variadic", t)
	}

	info := &Func{Value: v}
	switch t.NumOut() {
	case 1:
	case 2:
		if !t.Out(1).Implements(errorType) {
			return nil, fmt.Errorf("second result of %s must be an error", t)
		}
		info.HasError = true
	default:
		return nil, fmt.Errorf("constructor %s must return a value and an optional error", t)
	}
	info.Result = t.Out(0)

	info.Params = make([]reflect.Type, t.NumIn())
	for i := range info.Params {
		info.Params[i] = t.In(i)
	}
	return info, nil
}

// Arg converts a resolved value into an argument of type want. nil becomes the
// zero value; a []any is converted element-wise into a typed slice.
func Arg(v any, want reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(want), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(want) {
		return rv, nil
	}

	if list, ok := v.([]any); ok && want.Kind() == reflect.Slice {
		out := reflect.MakeSlice(want, len(list), len(list))
		for i, item := range list {
			elem, err := Arg(item, want.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), want)
}

// Call invokes the constructor with args and splits its results.
func (f *Func) Call(args []reflect.Value) (any, error) {
	out := f.Value.Call(args)
	if f.HasError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
