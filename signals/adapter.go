package signals

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	signalType = reflect.TypeOf(Signal{})
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Adapter sits between a Table, which always calls with a signal number and a
// delivery context, and a user function that declared which of the two it
// wants. Accepted function shapes, chosen by the options it was bound with:
//
//	func()                    neither
//	func(Signal)              TakesSignal
//	func(C)                   TakesContext
//	func(Signal, C)           TakesSignal and TakesContext
//
// The Signal parameter may be any type a Signal is assignable to (os.Signal,
// fmt.Stringer, any). C is usually *Frame or any. Results may be none, a
// value, an error, or a value and an error.
type Adapter struct {
	registry     *Registry
	fn           reflect.Value
	raw          any
	takesSignal  bool
	takesContext bool
}

// NewAdapter validates fn against the wanted arguments and wraps it.
func NewAdapter(reg *Registry, fn any, takesSignal, takesContext bool) (*Adapter, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, errors.Wrapf(ErrBadHandler, "%T is not a function", fn)
	}
	t := v.Type()
	want := 0
	if takesSignal {
		want++
	}
	if takesContext {
		want++
	}
	if t.IsVariadic() || t.NumIn() != want {
		return nil, errors.Wrapf(ErrBadHandler, "%s: want %d parameters", t, want)
	}
	if takesSignal && !signalType.AssignableTo(t.In(0)) {
		return nil, errors.Wrapf(ErrBadHandler, "%s: first parameter cannot hold a Signal", t)
	}
	switch t.NumOut() {
	case 0, 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, errors.Wrapf(ErrBadHandler, "%s: second result must be error", t)
		}
	default:
		return nil, errors.Wrapf(ErrBadHandler, "%s: too many results", t)
	}
	return &Adapter{
		registry:     reg,
		fn:           v,
		raw:          fn,
		takesSignal:  takesSignal,
		takesContext: takesContext,
	}, nil
}

// Invoke resolves number through the registry and calls the wrapped function
// with the arguments it asked for, signal first then frame. Panics raised by
// the function are not recovered.
func (a *Adapter) Invoke(number int, frame any) (any, error) {
	sig, err := a.registry.Lookup(number)
	if err != nil {
		return nil, err
	}

	t := a.fn.Type()
	args := make([]reflect.Value, 0, 2)
	if a.takesSignal {
		args = append(args, reflect.ValueOf(sig))
	}
	if a.takesContext {
		ctxType := t.In(len(args))
		arg, err := contextValue(frame, ctxType)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	out := a.fn.Call(args)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0) == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

// Wants reports which arguments the wrapped function receives.
func (a *Adapter) Wants() (signal, context bool) {
	return a.takesSignal, a.takesContext
}

// Func returns the wrapped function as it was given.
func (a *Adapter) Func() any { return a.raw }

func (a *Adapter) String() string {
	return fmt.Sprintf("Adapter(%s, signal=%t, context=%t)", a.fn.Type(), a.takesSignal, a.takesContext)
}

func contextValue(frame any, t reflect.Type) (reflect.Value, error) {
	if frame == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, errors.Wrapf(ErrBadHandler, "nil context for %s parameter", t)
	}
	v := reflect.ValueOf(frame)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, errors.Wrapf(ErrBadHandler, "context %T is not assignable to %s", frame, t)
	}
	return v, nil
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
