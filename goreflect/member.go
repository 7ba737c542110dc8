package goreflect

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/funvibe/hostcall/metadata"
)

// member is one exported method of a wrapped type. sig is the method's
// func type as enumerated on the type, which for non-interface types
// still includes the receiver in position 0.
type member struct {
	name        string
	owner       *Type
	sig         reflect.Type
	hasReceiver bool
}

func (m *member) Name() string         { return m.name }
func (m *member) Owner() metadata.Type { return m.owner }
func (m *member) IsPublic() bool       { return true }
func (m *member) IsVariadic() bool     { return m.sig.IsVariadic() }

func (m *member) Params() []metadata.Type {
	start := 0
	if m.hasReceiver {
		start = 1
	}
	out := make([]metadata.Type, 0, m.sig.NumIn()-start)
	for i := start; i < m.sig.NumIn(); i++ {
		out = append(out, &Type{rt: m.sig.In(i)})
	}
	return out
}

// HasAnnotation always reports false: Go methods carry no annotations.
func (m *member) HasAnnotation(string) bool { return false }

// Invoke binds the method on the receiver value and calls it, converting
// each argument to its parameter type. A trailing error result is
// treated as the call's failure; multiple remaining results come back as
// a []any.
func (m *member) Invoke(receiver any, args []any) (out any, err error) {
	if receiver == nil {
		return nil, errors.Wrapf(metadata.ErrArgument, "%s needs a receiver", m.name)
	}
	mv := reflect.ValueOf(receiver).MethodByName(m.name)
	if !mv.IsValid() {
		return nil, errors.Wrapf(metadata.ErrArgument, "no method %s on %T", m.name, receiver)
	}
	mt := mv.Type()
	in, err := convertArgs(mt, m.name, args)
	if err != nil {
		return nil, err
	}
	// reflect panics on bad call shapes; surface those as argument
	// rejections instead of crashing the caller.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.Wrapf(metadata.ErrArgument, "call %s: %v", m.name, r)
		}
	}()
	var results []reflect.Value
	if canonicalVariadic(mt, in) {
		results = mv.CallSlice(in)
	} else {
		results = mv.Call(in)
	}
	return collectResults(results)
}

// canonicalVariadic reports whether in is already the canonical shape of
// a variadic call: declared arity with the trailing slice in place.
func canonicalVariadic(mt reflect.Type, in []reflect.Value) bool {
	if !mt.IsVariadic() || len(in) != mt.NumIn() {
		return false
	}
	last := in[len(in)-1]
	return last.IsValid() && last.Type().AssignableTo(mt.In(mt.NumIn()-1))
}

// convertArgs mirrors the funxy host-call conversion: pick the target
// parameter type (the element type for absorbed variadic positions),
// zero-fill nils where the target permits, and convert where assignment
// alone does not fit.
func convertArgs(mt reflect.Type, name string, args []any) ([]reflect.Value, error) {
	numIn := mt.NumIn()
	if mt.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, errors.Wrapf(metadata.ErrArgument, "%s wants at least %d argument(s), got %d", name, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, errors.Wrapf(metadata.ErrArgument, "%s wants %d argument(s), got %d", name, numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		target := mt.In(min(i, numIn-1))
		if mt.IsVariadic() && i >= numIn-1 {
			trailing := mt.In(numIn - 1)
			target = trailing.Elem()
			if i == numIn-1 && len(args) == numIn && arg != nil && reflect.TypeOf(arg).AssignableTo(trailing) {
				// Canonical trailing slice, keep as is.
				target = trailing
			}
		}
		if arg == nil {
			if !nilable(target.Kind()) {
				return nil, errors.Wrapf(metadata.ErrArgument, "argument %d of %s: nil for %s", i, name, target)
			}
			in[i] = reflect.Zero(target)
			continue
		}
		av := reflect.ValueOf(arg)
		switch {
		case av.Type().AssignableTo(target):
			in[i] = av
		case av.Type().ConvertibleTo(target):
			in[i] = av.Convert(target)
		default:
			return nil, errors.Wrapf(metadata.ErrArgument, "argument %d of %s: cannot use %s as %s", i, name, av.Type(), target)
		}
	}
	return in, nil
}

// collectResults maps reflect results to the facade's value-and-error
// shape. A non-nil error in the last result position is the call's
// failure.
func collectResults(results []reflect.Value) (any, error) {
	if len(results) == 0 {
		return nil, nil
	}
	errType := reflect.TypeOf((*error)(nil)).Elem()
	last := results[len(results)-1]
	if last.Type().Implements(errType) {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		results = results[:len(results)-1]
	}
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0].Interface(), nil
	default:
		out := make([]any, len(results))
		for i, r := range results {
			out[i] = r.Interface()
		}
		return out, nil
	}
}
