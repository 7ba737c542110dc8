package hostcall

import (
	"github.com/pkg/errors"

	"github.com/funvibe/hostcall/internal/arrayutil"
	"github.com/funvibe/hostcall/metadata"
)

// packVarArgs brings a flat argument list into the canonical shape a
// variadic member expects: the fixed leading arguments verbatim plus a
// single trailing array holding the rest.
//
// If args already has the declared arity and its last element is absent
// or already an instance of the declared trailing array type, it is
// returned unchanged. Otherwise the trailing arguments (possibly zero of
// them) are collected into a fresh array materialized by the provider,
// which also performs unboxing when the component is a value type.
// Callers guarantee len(args) >= len(paramTypes)-1.
func (d *Dispatcher) packVarArgs(args []any, paramTypes []metadata.Type) ([]any, error) {
	n := len(paramTypes)
	if n == 0 {
		return args, nil
	}
	if len(args) == n {
		last := args[n-1]
		if last == nil {
			return args, nil
		}
		if lt := d.provider.TypeOf(last); lt != nil && typesEqual(lt, paramTypes[n-1]) {
			// Already canonical.
			return args, nil
		}
	}

	component := paramTypes[n-1].Elem()
	if component == nil {
		return nil, errors.Errorf("trailing parameter %s is not an array type", paramTypes[n-1].Name())
	}

	packed := make([]any, n)
	copy(packed, args[:n-1])
	trailing := arrayutil.CopyRange(args, n-1, len(args)-n+1)
	array, err := d.provider.NewArray(component, trailing)
	if err != nil {
		return nil, errors.Wrapf(err, "packing %d trailing argument(s) as %s", len(trailing), component.Name())
	}
	packed[n-1] = array
	return packed, nil
}
