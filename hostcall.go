// Package hostcall resolves and invokes members of host types by name at
// runtime: overload selection by hierarchy distance, accessible-member
// lookup through hidden declaring types, and canonicalization of
// variadic argument lists.
//
// The engine is stateless and reads only the immutable descriptors of a
// metadata.Provider, so concurrent use needs no locking. Nothing is
// cached between calls.
package hostcall

import (
	"errors"

	"github.com/funvibe/hostcall/internal/arrayutil"
	"github.com/funvibe/hostcall/metadata"
)

// Dispatcher is the invocation facade over one metadata provider.
type Dispatcher struct {
	provider metadata.Provider
}

// New creates a Dispatcher backed by the given provider.
func New(provider metadata.Provider) *Dispatcher {
	return &Dispatcher{provider: provider}
}

// Provider returns the backing metadata provider.
func (d *Dispatcher) Provider() metadata.Provider { return d.provider }

// Invoke calls the best-fit member named name on receiver. Argument
// types are inferred from each argument's runtime type; nil arguments
// act as wildcards.
func (d *Dispatcher) Invoke(receiver any, name string, args ...any) (any, error) {
	return d.InvokeWithTypes(receiver, name, args, nil)
}

// InvokeWithTypes calls the best-fit member named name on receiver,
// matching against the explicitly supplied parameter types. A nil
// paramTypes infers them from the arguments.
func (d *Dispatcher) InvokeWithTypes(receiver any, name string, args []any, paramTypes []metadata.Type) (any, error) {
	t, err := d.receiverType(receiver, name)
	if err != nil {
		return nil, err
	}
	args = arrayutil.NullToEmpty(args)
	if paramTypes == nil {
		paramTypes = d.typesOf(args)
	}
	member := d.FindBestMatch(t, name, paramTypes)
	if member == nil {
		return nil, &NotFoundError{Type: t.Name(), Name: name}
	}
	return d.call(member, receiver, args)
}

// InvokeExact calls the member of receiver whose parameter types equal
// the arguments' runtime types exactly.
func (d *Dispatcher) InvokeExact(receiver any, name string, args ...any) (any, error) {
	return d.InvokeExactWithTypes(receiver, name, args, nil)
}

// InvokeExactWithTypes calls the member of receiver whose parameter
// types equal paramTypes exactly. Exact invocation never repackages
// variadic arguments.
func (d *Dispatcher) InvokeExactWithTypes(receiver any, name string, args []any, paramTypes []metadata.Type) (any, error) {
	t, err := d.receiverType(receiver, name)
	if err != nil {
		return nil, err
	}
	args = arrayutil.NullToEmpty(args)
	if paramTypes == nil {
		paramTypes = d.typesOf(args)
	}
	member := d.FindAccessibleMemberByName(t, name, paramTypes)
	if member == nil {
		return nil, &NotFoundError{Type: t.Name(), Name: name}
	}
	return d.rawCall(member, receiver, args)
}

// InvokeStatic calls the best-fit static member named name on type t.
func (d *Dispatcher) InvokeStatic(t metadata.Type, name string, args ...any) (any, error) {
	return d.InvokeStaticWithTypes(t, name, args, nil)
}

// InvokeStaticWithTypes calls the best-fit member named name on type t
// with no receiver, matching against the supplied parameter types.
func (d *Dispatcher) InvokeStaticWithTypes(t metadata.Type, name string, args []any, paramTypes []metadata.Type) (any, error) {
	if t == nil {
		return nil, &NotFoundError{Type: "<nil>", Name: name}
	}
	args = arrayutil.NullToEmpty(args)
	if paramTypes == nil {
		paramTypes = d.typesOf(args)
	}
	member := d.FindBestMatch(t, name, paramTypes)
	if member == nil {
		return nil, &NotFoundError{Type: t.Name(), Name: name}
	}
	return d.call(member, nil, args)
}

// InvokeExactStatic calls the static member of t whose parameter types
// equal the arguments' runtime types exactly.
func (d *Dispatcher) InvokeExactStatic(t metadata.Type, name string, args ...any) (any, error) {
	return d.InvokeExactStaticWithTypes(t, name, args, nil)
}

// InvokeExactStaticWithTypes calls the member of t whose parameter types
// equal paramTypes exactly, with no receiver.
func (d *Dispatcher) InvokeExactStaticWithTypes(t metadata.Type, name string, args []any, paramTypes []metadata.Type) (any, error) {
	if t == nil {
		return nil, &NotFoundError{Type: "<nil>", Name: name}
	}
	args = arrayutil.NullToEmpty(args)
	if paramTypes == nil {
		paramTypes = d.typesOf(args)
	}
	member := d.FindAccessibleMemberByName(t, name, paramTypes)
	if member == nil {
		return nil, &NotFoundError{Type: t.Name(), Name: name}
	}
	return d.rawCall(member, nil, args)
}

func (d *Dispatcher) receiverType(receiver any, name string) (metadata.Type, error) {
	if receiver == nil {
		return nil, &MissingReceiverError{Name: name}
	}
	t := d.provider.TypeOf(receiver)
	if t == nil {
		return nil, &MissingReceiverError{Name: name}
	}
	return t, nil
}

// typesOf infers descriptor types from runtime arguments. nil arguments
// map to nil descriptors, which match any non-value parameter type.
func (d *Dispatcher) typesOf(args []any) []metadata.Type {
	out := make([]metadata.Type, len(args))
	for i, arg := range args {
		if arg == nil {
			continue
		}
		out[i] = d.provider.TypeOf(arg)
	}
	return out
}

// call packs variadic arguments if needed, then performs the raw call.
func (d *Dispatcher) call(member metadata.Member, receiver any, args []any) (any, error) {
	if member.IsVariadic() {
		packed, err := d.packVarArgs(args, member.Params())
		if err != nil {
			return nil, &ArgumentMismatchError{Member: signature(member), Err: err}
		}
		args = packed
	}
	return d.rawCall(member, receiver, args)
}

// rawCall invokes the member and classifies failures per the provider's
// error markers. Failures of the invoked code itself are wrapped, never
// swallowed.
func (d *Dispatcher) rawCall(member metadata.Member, receiver any, args []any) (any, error) {
	out, err := member.Invoke(receiver, args)
	if err == nil {
		return out, nil
	}
	switch {
	case errors.Is(err, metadata.ErrInaccessible):
		return nil, &AccessError{Member: signature(member), Err: err}
	case errors.Is(err, metadata.ErrArgument):
		return nil, &ArgumentMismatchError{Member: signature(member), Err: err}
	default:
		return nil, &TargetError{Member: signature(member), Err: err}
	}
}
