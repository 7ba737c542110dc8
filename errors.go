package hostcall

import "fmt"

// NotFoundError reports that no member with the requested name and
// signature exists or is accessible on the target type. It also covers
// the variadic trailing-argument veto: a best match rejected there is
// indistinguishable from no match at all.
type NotFoundError struct {
	Type string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such accessible member: %s() on type: %s", e.Name, e.Type)
}

// MissingReceiverError reports an instance invocation without a receiver.
type MissingReceiverError struct {
	Name string
}

func (e *MissingReceiverError) Error() string {
	return fmt.Sprintf("receiver required to invoke %s()", e.Name)
}

// AccessError reports that a located member was rejected by visibility
// enforcement at call time, even after the accessibility search.
type AccessError struct {
	Member string
	Err    error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("member %s is not invokable: %v", e.Member, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ArgumentMismatchError reports that the call target rejected the
// argument list after resolution and packing. This is a programmer
// error, not a lookup failure.
type ArgumentMismatchError struct {
	Member string
	Err    error
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("member %s rejected arguments: %v", e.Member, e.Err)
}

func (e *ArgumentMismatchError) Unwrap() error { return e.Err }

// TargetError wraps a failure raised by the invoked member itself. The
// underlying failure is carried verbatim and reachable through Unwrap.
type TargetError struct {
	Member string
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("member %s failed: %v", e.Member, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }
