package recordstore

import (
	"errors"
	"fmt"
)

// The record store can fail three distinct ways and callers treat them
// differently: transport failures are retried next tick, domain failures
// abort the unit of work without mutation, and malformed responses are
// surfaced as contract violations.

// TransportError means the store was unreachable or the call timed out.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("record store transport failure on %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DomainError means the store answered but reported success=false.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("record store rejected %s: %s", e.Op, e.Reason)
}

// MalformedResponseError means the store's answer could not be decoded or
// had the wrong shape.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed record store response on %s: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func IsMalformed(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}
