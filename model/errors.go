package model

import (
	"errors"
	"fmt"
)

// ErrPoolEmpty is returned when mining is attempted with nothing pending.
// Empty blocks are never mined so the chain can't grow without content.
var ErrPoolEmpty = errors.New("nothing to mine")

// ValidationError is returned when a transaction is structurally malformed
// (kind-inappropriate fields, empty identities). Recoverable: the caller
// gets it back and no state changes.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid transaction: " + e.Reason
}

// AuthorizationDenied is returned when chain history does not permit the
// actor to perform the action. Recoverable: a denied transaction is never
// added to the pool.
type AuthorizationDenied struct {
	Reason string
}

func (e *AuthorizationDenied) Error() string {
	return "authorization denied: " + e.Reason
}

// ChainIntegrityError is returned by chain validation when a hash, linkage
// or difficulty check fails. It points at the first offending block and is
// fatal to the process's trust in its chain state.
type ChainIntegrityError struct {
	Index  int64
	Reason string
}

func (e *ChainIntegrityError) Error() string {
	return fmt.Sprintf("chain integrity violated at block %d: %s", e.Index, e.Reason)
}
