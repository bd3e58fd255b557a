// Package guard provides the constructor guard used by aggregates, commands and
// queries to reject zero values that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. The zero value is
// "not constructed", so embedding it in a struct makes a bare literal fail Validate.
//
// Example:
//
//	type ReconcileCODCommand struct {
//	    driverID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c ReconcileCODCommand) Validate() error {
//	    return c.guard.Validate(ErrReconcileCODCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that validates successfully.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
