// Package store groups the identity store implementations. Each entity kind
// has a memory, postgres, and redis implementation of the interfaces declared
// by the service layer.
//
// Uniqueness of tax IDs, personal IDs, and emails is enforced here, at the
// storage layer, as the backstop for the service's check-then-act validation:
// two concurrent registrations can both pass validation, so Create must fail
// with ErrConflict when a unique key is already taken.
package store

import "ponto/pkg/platform/sentinel"

// Sentinel errors shared by all store implementations.
var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)
