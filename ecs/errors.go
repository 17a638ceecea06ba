package ecs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEntityNotFound is returned by operations that target a despawned or
// never-spawned entity. It is always recoverable; no storage state changes
// when it is returned.
var ErrEntityNotFound = errors.New("ecs: entity not found")

// RegistrationConflictError is returned when a component type is re-registered
// with metadata that differs from its first registration. Plain re-registration
// of the same type is a no-op and never produces this error.
type RegistrationConflictError struct {
	Type string
}

func (e *RegistrationConflictError) Error() string {
	return fmt.Sprintf("ecs: conflicting registration for component type %s", e.Type)
}

// ScheduleCycleError is returned by Scheduler.Compile when the explicit
// ordering constraints form a cycle. Systems lists the names of the systems
// implicated in the cycle.
type ScheduleCycleError struct {
	Systems []string
}

func (e *ScheduleCycleError) Error() string {
	return "ecs: ordering constraints form a cycle involving: " + strings.Join(e.Systems, ", ")
}

// AccessConflictError is returned by Scheduler.Compile when a system's queries
// touch data outside its declared access sets, or when an ordering constraint
// references a system that was never registered.
type AccessConflictError struct {
	System string
	Detail string
}

func (e *AccessConflictError) Error() string {
	return fmt.Sprintf("ecs: system %s: %s", e.System, e.Detail)
}

// SystemPanicError wraps a panic recovered from a system body. The default
// error sink treats it as fatal; a custom sink may downgrade it.
type SystemPanicError struct {
	System string
	Value  any
	Stack  []byte
}

func (e *SystemPanicError) Error() string {
	return fmt.Sprintf("ecs: system %s panicked: %v", e.System, e.Value)
}
