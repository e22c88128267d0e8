package errors

import (
	"fmt"
	"strings"
)

// PortNotFoundError is returned when a referenced port does not exist on a
// placed component.
type PortNotFoundError struct {
	Component string   // Label of the component that was searched
	Port      string   // Requested port id
	Available []string // Port ids the component does have, sorted
}

// Error implements the error interface.
func (e *PortNotFoundError) Error() string {
	return fmt.Sprintf("port %q not found on component %q (available: %s)",
		e.Port, e.Component, strings.Join(e.Available, ", "))
}

// Code returns ErrCodePortNotFound.
func (e *PortNotFoundError) Code() Code { return ErrCodePortNotFound }

// IndexOutOfRangeError is returned when a component index does not address an
// element of a circuit.
type IndexOutOfRangeError struct {
	Index int // Requested index
	Len   int // Number of addressable elements
}

// Error implements the error interface.
func (e *IndexOutOfRangeError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("component index %d is out of bounds: circuit is empty", e.Index)
	}
	return fmt.Sprintf("component index %d is out of bounds (valid: 0-%d)", e.Index, e.Len-1)
}

// Code returns ErrCodeComponentNotFound.
func (e *IndexOutOfRangeError) Code() Code { return ErrCodeComponentNotFound }

// ExhaustedError is returned when a finite source of pins or tags has no
// values left.
type ExhaustedError struct {
	Source   string   // Name of the source, e.g. a terminal id
	Consumed []string // Values handed out before the source ran dry
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("reuse source %q exhausted after %d value(s) [%s]",
		e.Source, len(e.Consumed), strings.Join(e.Consumed, ", "))
}

// Code returns ErrCodeExhausted.
func (e *ExhaustedError) Code() Code { return ErrCodeExhausted }
