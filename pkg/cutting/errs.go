package cutting

import (
	"errors"
	"fmt"
)

// ErrDomain is wrapped by every DomainError. Test with errors.Is.
var ErrDomain = errors.New("cutting: domain error")

// DomainError reports an input outside the domain of a formula.
type DomainError struct {
	// Op is the formula that rejected the input.
	Op string
	// Quantity names the offending input (D, hex, n).
	Quantity string
	Value    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("cutting: %s: %s must be > 0, got %g", e.Op, e.Quantity, e.Value)
}

func (e *DomainError) Unwrap() error { return ErrDomain }
