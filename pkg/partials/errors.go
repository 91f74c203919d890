package partials

import (
	"errors"
	"fmt"
)

// ErrUndefinedPartial matches every UndefinedPartialError through errors.Is.
var ErrUndefinedPartial = errors.New("partials: undefined partial")

// ErrExpansionLimit is returned when references nest deeper than the
// configured limit, usually because a partial references itself.
var ErrExpansionLimit = errors.New("partials: expansion limit exceeded")

// UndefinedPartialError reports a reference with no usable definition: the
// name was never defined, or none of its overloads accepts the call.
type UndefinedPartialError struct {
	Name string
	// Overloads is the number of definitions inspected for Name.
	Overloads int
}

func (e *UndefinedPartialError) Error() string {
	return fmt.Sprintf("partial with name %q does not exist", e.Name)
}

// Is makes errors.Is(err, ErrUndefinedPartial) succeed.
func (e *UndefinedPartialError) Is(target error) bool {
	return target == ErrUndefinedPartial
}
